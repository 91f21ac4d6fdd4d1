package confkit

// Scope identifies a namespace partition of the store. The string value is the
// tag persisted in identifier paths, so changing a tag invalidates stored data.
type Scope string

const (
	// ScopeGlobal holds store-wide data with no scope object id.
	ScopeGlobal Scope = "GLOBAL"
	// ScopeGuild holds per-guild data.
	ScopeGuild Scope = "GUILD"
	// ScopeChannel holds per-channel data.
	ScopeChannel Scope = "TEXTCHANNEL"
	// ScopeRole holds per-role data.
	ScopeRole Scope = "ROLE"
	// ScopeUser holds per-user data, independent of any guild.
	ScopeUser Scope = "USER"
	// ScopeMember holds per-member data, keyed by guild id then member id.
	ScopeMember Scope = "MEMBER"
)

// String returns the persisted scope tag.
func (s Scope) String() string {
	return string(s)
}
