package confkit

// MemberGroup is a Group specialized for the two-level member scope, where
// data is addressed as GUILD_ID -> MEMBER_ID -> data. It adds helpers to step
// back up the identifier path without re-deriving it by hand.
type MemberGroup struct {
	Group
}

// GuildGroup returns the group holding every member entry for this member's
// guild. It carries no defaults; per-member defaults apply one level down.
func (m *MemberGroup) GuildGroup() *Group {
	return newGroup(m.path[:3:3], nil, m.drv, m.strict)
}

// ScopeGroup returns the group holding the entire member scope across all
// guilds. It carries no defaults.
func (m *MemberGroup) ScopeGroup() *Group {
	return newGroup(m.path[:2:2], nil, m.drv, m.strict)
}
