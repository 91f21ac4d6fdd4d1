package confkit

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/randalmurphal/confkit/pkg/confkit/driver"
	"github.com/randalmurphal/confkit/pkg/confkit/observability"
)

// Config is the top-level registry for one module's settings. It owns the
// registered defaults tree per scope, the driver reference, and produces
// correctly rooted groups for any scope object.
//
// Defaults are meant to be registered once at startup, before any reads or
// writes; registration is guarded for safety but the tree is otherwise
// treated as immutable. Instances are constructed explicitly and passed to
// collaborators; there is no process-wide singleton.
type Config struct {
	name   string
	id     string
	drv    driver.Driver
	strict bool
	logger *slog.Logger

	mu       sync.RWMutex
	defaults map[Scope]*branch
}

// New creates a Config named name, persisting under the instance id. The id
// is the leading segment of every identifier path, so it must stay stable
// across restarts for stored data to be found again. An empty id generates a
// random one, which is only suitable for throwaway stores.
func New(name, id string, drv driver.Driver, opts ...Option) *Config {
	var cfg storeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if id == "" {
		id = uuid.NewString()
	}

	logger := observability.EnrichLogger(cfg.logger, name, id)
	if cfg.logger != nil || cfg.metrics != nil || cfg.spans != nil {
		drv = observability.InstrumentDriver(drv, logger, cfg.metrics, cfg.spans)
	}

	return &Config{
		name:     name,
		id:       id,
		drv:      drv,
		strict:   cfg.strict,
		logger:   logger,
		defaults: make(map[Scope]*branch),
	}
}

// Name returns the store name this Config was created with.
func (c *Config) Name() string {
	return c.name
}

// ID returns the instance id prefixed to every identifier path.
func (c *Config) ID() string {
	return c.id
}

// Register merges defaults into the given scope's defaults tree. Map values
// register nested groups, everything else registers a leaf default. Keys may
// be dotted to register nested defaults in one call:
//
//	cfg.RegisterGlobal(map[string]any{"autoplay.enabled": false})
//	// is equivalent to
//	cfg.RegisterGlobal(map[string]any{"autoplay": map[string]any{"enabled": false}})
//
// Every key segment must be a bare identifier. Registering a leaf where a
// group exists (or the reverse) fails with ErrConflict and leaves prior
// registrations intact; re-registering a leaf overwrites its default.
func (c *Config) Register(scope Scope, defaults map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	root, ok := c.defaults[scope]
	if !ok {
		root = newBranch()
		c.defaults[scope] = root
	}
	if err := root.merge(scope, "", defaults); err != nil {
		return err
	}
	observability.LogRegistration(c.logger, scope.String(), len(defaults))
	return nil
}

// RegisterGlobal registers defaults for the global scope.
func (c *Config) RegisterGlobal(defaults map[string]any) error {
	return c.Register(ScopeGlobal, defaults)
}

// RegisterGuild registers defaults on a per-guild level.
func (c *Config) RegisterGuild(defaults map[string]any) error {
	return c.Register(ScopeGuild, defaults)
}

// RegisterChannel registers defaults on a per-channel level.
func (c *Config) RegisterChannel(defaults map[string]any) error {
	return c.Register(ScopeChannel, defaults)
}

// RegisterRole registers defaults on a per-role level.
func (c *Config) RegisterRole(defaults map[string]any) error {
	return c.Register(ScopeRole, defaults)
}

// RegisterUser registers defaults on a per-user level, independent of guilds.
func (c *Config) RegisterUser(defaults map[string]any) error {
	return c.Register(ScopeUser, defaults)
}

// RegisterMember registers defaults on a per-member level (guild-dependent).
func (c *Config) RegisterMember(defaults map[string]any) error {
	return c.Register(ScopeMember, defaults)
}

// Defaults returns a copy of the registered defaults for scope.
func (c *Config) Defaults(scope Scope) map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	root, ok := c.defaults[scope]
	if !ok {
		return map[string]any{}
	}
	return root.materialize()
}

// Registered reports whether names resolves to a registered group or value
// in scope. With no names it reports whether the scope has any registrations.
func (c *Config) Registered(scope Scope, names ...string) bool {
	root := c.scopeBranch(scope)
	if len(names) == 0 {
		return len(root.children) > 0
	}
	_, ok := resolve(root, names)
	return ok
}

// scopeBranch returns the live defaults tree for scope, or an empty one.
func (c *Config) scopeBranch(scope Scope) *branch {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if root, ok := c.defaults[scope]; ok {
		return root
	}
	return newBranch()
}

// scopePath builds (id, SCOPE_TAG, ids...) with every id stringified.
func (c *Config) scopePath(scope Scope, ids ...int64) []string {
	path := make([]string, 0, 2+len(ids))
	path = append(path, c.id, scope.String())
	for _, id := range ids {
		path = append(path, strconv.FormatInt(id, 10))
	}
	return path
}

// baseGroup roots a group at scope with that scope's defaults attached.
func (c *Config) baseGroup(scope Scope, ids ...int64) *Group {
	return newGroup(c.scopePath(scope, ids...), c.scopeBranch(scope), c.drv, c.strict)
}

// Global returns the group holding this store's global data.
func (c *Config) Global() *Group {
	return c.baseGroup(ScopeGlobal)
}

// Guild returns the group holding data for the given guild.
func (c *Config) Guild(id int64) *Group {
	return c.baseGroup(ScopeGuild, id)
}

// Channel returns the group holding data for the given channel.
func (c *Config) Channel(id int64) *Group {
	return c.baseGroup(ScopeChannel, id)
}

// Role returns the group holding data for the given role.
func (c *Config) Role(id int64) *Group {
	return c.baseGroup(ScopeRole, id)
}

// User returns the group holding data for the given user.
func (c *Config) User(id int64) *Group {
	return c.baseGroup(ScopeUser, id)
}

// Member returns the group holding data for the given member of a guild.
func (c *Config) Member(guildID, memberID int64) *MemberGroup {
	return &MemberGroup{Group: *c.baseGroup(ScopeMember, guildID, memberID)}
}

// GetAttr reads a global value by dynamic name. Shorthand for
// Global().GetAttr.
func (c *Config) GetAttr(ctx context.Context, name string) (any, error) {
	return c.Global().GetAttr(ctx, name)
}

// SetAttr stores a global value by dynamic name. Shorthand for
// Global().SetAttr.
func (c *Config) SetAttr(ctx context.Context, name string, value any) error {
	return c.Global().SetAttr(ctx, name, value)
}

// allFromScope reads the entire scope subtree in one driver call and overlays
// the scope defaults on every entry. Entries whose key is not an integer id
// or whose value is not a map are skipped.
func (c *Config) allFromScope(ctx context.Context, scope Scope) (map[int64]map[string]any, error) {
	group := c.baseGroup(scope)
	raw, err := group.Value.Get(ctx)
	if err != nil {
		return nil, err
	}
	stored, _ := raw.(map[string]any)

	defaults := group.Defaults()
	out := make(map[int64]map[string]any, len(stored))
	for key, entry := range stored {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			c.logSkippedEntry(scope, key)
			continue
		}
		data, ok := entry.(map[string]any)
		if !ok {
			c.logSkippedEntry(scope, key)
			continue
		}
		out[id] = overlay(defaults, data)
	}
	return out, nil
}

func (c *Config) logSkippedEntry(scope Scope, key string) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("skipping malformed scope entry",
		slog.String("scope", scope.String()),
		slog.String("key", key),
	)
}

// AllGuilds returns all guild data as GUILD_ID -> data, with registered
// defaults mixed in for values that have not been overwritten.
func (c *Config) AllGuilds(ctx context.Context) (map[int64]map[string]any, error) {
	return c.allFromScope(ctx, ScopeGuild)
}

// AllChannels returns all channel data as CHANNEL_ID -> data, with registered
// defaults mixed in for values that have not been overwritten.
func (c *Config) AllChannels(ctx context.Context) (map[int64]map[string]any, error) {
	return c.allFromScope(ctx, ScopeChannel)
}

// AllRoles returns all role data as ROLE_ID -> data, with registered defaults
// mixed in for values that have not been overwritten.
func (c *Config) AllRoles(ctx context.Context) (map[int64]map[string]any, error) {
	return c.allFromScope(ctx, ScopeRole)
}

// AllUsers returns all user data as USER_ID -> data, with registered defaults
// mixed in for values that have not been overwritten.
func (c *Config) AllUsers(ctx context.Context) (map[int64]map[string]any, error) {
	return c.allFromScope(ctx, ScopeUser)
}

// membersFromGuild overlays per-member defaults on one guild's member map.
func (c *Config) membersFromGuild(defaults, guildData map[string]any) map[int64]map[string]any {
	out := make(map[int64]map[string]any, len(guildData))
	for key, entry := range guildData {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			c.logSkippedEntry(ScopeMember, key)
			continue
		}
		data, ok := entry.(map[string]any)
		if !ok {
			c.logSkippedEntry(ScopeMember, key)
			continue
		}
		out[id] = overlay(defaults, data)
	}
	return out
}

// AllMembers returns data for every member of every guild, as
// GUILD_ID -> MEMBER_ID -> data, with registered defaults mixed in.
func (c *Config) AllMembers(ctx context.Context) (map[int64]map[int64]map[string]any, error) {
	group := c.baseGroup(ScopeMember)
	raw, err := group.Value.Get(ctx)
	if err != nil {
		return nil, err
	}
	stored, _ := raw.(map[string]any)

	defaults := group.Defaults()
	out := make(map[int64]map[int64]map[string]any, len(stored))
	for key, entry := range stored {
		guildID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			c.logSkippedEntry(ScopeMember, key)
			continue
		}
		guildData, ok := entry.(map[string]any)
		if !ok {
			c.logSkippedEntry(ScopeMember, key)
			continue
		}
		out[guildID] = c.membersFromGuild(defaults, guildData)
	}
	return out, nil
}

// AllMembersIn returns data for every member of one guild, as
// MEMBER_ID -> data, with registered defaults mixed in.
func (c *Config) AllMembersIn(ctx context.Context, guildID int64) (map[int64]map[string]any, error) {
	group := c.baseGroup(ScopeMember, guildID)
	raw, err := group.Value.Get(ctx)
	if err != nil {
		return nil, err
	}
	stored, _ := raw.(map[string]any)
	return c.membersFromGuild(c.Defaults(ScopeMember), stored), nil
}

// clearPath wipes everything at and below the given raw path segments.
func (c *Config) clearPath(ctx context.Context, label string, path []string) error {
	group := newGroup(path, nil, c.drv, c.strict)
	if err := group.Clear(ctx); err != nil {
		return err
	}
	observability.LogClear(c.logger, label)
	return nil
}

// ClearAll removes every piece of data held by this Config instance,
// reverting all scopes to their registered defaults. This cannot be undone.
func (c *Config) ClearAll(ctx context.Context) error {
	return c.clearPath(ctx, "ALL", []string{c.id})
}

// ClearAllGlobals resets all global data to its registered defaults.
func (c *Config) ClearAllGlobals(ctx context.Context) error {
	return c.clearPath(ctx, ScopeGlobal.String(), c.scopePath(ScopeGlobal))
}

// ClearAllGuilds resets all guild data to its registered defaults.
func (c *Config) ClearAllGuilds(ctx context.Context) error {
	return c.clearPath(ctx, ScopeGuild.String(), c.scopePath(ScopeGuild))
}

// ClearAllChannels resets all channel data to its registered defaults.
func (c *Config) ClearAllChannels(ctx context.Context) error {
	return c.clearPath(ctx, ScopeChannel.String(), c.scopePath(ScopeChannel))
}

// ClearAllRoles resets all role data to its registered defaults.
func (c *Config) ClearAllRoles(ctx context.Context) error {
	return c.clearPath(ctx, ScopeRole.String(), c.scopePath(ScopeRole))
}

// ClearAllUsers resets all user data to its registered defaults.
func (c *Config) ClearAllUsers(ctx context.Context) error {
	return c.clearPath(ctx, ScopeUser.String(), c.scopePath(ScopeUser))
}

// ClearAllMembers resets member data for every guild to its registered
// defaults.
func (c *Config) ClearAllMembers(ctx context.Context) error {
	return c.clearPath(ctx, ScopeMember.String(), c.scopePath(ScopeMember))
}

// ClearAllMembersIn resets member data for one guild only; members of other
// guilds are unaffected.
func (c *Config) ClearAllMembersIn(ctx context.Context, guildID int64) error {
	return c.clearPath(ctx, ScopeMember.String(), c.scopePath(ScopeMember, guildID))
}
