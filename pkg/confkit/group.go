package confkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/confkit/pkg/confkit/driver"
)

// Group is a subtree accessor. It behaves as a Value whose stored shape is a
// map (reading an untouched group yields an empty map, not its defaults) and
// adds child resolution plus whole-subtree operations.
type Group struct {
	Value
	defs   *branch
	strict bool
}

// Compile-time interface check.
var _ Entry = (*Group)(nil)

func newGroup(path []string, defs *branch, drv driver.Driver, strict bool) *Group {
	if defs == nil {
		defs = newBranch()
	}
	return &Group{
		Value:  Value{path: path, def: map[string]any{}, drv: drv},
		defs:   defs,
		strict: strict,
	}
}

// childPath derives the path for a child without aliasing the parent's slice.
func (g *Group) childPath(name string) []string {
	out := make([]string, 0, len(g.path)+1)
	out = append(out, g.path...)
	return append(out, name)
}

// IsGroup reports whether name is registered as a nested group.
func (g *Group) IsGroup(name string) bool {
	n, ok := g.defs.child(name)
	if !ok {
		return false
	}
	_, ok = n.(*branch)
	return ok
}

// IsValue reports whether name is registered as a leaf value.
func (g *Group) IsValue(name string) bool {
	n, ok := g.defs.child(name)
	if !ok {
		return false
	}
	_, ok = n.(leaf)
	return ok
}

// Attr resolves one child of this group by name.
//
//  1. A child registered as a group resolves to a *Group.
//  2. A child registered as a value resolves to a *Value with its default.
//  3. An unregistered child fails with ErrUnregistered under strict
//     registration, and otherwise resolves to a *Value with no default.
func (g *Group) Attr(name string) (Entry, error) {
	if n, ok := g.defs.child(name); ok {
		switch n := n.(type) {
		case *branch:
			return &Group{
				Value:  Value{path: g.childPath(name), def: map[string]any{}, drv: g.drv},
				defs:   n,
				strict: g.strict,
			}, nil
		case leaf:
			return &Value{path: g.childPath(name), def: deepCopy(n.def), drv: g.drv}, nil
		}
	}
	if g.strict {
		return nil, &UnregisteredError{Path: g.Path(), Name: name}
	}
	return &Value{path: g.childPath(name), drv: g.drv}, nil
}

// Group resolves a child that must be a registered group.
func (g *Group) Group(name string) (*Group, error) {
	entry, err := g.Attr(name)
	if err != nil {
		return nil, err
	}
	sub, ok := entry.(*Group)
	if !ok {
		return nil, fmt.Errorf("%q at %s: %w", name, strings.Join(g.path, "/"), ErrNotGroup)
	}
	return sub, nil
}

// At resolves a nested entry by walking several child names in order. Every
// segment but the last must resolve to a group.
func (g *Group) At(names ...string) (Entry, error) {
	var entry Entry = g
	for i, name := range names {
		sub, ok := entry.(*Group)
		if !ok {
			return nil, fmt.Errorf("%q at %s: %w",
				name, strings.Join(names[:i], "/"), ErrNotGroup)
		}
		next, err := sub.Attr(name)
		if err != nil {
			return nil, err
		}
		entry = next
	}
	return entry, nil
}

// GetAttr resolves name and reads its effective value in one step. It exists
// for externally supplied key names; prefer Attr with a known name.
func (g *Group) GetAttr(ctx context.Context, name string) (any, error) {
	return g.GetAttrOr(ctx, name, nil)
}

// GetAttrOr is GetAttr with a default override, applied only when nothing is
// stored and override is non-nil.
func (g *Group) GetAttrOr(ctx context.Context, name string, override any) (any, error) {
	entry, err := g.Attr(name)
	if err != nil {
		return nil, err
	}
	return entry.GetOr(ctx, override)
}

// SetAttr resolves name and stores value at it in one step.
func (g *Group) SetAttr(ctx context.Context, name string, value any) error {
	entry, err := g.Attr(name)
	if err != nil {
		return err
	}
	return entry.Set(ctx, value)
}

// Defaults returns a copy of the registered defaults subtree for this group.
func (g *Group) Defaults() map[string]any {
	return g.defs.materialize()
}

// All reads the stored subtree and overlays it on the registered defaults,
// one level deep: stored top-level keys win, untouched keys keep their
// defaults. Defaults nested below a partially stored subtree still surface
// via nested Attr lookups.
func (g *Group) All(ctx context.Context) (map[string]any, error) {
	raw, err := g.Value.Get(ctx)
	if err != nil {
		return nil, err
	}
	stored, _ := raw.(map[string]any)
	return overlay(g.defs.materialize(), stored), nil
}

// Set implements Entry. A group may only be set to a map; anything else is a
// type error and leaves the store unchanged.
func (g *Group) Set(ctx context.Context, value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return &TypeError{Path: g.Path(), Value: value}
	}
	return g.Value.Set(ctx, m)
}

// Clear implements Entry. It wipes all stored data at and below this path,
// reverting every descendant to its registered default on next read.
func (g *Group) Clear(ctx context.Context) error {
	return g.Set(ctx, map[string]any{})
}

// Update implements Entry. It behaves like Value.Update with the group's
// map constraint applied to fn's result.
func (g *Group) Update(ctx context.Context, fn UpdateFunc) error {
	current, err := g.Value.Get(ctx)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return g.Set(ctx, next)
}
