package confkit

import (
	"strings"
	"unicode"
)

// node is one entry in a registered defaults tree. A node is either a branch
// (a nested group of settings) or a leaf (a single default value).
type node interface {
	isNode()
}

// leaf holds the registered default for a single value.
type leaf struct {
	def any
}

func (leaf) isNode() {}

// branch holds the registered children of a group.
type branch struct {
	children map[string]node
}

func (*branch) isNode() {}

func newBranch() *branch {
	return &branch{children: make(map[string]node)}
}

// child returns the node registered under name, if any.
func (b *branch) child(name string) (node, bool) {
	n, ok := b.children[name]
	return n, ok
}

// materialize converts the tree back into a plain nested map of defaults.
// Leaf values are deep-copied so callers cannot mutate registered state.
func (b *branch) materialize() map[string]any {
	out := make(map[string]any, len(b.children))
	for name, n := range b.children {
		switch n := n.(type) {
		case *branch:
			out[name] = n.materialize()
		case leaf:
			out[name] = deepCopy(n.def)
		}
	}
	return out
}

// merge folds a registration map into the tree. Keys may be dotted to register
// nested defaults ("autoplay.enabled" ≡ {"autoplay": {"enabled": ...}}); every
// segment must be a bare identifier. Map values recurse as branches, anything
// else becomes a leaf. A leaf meeting a branch at the same path is a conflict;
// a leaf meeting a leaf overwrites the stored default.
func (b *branch) merge(scope Scope, prefix string, defaults map[string]any) error {
	for key, value := range defaults {
		segments, err := splitKey(key)
		if err != nil {
			return err
		}
		target := b
		for _, seg := range segments[:len(segments)-1] {
			next, err := target.descend(scope, joinKey(prefix, key), seg)
			if err != nil {
				return err
			}
			target = next
		}
		last := segments[len(segments)-1]
		if err := target.assign(scope, joinKey(prefix, key), last, value); err != nil {
			return err
		}
	}
	return nil
}

// descend returns the branch under name, creating it when absent.
func (b *branch) descend(scope Scope, fullKey, name string) (*branch, error) {
	existing, ok := b.children[name]
	if !ok {
		next := newBranch()
		b.children[name] = next
		return next, nil
	}
	next, ok := existing.(*branch)
	if !ok {
		return nil, &ConflictError{Scope: scope, Key: fullKey}
	}
	return next, nil
}

// assign stores value under name, recursing when value is a map.
func (b *branch) assign(scope Scope, fullKey, name string, value any) error {
	asMap, valueIsMap := value.(map[string]any)
	if existing, ok := b.children[name]; ok {
		_, existingIsBranch := existing.(*branch)
		if valueIsMap != existingIsBranch {
			return &ConflictError{Scope: scope, Key: fullKey}
		}
	}
	if valueIsMap {
		target, err := b.descend(scope, fullKey, name)
		if err != nil {
			return err
		}
		return target.merge(scope, fullKey, asMap)
	}
	b.children[name] = leaf{def: deepCopy(value)}
	return nil
}

// resolve walks the tree along path, returning the node it lands on.
func resolve(root *branch, path []string) (node, bool) {
	var current node = root
	for _, seg := range path {
		b, ok := current.(*branch)
		if !ok {
			return nil, false
		}
		current, ok = b.child(seg)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// splitKey splits a dotted registration key into validated segments.
func splitKey(key string) ([]string, error) {
	segments := strings.Split(key, ".")
	for _, seg := range segments {
		if !validIdentifier(seg) {
			return nil, &InvalidKeyError{Key: key, Segment: seg}
		}
	}
	return segments, nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// validIdentifier reports whether s is a bare identifier: a letter or
// underscore followed by letters, digits, or underscores.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
