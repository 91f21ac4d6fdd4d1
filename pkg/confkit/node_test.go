package confkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidIdentifier(t *testing.T) {
	valid := []string{"a", "foo", "foo_bar", "_hidden", "v2", "CamelCase", "über"}
	for _, s := range valid {
		assert.True(t, validIdentifier(s), "%q", s)
	}

	invalid := []string{"", "2fast", "with space", "dash-ed", "dot.ted", "semi;colon"}
	for _, s := range invalid {
		assert.False(t, validIdentifier(s), "%q", s)
	}
}

func TestSplitKey(t *testing.T) {
	segments, err := splitKey("foo.bar.baz")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar", "baz"}, segments)

	segments, err = splitKey("single")
	require.NoError(t, err)
	assert.Equal(t, []string{"single"}, segments)

	for _, key := range []string{"", ".", "a..b", "a.", ".a", "a.2b"} {
		_, err := splitKey(key)
		require.Error(t, err, "key %q", key)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestBranchMergeDottedEqualsNested(t *testing.T) {
	dotted := newBranch()
	require.NoError(t, dotted.merge(ScopeGlobal, "", map[string]any{"a.b": false}))

	nested := newBranch()
	require.NoError(t, nested.merge(ScopeGlobal, "", map[string]any{
		"a": map[string]any{"b": false},
	}))

	assert.Equal(t, nested.materialize(), dotted.materialize())
	assert.Equal(t, map[string]any{"a": map[string]any{"b": false}}, dotted.materialize())
}

func TestBranchMergeConflicts(t *testing.T) {
	b := newBranch()
	require.NoError(t, b.merge(ScopeGlobal, "", map[string]any{"leaf": 1}))

	// Descending through a leaf is a conflict.
	err := b.merge(ScopeGlobal, "", map[string]any{"leaf.x": 2})
	assert.ErrorIs(t, err, ErrConflict)

	// So is assigning a map over a leaf...
	err = b.merge(ScopeGlobal, "", map[string]any{"leaf": map[string]any{"x": 2}})
	assert.ErrorIs(t, err, ErrConflict)

	// ...and a leaf over a branch.
	require.NoError(t, b.merge(ScopeGlobal, "", map[string]any{"grp": map[string]any{"x": 1}}))
	err = b.merge(ScopeGlobal, "", map[string]any{"grp": 7})
	assert.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ScopeGlobal, conflict.Scope)
	assert.Equal(t, "grp", conflict.Key)
}

func TestBranchMergeLeafOverwrite(t *testing.T) {
	b := newBranch()
	require.NoError(t, b.merge(ScopeGlobal, "", map[string]any{"foo": true}))
	require.NoError(t, b.merge(ScopeGlobal, "", map[string]any{"foo": false}))

	assert.Equal(t, map[string]any{"foo": false}, b.materialize())
}

func TestBranchMergeCopiesLeafValues(t *testing.T) {
	src := []any{"a"}
	b := newBranch()
	require.NoError(t, b.merge(ScopeGlobal, "", map[string]any{"tags": src}))

	src[0] = "mangled"
	assert.Equal(t, map[string]any{"tags": []any{"a"}}, b.materialize())
}

func TestResolve(t *testing.T) {
	b := newBranch()
	require.NoError(t, b.merge(ScopeGlobal, "", map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 3}},
	}))

	n, ok := resolve(b, []string{"a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, leaf{def: 3}, n)

	n, ok = resolve(b, []string{"a", "b"})
	require.True(t, ok)
	_, isBranch := n.(*branch)
	assert.True(t, isBranch)

	_, ok = resolve(b, []string{"a", "missing"})
	assert.False(t, ok)

	_, ok = resolve(b, []string{"a", "b", "c", "d"})
	assert.False(t, ok)
}

func TestOverlay(t *testing.T) {
	defaults := map[string]any{"a": 1, "b": map[string]any{"x": 1}}
	stored := map[string]any{"b": map[string]any{"y": 2}, "c": 3}

	out := overlay(defaults, stored)
	assert.Equal(t, map[string]any{
		"a": 1,
		"b": map[string]any{"y": 2},
		"c": 3,
	}, out)

	// The result aliases neither input.
	out["a"] = 99
	out["b"].(map[string]any)["y"] = 99
	assert.Equal(t, 1, defaults["a"])
	assert.Equal(t, 2, stored["b"].(map[string]any)["y"])
}
