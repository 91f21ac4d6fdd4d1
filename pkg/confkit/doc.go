/*
Package confkit provides a hierarchical, scope-partitioned settings store.

# Overview

confkit is a Go library for persisting structured module settings across six
scopes: global, per-guild, per-channel, per-role, per-user, and per-member.
Values live at arbitrary-depth paths inside a tree; registered defaults merge
with whatever partial data actually exists in storage, so callers always read
a fully defaulted view while only explicitly written data is persisted.

Persistence is pluggable through the driver package, which ships memory,
JSON file, and SQLite backends.

# Basic Usage

Register defaults once at startup, then read and write through scope
accessors:

	drv := driver.NewMemory()
	defer drv.Close()

	cfg := confkit.New("audio", "271828", drv)
	cfg.RegisterGlobal(map[string]any{"enabled": false})
	cfg.RegisterGuild(map[string]any{"roles": []any{}})

	ctx := context.Background()

	enabled, _ := cfg.Global().Attr("enabled")
	_ = enabled.Set(ctx, true)
	on, _ := enabled.Get(ctx) // true
	_ = enabled.Clear(ctx)
	on, _ = enabled.Get(ctx) // false again: the registered default

# Nested Defaults

Map values register nested groups, and dotted keys are shorthand for the same
thing:

	cfg.RegisterGlobal(map[string]any{"autoplay.enabled": false})
	// ≡ cfg.RegisterGlobal(map[string]any{"autoplay": map[string]any{"enabled": false}})

	entry, _ := cfg.Global().At("autoplay", "enabled")
	v, _ := entry.Get(ctx) // false

Registering a group and a value under the same name is a conflict and fails
with ErrConflict; re-registering a leaf simply replaces its default.

# Updating Containers

Update performs a read-modify-write for map and slice values. The callback
returns the replacement; returning an error discards the write:

	roles, _ := cfg.Guild(42).Attr("roles")
	_ = roles.Update(ctx, func(cur any) (any, error) {
	    return append(cur.([]any), "admin"), nil
	})

There is no cross-caller locking: two concurrent updates of the same path
both commit and the last write wins.

# Strict Registration

With confkit.WithStrictRegistration, resolving an attribute that was never
registered fails with ErrUnregistered instead of returning an undefaulted
value. Use it; it turns typos into immediate errors.

# Observability

Structured logging, OpenTelemetry metrics, and tracing are opt-in via
WithLogger, WithMetrics, and WithSpans, and instrument every driver call.
*/
package confkit
