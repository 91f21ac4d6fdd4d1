package confkit

import (
	"context"
	"errors"

	"github.com/randalmurphal/confkit/pkg/confkit/driver"
)

// UpdateFunc receives the current effective value of an entry and returns its
// replacement. Returning an error aborts the update without writing.
type UpdateFunc func(current any) (any, error)

// Entry is the common surface of Value and Group accessors. Attr resolution
// returns an Entry so callers can work with either shape uniformly.
type Entry interface {
	// Path returns the identifier path this entry is bound to.
	Path() []string

	// Get retrieves the stored value, falling back to the registered
	// default when nothing is stored. Absence is never an error.
	Get(ctx context.Context) (any, error)

	// GetOr behaves like Get but prefers override to the registered
	// default when nothing is stored and override is non-nil.
	GetOr(ctx context.Context, override any) (any, error)

	// Set stores value at this path, replacing whatever was there.
	Set(ctx context.Context, value any) error

	// Clear resets this path so reads fall back to defaults again.
	Clear(ctx context.Context) error

	// Update reads the current effective value, passes it to fn, and
	// persists fn's result. See Value.Update for the container contract.
	Update(ctx context.Context, fn UpdateFunc) error
}

// Value is a leaf accessor: a path bound to a registered default and a driver.
// Values are cheap to create and hold no state beyond their binding, so they
// can be re-derived freely from their Group.
type Value struct {
	path []string
	def  any
	drv  driver.Driver
}

// Compile-time interface check.
var _ Entry = (*Value)(nil)

// Path returns a copy of the identifier path this value is bound to.
func (v *Value) Path() []string {
	out := make([]string, len(v.path))
	copy(out, v.path)
	return out
}

// Default returns a copy of the registered default, or nil when unregistered.
func (v *Value) Default() any {
	return deepCopy(v.def)
}

// Get implements Entry.
func (v *Value) Get(ctx context.Context) (any, error) {
	return v.GetOr(ctx, nil)
}

// GetOr implements Entry. A stored value always wins; the override only
// substitutes for the registered default when the driver reports absence.
func (v *Value) GetOr(ctx context.Context, override any) (any, error) {
	stored, err := v.drv.Get(ctx, v.path)
	if errors.Is(err, driver.ErrNotFound) {
		if override != nil {
			return deepCopy(override), nil
		}
		return deepCopy(v.def), nil
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Set implements Entry.
func (v *Value) Set(ctx context.Context, value any) error {
	return v.drv.Set(ctx, v.path, value)
}

// Clear implements Entry. The stored entry is deleted outright, so the parent
// group's All no longer reports it and reads fall back to the default.
func (v *Value) Clear(ctx context.Context) error {
	return v.drv.Delete(ctx, v.path)
}

// Update implements Entry. It reads the current effective value (stored or
// default), hands it to fn, and persists the returned replacement.
//
// The registered default must be a mutable container (a map or slice);
// updating a scalar is a contract violation reported before any I/O, since a
// read-modify-write on a scalar is just a Set with extra steps. When fn
// returns an error the write is discarded and the error returned unchanged.
//
// Concurrent updates of the same path are not serialized: both read, both
// write, last write wins.
func (v *Value) Update(ctx context.Context, fn UpdateFunc) error {
	if !isMutableContainer(v.def) {
		return &UpdateError{Path: v.Path(), Default: v.def}
	}

	current, err := v.Get(ctx)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return v.Set(ctx, next)
}
