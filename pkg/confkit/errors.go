// Package confkit provides a hierarchical, scope-partitioned settings store.
package confkit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for default registration.
var (
	// ErrConflict indicates a group and a value were registered under the same name.
	ErrConflict = errors.New("group and value registered under the same name")

	// ErrInvalidKey indicates a registration key segment is not a bare identifier.
	ErrInvalidKey = errors.New("invalid settings key")
)

// Sentinel errors for attribute resolution and mutation.
var (
	// ErrUnregistered indicates access to an unregistered attribute under strict registration.
	ErrUnregistered = errors.New("attribute not registered")

	// ErrNotGroup indicates path traversal descended through a value attribute.
	ErrNotGroup = errors.New("attribute is not a group")

	// ErrNotMap indicates a group was set to something other than a map.
	ErrNotMap = errors.New("group value must be a map")

	// ErrNotMutable indicates Update was called on a value whose default is not a container.
	ErrNotMutable = errors.New("update requires a map or slice default")
)

// ConflictError reports a leaf/group collision during registration.
type ConflictError struct {
	// Scope is the scope tag the registration targeted.
	Scope Scope
	// Key is the colliding key, dotted from the registration root.
	Key string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("register %s: key %q: %v", e.Scope, e.Key, ErrConflict)
}

// Unwrap returns ErrConflict for errors.Is support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvalidKeyError reports a malformed segment in a registration key.
type InvalidKeyError struct {
	// Key is the full key as supplied by the caller.
	Key string
	// Segment is the offending segment within Key.
	Segment string
}

// Error implements the error interface.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("key %q: segment %q: %v", e.Key, e.Segment, ErrInvalidKey)
}

// Unwrap returns ErrInvalidKey for errors.Is support.
func (e *InvalidKeyError) Unwrap() error {
	return ErrInvalidKey
}

// UnregisteredError reports strict-mode access to an unknown attribute.
type UnregisteredError struct {
	// Path is the group the attribute was resolved against.
	Path []string
	// Name is the attribute that was requested.
	Name string
}

// Error implements the error interface.
func (e *UnregisteredError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Name, strings.Join(e.Path, "/"), ErrUnregistered)
}

// Unwrap returns ErrUnregistered for errors.Is support.
func (e *UnregisteredError) Unwrap() error {
	return ErrUnregistered
}

// TypeError reports an attempt to overwrite a group with a non-map value.
type TypeError struct {
	// Path is the group that rejected the value.
	Path []string
	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("set %s to %T: %v", strings.Join(e.Path, "/"), e.Value, ErrNotMap)
}

// Unwrap returns ErrNotMap for errors.Is support.
func (e *TypeError) Unwrap() error {
	return ErrNotMap
}

// UpdateError reports an Update against a value with a non-container default.
type UpdateError struct {
	// Path is the value the update targeted.
	Path []string
	// Default is the registered default that disqualified the update.
	Default any
}

// Error implements the error interface.
func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s with %T default: %v", strings.Join(e.Path, "/"), e.Default, ErrNotMutable)
}

// Unwrap returns ErrNotMutable for errors.Is support.
func (e *UpdateError) Unwrap() error {
	return ErrNotMutable
}
