package confkit_test

import (
	"testing"

	"github.com/randalmurphal/confkit/pkg/confkit"
	"github.com/randalmurphal/confkit/pkg/confkit/driver"
)

// newTestConfig creates a Config backed by a fresh in-memory driver.
func newTestConfig(t *testing.T, opts ...confkit.Option) *confkit.Config {
	t.Helper()

	drv := driver.NewMemory()
	t.Cleanup(func() { _ = drv.Close() })

	return confkit.New("testmod", "271828", drv, opts...)
}

// attr resolves a child of g and fails the test on error.
func attr(t *testing.T, g *confkit.Group, name string) confkit.Entry {
	t.Helper()

	entry, err := g.Attr(name)
	if err != nil {
		t.Fatalf("resolve %q: %v", name, err)
	}
	return entry
}
