// Package mimictest provides test-lifecycle helpers that inject a fake
// service environment into tests.
//
// An Env is a mutable set of named bindings that code under test reads in
// place of the real service environment. Prefer passing the Env into the code
// under test explicitly; Current exists as a fallback for code paths that can
// only reach the environment through a process-wide registry.
package mimictest

import (
	"context"
	"sync"
	"testing"

	"github.com/leapstack-labs/mimicdb/pkg/mimic"
)

// Env is a mutable binding set injected into a test. It is safe for
// concurrent use, though tests typically touch it from a single goroutine.
type Env struct {
	mu       sync.Mutex
	bindings map[string]any
}

var (
	currentMu sync.Mutex
	current   *Env
)

// New returns a fresh Env, installs it as the current one and restores the
// previous Env when the test finishes.
func New(t testing.TB) *Env {
	t.Helper()

	e := &Env{bindings: make(map[string]any)}

	currentMu.Lock()
	prev := current
	current = e
	currentMu.Unlock()

	t.Cleanup(func() {
		currentMu.Lock()
		current = prev
		currentMu.Unlock()
	})
	return e
}

// Current returns the Env installed by the most recent New, or nil when no
// test has installed one.
func Current() *Env {
	currentMu.Lock()
	defer currentMu.Unlock()
	return current
}

// Bind sets a named binding, replacing any previous value.
func (e *Env) Bind(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings[name] = value
}

// Get returns a named binding, or nil when absent.
func (e *Env) Get(name string) any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bindings[name]
}

// ProvisionDatabase bootstraps an in-memory database from the given
// migrations directory, binds it under name and closes it when the test
// finishes. The test fails immediately if a migration breaks.
func (e *Env) ProvisionDatabase(t testing.TB, name, migrationsDir string) *mimic.Database {
	t.Helper()

	db, err := mimic.Bootstrap(context.Background(), migrationsDir)
	if err != nil {
		t.Fatalf("failed to provision database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	e.Bind(name, db)
	return db
}
