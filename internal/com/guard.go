// Package com binds the Windows Spell Checking API (spellcheck.h) and
// owns the process-wide COM initialization.
package com

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupportedPlatform is returned when the Windows Spell Checking API is
// not available on this host.
var ErrUnsupportedPlatform = errors.New("com: spell checking API requires Windows")

// Guard runs a platform initialization exactly once per process.
// A failing initialization is fatal: nothing can be constructed without it.
type Guard struct {
	once sync.Once
	init func() error
}

// NewGuard returns a Guard around init.
func NewGuard(init func() error) *Guard {
	return &Guard{init: init}
}

// Ensure performs the initialization on first use and blocks concurrent
// callers until it has completed. Later calls are no-ops.
func (g *Guard) Ensure() {
	g.once.Do(func() {
		if err := g.init(); err != nil {
			panic(fmt.Sprintf("com: failed to initialize COM: %v", err))
		}
	})
}

var processGuard = NewGuard(initialize)

// EnsureInitialized initializes COM for the multi-threaded apartment once
// per process. It panics if COM cannot be initialized.
func EnsureInitialized() { processGuard.Ensure() }
