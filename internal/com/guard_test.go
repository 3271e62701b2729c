package com

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_InitializesOnce(t *testing.T) {
	var calls atomic.Int32
	g := NewGuard(func() error {
		calls.Add(1)
		return nil
	})

	for range 10 {
		g.Ensure()
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestGuard_ConcurrentCallersWaitForInit(t *testing.T) {
	var calls atomic.Int32
	var ready atomic.Bool
	g := NewGuard(func() error {
		calls.Add(1)
		ready.Store(true)
		return nil
	})

	var wg sync.WaitGroup
	var sawReady atomic.Int32
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Ensure()
			if ready.Load() {
				sawReady.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(64), sawReady.Load())
}

func TestGuard_FailureIsFatal(t *testing.T) {
	g := NewGuard(func() error { return errors.New("boom") })
	assert.PanicsWithValue(t, "com: failed to initialize COM: boom", g.Ensure)
}

func TestEnsureInitialized_Repeated(t *testing.T) {
	require.NotPanics(t, func() {
		for range 5 {
			EnsureInitialized()
		}
	})
}
