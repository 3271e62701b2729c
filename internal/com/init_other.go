//go:build !windows

package com

// COM only exists on Windows; other hosts have nothing to initialize.
func initialize() error { return nil }
