//go:build windows

package com

import (
	"errors"

	ole "github.com/go-ole/go-ole"
)

const (
	sOK    = 0x00000000
	sFalse = 0x00000001
)

// initialize joins the process-wide multi-threaded apartment. S_FALSE means
// the calling thread was already initialized, which is fine.
func initialize() error {
	err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) && oleErr.Code() == sFalse {
		return nil
	}
	return err
}
