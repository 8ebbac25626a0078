//go:build windows

package writeback

import (
	"syscall"
	"unsafe"
)

// MoveFileEx flags
const (
	movefileReplaceExisting = 0x1
	movefileWriteThrough    = 0x8
)

var (
	modkernel32     = syscall.NewLazyDLL("kernel32.dll")
	procMoveFileExW = modkernel32.NewProc("MoveFileExW")
)

// osReplace replaces dest with tmpPath using MoveFileExW.
func osReplace(tmpPath, dest string) error {
	from, err := syscall.UTF16PtrFromString(tmpPath)
	if err != nil {
		return err
	}
	to, err := syscall.UTF16PtrFromString(dest)
	if err != nil {
		return err
	}

	r1, _, e1 := procMoveFileExW.Call(
		uintptr(unsafe.Pointer(from)),
		uintptr(unsafe.Pointer(to)),
		uintptr(movefileReplaceExisting|movefileWriteThrough),
	)
	if r1 == 0 {
		return e1
	}

	return nil
}

// syncDir is a no-op, directories can't be synced on Windows.
func syncDir(string) error {
	return nil
}
