//go:build linux

package worksync

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux futex(2) op codes for the private (single-process) variants;
// these aren't exported by golang.org/x/sys/unix as named constants, so
// they're spelled out here against the stable kernel ABI values.
const (
	futexWaitPrivate = 0 | 128
	futexWakePrivate = 1 | 128
)

type futexGate struct {
	word atomic.Uint32
}

func newGateBackend() gateBackend { return &futexGate{} }

func (f *futexGate) value() uint32 { return f.word.Load() }

func (f *futexGate) wake() {
	f.word.Add(1)
	addr := (*int32)(unsafe.Pointer(&f.word))
	unix.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)), uintptr(futexWakePrivate), ^uintptr(0)>>1, 0, 0, 0)
}

func (f *futexGate) wait(want uint32) {
	for {
		cur := f.word.Load()
		if cur != want {
			return
		}
		addr := (*int32)(unsafe.Pointer(&f.word))
		unix.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)), uintptr(futexWaitPrivate), uintptr(cur), 0, 0, 0)
	}
}
