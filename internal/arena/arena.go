// Package arena implements a bump allocator over growable byte blocks.
//
// It is the scratch allocator used by the edge builder: many small,
// short-lived edge vectors are carved out of a handful of larger blocks,
// and the whole lot is released at once (or rewound to a savepoint) rather
// than individually freed. This trades per-object bookkeeping for a single
// pointer bump, the way the source engine's ArenaAllocator does over
// malloc-backed blocks.
package arena

import (
	"log/slog"
	"unsafe"
)

const (
	// minBlockSize is the smallest block the arena will allocate.
	minBlockSize = 1024
	// maxBlockSize caps the doubling growth so a single oversized request
	// doesn't leave the arena holding an unreasonably large block forever.
	maxBlockSize = 1 << 20
	// maxAlignment bounds the alignment Alloc can honor; block backing
	// storage is over-allocated by this much so data[0] can always be
	// shifted onto a maxAlignment boundary regardless of where the Go
	// allocator happened to place the underlying array.
	maxAlignment = 64
)

// block is one arena-owned slab. data[0] is guaranteed aligned to
// maxAlignment; cap(data) is the block's capacity and used is how many
// bytes have been handed out from it so far.
type block struct {
	raw  []byte // the actual allocation, oversized for alignment padding
	data []byte // raw, shifted so data[0] is maxAlignment-aligned
	used int
}

func newBlock(size int) *block {
	raw := make([]byte, size+maxAlignment)
	base := uintptr(unsafe.Pointer(&raw[0]))
	pad := (maxAlignment - int(base%maxAlignment)) % maxAlignment
	return &block{raw: raw, data: raw[pad : pad : pad+size]}
}

// State is an opaque savepoint returned by Save and consumed by Restore.
// It names a block and an offset within it; restoring rewinds bump
// pointers so that everything allocated after the save point is
// conceptually freed without touching the backing memory.
type State struct {
	blockIndex int
	used       int
}

// Arena is a bump allocator over a list of growable blocks. It is not safe
// for concurrent use; callers that need one arena per worker (as the
// rendering context does) should construct one per goroutine.
type Arena struct {
	blocks      []*block
	current     int // index into blocks of the block bump-allocating from
	initialSize int
	static      bool // blocks[0] is the caller's buffer from NewWithStatic
	log         *slog.Logger
}

// New creates an empty Arena. initialBlockSize sizes the first block
// lazily allocated on the first Alloc call; it is clamped to
// [minBlockSize, maxBlockSize].
func New(initialBlockSize int) *Arena {
	if initialBlockSize < minBlockSize {
		initialBlockSize = minBlockSize
	}
	if initialBlockSize > maxBlockSize {
		initialBlockSize = maxBlockSize
	}
	return &Arena{
		initialSize: initialBlockSize,
		current:     -1,
		log:         slog.Default(),
	}
}

// NewWithStatic creates an Arena that embeds a caller-provided static
// buffer as its first block, avoiding a heap allocation for small
// contexts that never exceed it. The static buffer must outlive the
// Arena; Reset never frees it.
func NewWithStatic(static []byte, initialBlockSize int) *Arena {
	a := New(initialBlockSize)
	a.blocks = append(a.blocks, &block{raw: static, data: static[:0:cap(static)]})
	a.current = 0
	a.static = true
	return a
}

// Alloc returns size bytes aligned to alignment (which must be a power of
// two), allocating a new block if the current one lacks room. The
// returned slice's backing array is never moved until Reset or a Restore
// past this allocation; Alloc never shrinks an in-flight slice.
func (a *Arena) Alloc(size, alignment int) []byte {
	if size < 0 {
		return nil
	}
	if alignment < 1 {
		alignment = 1
	}

	if a.current >= 0 {
		b := a.blocks[a.current]
		aligned := alignUp(b.used, alignment)
		if aligned+size <= cap(b.data) {
			b.used = aligned + size
			if len(b.data) < b.used {
				b.data = b.data[:b.used]
			}
			return b.data[aligned:b.used]
		}
	}

	a.growFor(size, alignment)
	b := a.blocks[a.current]
	aligned := alignUp(b.used, alignment)
	b.used = aligned + size
	b.data = b.data[:b.used]
	return b.data[aligned:b.used]
}

// AllocZeroed behaves like Alloc but guarantees the returned range is all
// zero, for callers that cannot rely on the block being freshly allocated
// (a rewound-and-reused block is not re-zeroed automatically).
func (a *Arena) AllocZeroed(size, alignment int) []byte {
	buf := a.Alloc(size, alignment)
	clear(buf)
	return buf
}

// growFor allocates a new block sized to hold at least size+alignment
// bytes, doubling the previous block size (capped at maxBlockSize) unless
// the request itself is larger.
func (a *Arena) growFor(size, alignment int) {
	want := a.initialSize
	if len(a.blocks) > 0 {
		want = cap(a.blocks[len(a.blocks)-1].data) * 2
		if want > maxBlockSize {
			want = maxBlockSize
		}
	}
	need := size + alignment
	if want < need {
		want = need
	}
	a.blocks = append(a.blocks, newBlock(want))
	a.current = len(a.blocks) - 1
	a.log.Debug("arena: grew block", "index", a.current, "size", want)
}

func alignUp(v, alignment int) int {
	return (v + alignment - 1) &^ (alignment - 1)
}

// Save returns a savepoint naming the current bump position.
func (a *Arena) Save() State {
	if a.current < 0 {
		return State{blockIndex: -1}
	}
	return State{blockIndex: a.current, used: a.blocks[a.current].used}
}

// Restore rewinds the arena to a savepoint obtained from Save. Any blocks
// allocated after the savepoint are dropped from the block list; their
// capacity is not reused, and later growth allocates fresh blocks. Restore
// never moves the current block pointer past the empty sentinel state: if
// no blocks existed at save time (State.blockIndex == -1) and none were
// allocated since, the arena simply stays empty.
func (a *Arena) Restore(s State) {
	if s.blockIndex < 0 {
		a.current = -1
		a.blocks = a.blocks[:0]
		return
	}
	// Blocks allocated strictly after the savepoint are dropped from the
	// live list (they remain reachable only if something else retained a
	// slice into them, which callers must not do past a restore).
	a.blocks = a.blocks[:s.blockIndex+1]
	a.current = s.blockIndex
	a.blocks[a.current].used = s.used
	a.blocks[a.current].data = a.blocks[a.current].data[:s.used]
}

// BytesUsed returns the total number of bytes currently allocated across
// all live blocks. Restore(Save()) leaves this value unchanged.
func (a *Arena) BytesUsed() int {
	total := 0
	for _, b := range a.blocks {
		total += b.used
	}
	return total
}

// Reset releases all heap-allocated blocks and returns the arena to its
// just-constructed state. An arena built by NewWithStatic keeps its
// static block, rewound to empty, as the current block.
func (a *Arena) Reset() {
	if a.static && len(a.blocks) > 0 {
		s := a.blocks[0]
		s.used = 0
		s.data = s.data[:0]
		a.blocks = a.blocks[:1]
		a.current = 0
		return
	}
	a.blocks = a.blocks[:0]
	a.current = -1
}
