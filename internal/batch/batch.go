package batch

import (
	"sync/atomic"

	"github.com/gogpu/raster2d/internal/rastercmd"
)

// ErrorFlags is an OR of failure categories accumulated while a batch
// executes asynchronously, since the originating draw call has already
// returned by the time a worker observes the failure.
type ErrorFlags uint32

const (
	ErrInvalidValue ErrorFlags = 1 << iota
	ErrInvalidState
	ErrInvalidGeometry
	ErrInvalidGlyph
	ErrInvalidFont
	ErrThreadPoolExhausted
	ErrOutOfMemory
	ErrUnknown
)

// Job is a unit of the jobs phase: typically finalizing an edge list so
// the commands it feeds can run band-parallel. A job returning a
// non-zero ErrorFlags contributes it to the batch without aborting the
// remaining jobs.
type Job func() ErrorFlags

// ImageRef is an opaque handle into an image queue entry (e.g. a blit
// source), kept separate from the command it's attached to so the same
// image can be referenced by more than one command without copying.
type ImageRef struct {
	ID     uint64
	Width  int
	Height int
}

// Batch is the work unit for asynchronous execution: four queues of
// fixed-capacity blocks, an atomically-claimed job index, accumulated
// error flags, and the worker/band counts the synchronization layer
// needs to know when the last worker has finished.
type Batch struct {
	Jobs     Queue[Job]
	Fetches  Queue[*rastercmd.FetchData]
	Images   Queue[ImageRef]
	Commands Queue[*rastercmd.Command]

	jobIndex   atomic.Uint64
	errorFlags atomic.Uint32

	workerCount       int
	bandStateSlots    int
	commandQueueLimit int // soft hint, currently has no effect
}

// New creates an empty batch sized for workerCount worker threads, each
// tracking bandStateSlots worth of per-band pipeline state.
func New(workerCount, bandStateSlots int) *Batch {
	return &Batch{workerCount: workerCount, bandStateSlots: bandStateSlots}
}

// WorkerCount returns the number of worker threads this batch was sized
// for at creation.
func (b *Batch) WorkerCount() int { return b.workerCount }

// BandStateSlots returns the number of per-band pipeline-state slots
// each worker carries while executing this batch's commands.
func (b *Batch) BandStateSlots() int { return b.bandStateSlots }

// SetCommandQueueLimit accepts and stores a soft capacity hint on the
// command queue. It currently has no effect: queue blocks are always
// allocated on overflow, matching the "no effect at the moment" status
// this field carries upstream.
func (b *Batch) SetCommandQueueLimit(n int) { b.commandQueueLimit = n }

// CommandQueueLimit returns the hint set by SetCommandQueueLimit.
func (b *Batch) CommandQueueLimit() int { return b.commandQueueLimit }

// NextJobIndex atomically claims the next job index for the calling
// worker. ok is false once every job in Jobs has been claimed.
func (b *Batch) NextJobIndex() (index int, ok bool) {
	i := b.jobIndex.Add(1) - 1
	if int(i) >= b.Jobs.Len() {
		return 0, false
	}
	return int(i), true
}

// AddError folds flags into the batch's accumulated error state. Safe
// to call concurrently from any worker.
func (b *Batch) AddError(flags ErrorFlags) {
	if flags == 0 {
		return
	}
	b.errorFlags.Or(uint32(flags))
}

// ErrorFlags returns the accumulated error flags observed so far.
func (b *Batch) ErrorFlags() ErrorFlags { return ErrorFlags(b.errorFlags.Load()) }

// ClearErrors resets the accumulated error flags. Errors are only ever
// cleared by an explicit call, never implicitly.
func (b *Batch) ClearErrors() { b.errorFlags.Store(0) }
