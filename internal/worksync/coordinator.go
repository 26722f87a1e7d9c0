package worksync

import (
	"sync/atomic"

	"github.com/gogpu/raster2d/internal/batch"
)

// Coordinator arms and drives one batch's worker synchronization
// protocol: a jobs-phase barrier the submitter waits on before starting
// the commands phase, then a completion barrier once every worker has
// finished its share of commands.
type Coordinator struct {
	workerCount int

	jobsRunningCount    atomic.Int64
	threadsRunningCount atomic.Int64

	jobsFinished *Gate
	jobsBaseline uint32

	allDone      *Gate
	doneBaseline uint32
}

// NewCoordinator creates a Coordinator for dispatching to workerCount
// worker threads (1 means the caller's own thread acts as the sole
// worker).
func NewCoordinator(workerCount int) *Coordinator {
	return &Coordinator{
		workerCount:  workerCount,
		jobsFinished: NewGate(),
		allDone:      NewGate(),
	}
}

// Arm resets the coordinator for a fresh dispatch: jobCount jobs still
// to run and workerCount threads about to call ThreadStarted. Must be
// called by the submitter before any worker is released to run; the
// atomic stores here are the memory barrier workers' ThreadStarted call
// synchronizes against.
func (c *Coordinator) Arm(jobCount int) {
	c.jobsRunningCount.Store(int64(jobCount))
	c.threadsRunningCount.Store(int64(c.workerCount))
	c.jobsBaseline = c.jobsFinished.Value()
	c.doneBaseline = c.allDone.Value()
}

// WorkerCount returns the number of worker threads this coordinator was
// created for.
func (c *Coordinator) WorkerCount() int { return c.workerCount }

// ThreadStarted marks a worker's entry into the armed dispatch. It
// exists to name the barrier a worker crosses after Arm, mirroring the
// acquire side of the submitter's release; no additional bookkeeping is
// needed because Go's memory model already orders the goroutine spawn
// that precedes it.
func (c *Coordinator) ThreadStarted() {}

// RunJobsPhase drives one worker's share of the jobs phase: it claims
// job indices from b until none remain, runs each job, folds its
// returned error flags into b, and reports each completion. Safe to
// call concurrently from every worker.
func (c *Coordinator) RunJobsPhase(b *batch.Batch) {
	for {
		idx, ok := b.NextJobIndex()
		if !ok {
			return
		}
		job, ok := b.Jobs.At(idx)
		if !ok {
			continue
		}
		b.AddError(job())
		c.JobFinished()
	}
}

// JobFinished records that one claimed job has completed. Once every
// job armed for this dispatch has finished, it wakes the submitter.
func (c *Coordinator) JobFinished() {
	if c.jobsRunningCount.Add(-1) == 0 {
		c.jobsFinished.Wake()
	}
}

// NoJobsToWaitFor substitutes for the jobs phase when a batch has zero
// jobs, performing the same one-shot wake so WaitForJobsToFinish never
// blocks on an empty batch.
func (c *Coordinator) NoJobsToWaitFor() {
	c.jobsFinished.Wake()
}

// WaitForJobsToFinish blocks the submitter until every armed job has
// completed (or NoJobsToWaitFor fired).
func (c *Coordinator) WaitForJobsToFinish() {
	c.jobsFinished.Wait(c.jobsBaseline)
}

// WorkerFinished records that a worker has completed its share of the
// commands phase. Once every worker armed for this dispatch has
// finished, it wakes the submitter.
func (c *Coordinator) WorkerFinished() {
	if c.threadsRunningCount.Add(-1) == 0 {
		c.allDone.Wake()
	}
}

// WaitForThreadsToFinish blocks the submitter until every worker has
// called WorkerFinished.
func (c *Coordinator) WaitForThreadsToFinish() {
	c.allDone.Wait(c.doneBaseline)
}

// OwnsBand reports whether worker workerID (0-based, out of
// workerCount total) is responsible for bandID, under the mod-W
// partitioning rule that keeps any two workers from ever writing to the
// same row.
func OwnsBand(workerID, workerCount, bandID int) bool {
	if workerCount <= 0 {
		return workerID == 0
	}
	m := bandID % workerCount
	if m < 0 {
		m += workerCount
	}
	return m == workerID
}
