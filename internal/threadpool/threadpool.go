// Package threadpool implements the reference-counted worker thread
// pool that asynchronous batches draw their workers from: capacity
// acquired up front, released back for reuse, and idle capacity
// reclaimed on request.
package threadpool

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// Reason explains why Acquire returned fewer threads than requested.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonThreadPoolExhausted
)

// AcquireFlags modifies Acquire's behavior.
type AcquireFlags uint8

const (
	// AllOrNothing makes Acquire reserve either exactly n threads or
	// none at all, rather than degrading to however many are free.
	AllOrNothing AcquireFlags = 1 << iota
)

// Worker is a reusable capacity token handed out by Acquire. StackHint
// records the stack-size attribute that was in effect when this worker
// was first created; changing the pool's attribute later never affects
// workers already constructed.
type Worker struct {
	StackHint int
}

// Pool is a capacity-bounded, reference-counted thread pool. Acquired
// workers are plain tokens: the caller drives the actual goroutine that
// does the work and calls Release when done.
type Pool struct {
	maxThreads int
	sem        *semaphore.Weighted

	mu        sync.Mutex
	stackHint int
	idle      []*Worker
	created   int
	refs      int
}

// New creates a pool capped at maxThreads concurrently acquired
// workers, with an initial reference count of 1.
func New(maxThreads int) *Pool {
	return &Pool{
		maxThreads: maxThreads,
		sem:        semaphore.NewWeighted(int64(maxThreads)),
		refs:       1,
	}
}

// Ref increments the pool's reference count, for a second context
// sharing the same global pool.
func (p *Pool) Ref() *Pool {
	p.mu.Lock()
	p.refs++
	p.mu.Unlock()
	return p
}

// Unref decrements the reference count. The pool itself has no
// teardown step beyond Cleanup; Unref only tracks how many contexts
// still depend on it.
func (p *Pool) Unref() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs--
	return p.refs
}

// SetStackHint sets the stack-size attribute applied to workers created
// from this point on. Workers already created, whether idle or checked
// out, keep whatever hint was active when they were made.
func (p *Pool) SetStackHint(bytes int) {
	p.mu.Lock()
	p.stackHint = bytes
	p.mu.Unlock()
}

// Acquire reserves n worker tokens. Without AllOrNothing it degrades
// gracefully, returning as many as are currently free (down to zero);
// with AllOrNothing it returns either exactly n or none, reporting
// ReasonThreadPoolExhausted in the latter case.
func (p *Pool) Acquire(n int, flags AcquireFlags) (workers []*Worker, reason Reason) {
	if n <= 0 {
		return nil, ReasonNone
	}
	if flags&AllOrNothing != 0 {
		if !p.sem.TryAcquire(int64(n)) {
			return nil, ReasonThreadPoolExhausted
		}
		return p.checkout(n), ReasonNone
	}
	for try := n; try > 0; try-- {
		if p.sem.TryAcquire(int64(try)) {
			return p.checkout(try), ReasonNone
		}
	}
	return nil, ReasonThreadPoolExhausted
}

func (p *Pool) checkout(n int) []*Worker {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Worker, 0, n)
	for len(out) < n {
		if m := len(p.idle); m > 0 {
			out = append(out, p.idle[m-1])
			p.idle = p.idle[:m-1]
			continue
		}
		p.created++
		out = append(out, &Worker{StackHint: p.stackHint})
	}
	return out
}

// Release returns workers to the pool for reuse, making their capacity
// available to a future Acquire.
func (p *Pool) Release(workers []*Worker) {
	if len(workers) == 0 {
		return
	}
	p.mu.Lock()
	p.idle = append(p.idle, workers...)
	p.mu.Unlock()
	p.sem.Release(int64(len(workers)))
}

// Cleanup discards every currently idle worker, simulating releasing
// its underlying OS thread, and returns how many were reclaimed. Only
// idle workers are affected; workers still checked out are untouched.
func (p *Pool) Cleanup() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	reclaimed := len(p.idle)
	p.idle = nil
	p.created -= reclaimed
	return reclaimed
}

// Created returns how many worker tokens this pool has ever
// constructed (checked out or idle, minus however many Cleanup has
// reclaimed), for tests and diagnostics.
func (p *Pool) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
