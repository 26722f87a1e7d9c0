// Package worksync implements the wait/wake handoff between a batch's
// submitter and its worker threads: a jobs-phase barrier ("every job
// claimed and finished") and a completion barrier ("every worker done
// with its bands"), each backed by a futex on Linux or a condition
// variable everywhere else.
package worksync

// Gate is a single-word wait/wake primitive modeled on a futex: a
// generation counter that Wait blocks on while it still equals the
// caller's last-observed value, and that Wake bumps before waking every
// blocked waiter. It is the shape shared by futexJobsFinished and
// threadsRunningCount in the batch coordination protocol.
type Gate struct {
	backend gateBackend
}

type gateBackend interface {
	wait(want uint32)
	wake()
	value() uint32
}

// NewGate returns a Gate using the platform's preferred backend (futex
// on Linux, mutex+condition-variable elsewhere).
func NewGate() *Gate {
	return &Gate{backend: newGateBackend()}
}

// Wait blocks the calling goroutine while the gate's value still equals
// want. Returns immediately if it has already moved past want.
func (g *Gate) Wait(want uint32) { g.backend.wait(want) }

// Wake bumps the gate's value and releases every goroutine blocked in
// Wait.
func (g *Gate) Wake() { g.backend.wake() }

// Value returns the gate's current generation counter.
func (g *Gate) Value() uint32 { return g.backend.value() }
