//go:build !linux

package worksync

import "sync"

type condGate struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count uint32
}

func newGateBackend() gateBackend {
	g := &condGate{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

func (g *condGate) value() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

func (g *condGate) wake() {
	g.mu.Lock()
	g.count++
	g.mu.Unlock()
	g.cond.Broadcast()
}

func (g *condGate) wait(want uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for g.count == want {
		g.cond.Wait()
	}
}
