package condsync

import "sync"

// Group counts outstanding units of work. Callers Enter before the
// work starts and Leave when it is finished. Other goroutines call
// Wait to block until every Enter has been matched by a Leave.
//
// A Group is reusable: once the count reaches zero more Enter/Leave
// pairs may be issued and Wait called again. The zero value is ready
// to use. A Group must not be copied after first use.
type Group struct {
	noCopy noCopy     // Prevents copying of the Group
	mu     sync.Mutex // Guards n and binds c
	c      sync.Cond  // Broadcast on every Leave
	n      int        // Outstanding Enter calls
}

// lock acquires the Group's mutex and binds the condition variable
// on first use.
func (g *Group) lock() {
	g.mu.Lock()
	if g.c.L == nil {
		g.c.L = &g.mu
	}
}

// Enter adds one unit of outstanding work.
func (g *Group) Enter() {
	g.lock()
	g.n++
	g.mu.Unlock()
}

// Leave marks one unit of work as finished and wakes every goroutine
// blocked in Wait so it can re-check the count. Each Leave must be
// paired with an earlier Enter. An unmatched Leave is a contract
// violation; Leave asserts against it by panicking when the count
// goes negative, and the count is left negative.
func (g *Group) Leave() {
	g.lock()
	g.n--
	n := g.n
	g.mu.Unlock()

	if n < 0 {
		panic("condsync: negative Group counter")
	}

	g.c.Broadcast()
}

// Wait blocks the calling goroutine until the count is zero. If the
// count is already zero, it returns immediately.
func (g *Group) Wait() {
	g.lock()
	for g.n != 0 {
		g.c.Wait()
	}
	g.mu.Unlock()
}

// Count returns the number of outstanding Enter calls at the time of
// the call.
func (g *Group) Count() int {
	g.lock()
	defer g.mu.Unlock()
	return g.n
}
