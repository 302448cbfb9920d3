package condsync

import (
	"context"
	"runtime/trace"
	"sync"

	"github.com/gammazero/deque"
)

// Semaphore is a counting permit gate admitting at most maxCount
// holders at once. Waiters are admitted in strict arrival order: each
// Wait takes a ticket from a monotonically increasing counter and
// joins a FIFO of waiting tickets, and only the ticket at the front
// may take a free permit.
//
// With maxCount 1 the Semaphore behaves as a hand-off mutex. With
// maxCount 0 it is a pure signalling gate: Wait blocks until a Signal
// has released a permit.
type Semaphore struct {
	noCopy   noCopy              // Prevents copying of the semaphore
	mu       sync.Mutex          // Guards everything below
	c        sync.Cond           // Broadcast on Signal and admission
	inUse    int                 // Permits held (negative after unmatched Signals)
	maxCount int                 // Capacity
	next     uint64              // Next ticket to hand out
	waiting  deque.Deque[uint64] // Tickets waiting for admission
}

// NewSemaphore returns a Semaphore with capacity maxCount.
func NewSemaphore(maxCount int) *Semaphore {
	s := &Semaphore{maxCount: maxCount}
	s.c.L = &s.mu
	return s
}

// Wait blocks until the caller's ticket reaches the front of the
// queue and a permit is free, then consumes the permit.
func (s *Semaphore) Wait() {
	s.mu.Lock()

	t := s.next
	s.next++
	s.waiting.PushBack(t)

	if !s.admissible(t) {
		if trace.IsEnabled() {
			trace.Logf(context.Background(), traceCategory, "SEMA WAIT ticket %v queued %v", t, s.waiting.Len())
		}
		region := trace.StartRegion(context.Background(), traceSemaRegion)
		for !s.admissible(t) {
			s.c.Wait()
		}
		region.End()
	}

	s.waiting.PopFront()
	s.inUse++
	s.mu.Unlock()

	// The next ticket may also fit if capacity remains.
	s.c.Broadcast()
}

// admissible reports whether ticket t may take a permit. s.mu must be
// held.
func (s *Semaphore) admissible(t uint64) bool {
	return s.waiting.Front() == t && s.inUse < s.maxCount
}

// Signal releases one permit and wakes all waiters so they can
// re-check admission. A Signal without a matching Wait pre-releases a
// permit for a later Wait.
func (s *Semaphore) Signal() {
	s.mu.Lock()
	s.inUse--
	s.mu.Unlock()

	s.c.Broadcast()
}

// Waiting returns the number of goroutines blocked in Wait.
func (s *Semaphore) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting.Len()
}
