package condsync

import "sync"

// ErrGroup runs functions on their own goroutines and collects the
// first error any of them returns. It is a Group with an error slot.
// The zero value is ready to use.
type ErrGroup struct {
	noCopy noCopy     // Prevents copying of the ErrGroup
	wg     Group      // Outstanding goroutines
	mu     sync.Mutex // Guards err
	err    error      // The first error returned by any function
}

// Go calls f on a new goroutine. The first non-nil error returned by
// any f is kept and returned by Wait.
func (g *ErrGroup) Go(f func() error) {
	g.wg.Enter()
	go func() {
		defer g.wg.Leave()
		if err := f(); err != nil {
			g.mu.Lock()
			if g.err == nil {
				g.err = err
			}
			g.mu.Unlock()
		}
	}()
}

// Wait blocks until every function started with Go has returned, and
// returns the first error encountered, or nil.
func (g *ErrGroup) Wait() error {
	g.wg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
