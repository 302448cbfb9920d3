// Package condsync provides small synchronization primitives built
// directly on sync.Mutex and sync.Cond. Every type owns a private
// lock and condition variable; no type depends on another.
//
// Key components:
//
//   - Group: A reusable count of outstanding work. Callers Enter
//     before starting work and Leave when done; Wait blocks until
//     the count drops to zero.
//
//   - Semaphore: A counting permit gate. Waiters are admitted in
//     strict arrival order using a ticket counter and a FIFO of
//     waiting tickets.
//
//   - Mutex: A FIFO hand-off lock built on a Semaphore of capacity
//     one.
//
//   - SerialQueue: A single worker goroutine draining a FIFO of
//     tasks. Async enqueues and returns; Sync blocks until it is the
//     caller's turn and then runs the body on the caller's own
//     goroutine, preserving one total order across both kinds.
//
// Misuse (an unmatched Leave, Sync from inside the queue's own
// worker) is a contract violation. Some violations panic; others
// deadlock. None of them are reported as errors.
package condsync
