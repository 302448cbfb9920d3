package condsync

import (
	"sync"

	"github.com/gammazero/deque"
)

// QueueState is the state of a SerialQueue's worker.
type QueueState int

const (
	// Idle means the worker is blocked on an empty queue.
	Idle QueueState = iota
	// Draining means the worker is running queued tasks.
	Draining
	// AwaitingCaller means the worker has handed a Sync task to its
	// caller and is blocked until the caller reports completion.
	AwaitingCaller
	// Stopped means the worker has exited.
	Stopped
)

func (s QueueState) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Draining:
		return "DRAINING"
	case AwaitingCaller:
		return "AWAITING_CALLER"
	case Stopped:
		return "STOPPED"
	}
	return "UNKNOWN"
}

type taskKind uint8

const (
	taskAsync taskKind = iota
	taskSync
)

// task is one queued unit of work. owner is only meaningful for
// taskSync.
type task struct {
	kind  taskKind
	owner uint64
	body  func()
}

// turn is the handshake state of one Sync caller.
type turn uint8

const (
	turnWait turn = iota // queued, not yet the caller's turn
	turnGo               // the worker has handed over
	turnDone             // the caller has finished its body
)

// SerialQueue runs submitted task bodies one at a time, in
// submission order, on behalf of any number of goroutines.
//
// Async bodies run on the queue's worker goroutine. Sync bodies run
// on the submitting goroutine once every earlier task has finished;
// the worker waits until the body returns before moving on. Both
// kinds share one FIFO, so the order in which bodies run is the order
// in which their submissions were appended.
//
// Bodies run with the queue's lock released, so a body may call Async
// on its own queue. A body must not call Sync on its own queue: the
// worker would wait on itself.
//
// Close stops the worker after draining queued tasks. A SerialQueue
// must not be copied.
type SerialQueue struct {
	noCopy noCopy             // Prevents copying of the queue
	mu     sync.Mutex         // Guards everything below
	c      sync.Cond          // Shared by the worker and Sync callers
	tasks  deque.Deque[*task] // Pending tasks, head runs next
	turns  map[uint64]turn    // Handshake table keyed by Sync owner
	owners uint64             // Last issued Sync owner id
	state  QueueState         // Worker state
	stop   bool               // Set by Close
	worker sync.WaitGroup     // Joined by Close
	trace  *tracer
}

// NewSerialQueue creates a SerialQueue and starts its worker
// goroutine.
func NewSerialQueue(opts ...QueueOption) *SerialQueue {
	cfg := newQueueConfig(opts)

	q := &SerialQueue{
		turns: make(map[uint64]turn),
		state: Idle,
		trace: newTracer(cfg.label),
	}
	q.c.L = &q.mu

	q.worker.Add(1)
	go func() {
		defer q.worker.Done()
		q.run()
	}()

	return q
}

// Async appends body to the queue and returns immediately. body runs
// on the worker goroutine after every earlier submission.
func (q *SerialQueue) Async(body func()) {
	q.mu.Lock()
	q.mustOpen()
	q.tasks.PushBack(&task{kind: taskAsync, body: body})
	q.trace.logf("SUBMIT ASYNC pending %v", q.tasks.Len())
	q.mu.Unlock()

	q.c.Broadcast()
}

// Sync appends body to the queue, waits until every earlier
// submission has finished, then runs body on the calling goroutine.
// It returns after body returns. If body panics, the queue moves on
// to the next task and the panic propagates to the caller.
func (q *SerialQueue) Sync(body func()) {
	q.mu.Lock()
	q.mustOpen()
	q.owners++
	owner := q.owners
	q.turns[owner] = turnWait
	q.tasks.PushBack(&task{kind: taskSync, owner: owner, body: body})
	q.trace.logf("SUBMIT SYNC owner %v pending %v", owner, q.tasks.Len())
	q.c.Broadcast()

	for q.turns[owner] != turnGo {
		q.c.Wait()
	}
	q.mu.Unlock()

	defer q.finish(owner)
	q.trace.region(traceSyncRegion, body)
}

// finish reports a Sync body as done and wakes the worker.
func (q *SerialQueue) finish(owner uint64) {
	q.mu.Lock()
	q.turns[owner] = turnDone
	q.mu.Unlock()

	q.c.Broadcast()
}

// mustOpen panics if the worker has exited. Submissions made after
// Close but while the worker is still draining are queued and run
// before Close returns. q.mu must be held; it is released before the
// panic.
func (q *SerialQueue) mustOpen() {
	if q.state == Stopped {
		q.mu.Unlock()
		panic("condsync: submit on closed SerialQueue")
	}
}

// run is the worker loop. It holds q.mu except while an Async body is
// running and while it is blocked in q.c.Wait.
func (q *SerialQueue) run() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		for q.tasks.Len() == 0 {
			if q.stop {
				q.state = Stopped
				q.trace.log("STOP")
				q.c.Broadcast()
				return
			}
			if q.state != Idle {
				q.state = Idle
				q.trace.log("IDLE")
			}
			q.c.Wait()
		}

		t := q.tasks.PopFront()
		q.state = Draining

		switch t.kind {
		case taskAsync:
			q.runAsync(t.body)

		case taskSync:
			q.turns[t.owner] = turnGo
			q.state = AwaitingCaller
			q.trace.logf("HANDOFF owner %v", t.owner)
			q.c.Broadcast()

			for q.turns[t.owner] != turnDone {
				q.c.Wait()
			}
			delete(q.turns, t.owner)
			q.state = Draining
		}
	}
}

// runAsync runs an Async body on the worker with q.mu released.
func (q *SerialQueue) runAsync(body func()) {
	q.mu.Unlock()
	defer q.mu.Lock()
	q.trace.region(traceAsyncRegion, body)
}

// Close asks the worker to stop once the queue is empty, waits for it
// to run every queued task, including tasks that running bodies submit
// during the drain, and then waits for the worker goroutine to exit.
// Submitting after Close has returned panics. Close is idempotent.
// It must not be called from a task body running on this queue.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	first := !q.stop
	q.stop = true
	q.mu.Unlock()

	q.c.Broadcast()
	q.worker.Wait()

	if first {
		q.trace.end()
	}
}

// State returns the worker's current state.
func (q *SerialQueue) State() QueueState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Pending returns the number of queued tasks that have not started.
func (q *SerialQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks.Len()
}

// Label returns the label given by WithLabel.
func (q *SerialQueue) Label() string {
	return q.trace.label
}
