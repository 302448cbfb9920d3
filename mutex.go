package condsync

// Mutex provides mutual exclusion with FIFO hand-off: goroutines
// acquire the lock in the order they called Lock. It is a Semaphore
// with capacity one and implements sync.Locker.
type Mutex struct {
	sema *Semaphore
}

// NewMutex returns an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{sema: NewSemaphore(1)}
}

// Lock acquires the mutex, blocking behind every earlier Lock call.
func (m *Mutex) Lock() {
	m.sema.Wait()
}

// Unlock releases the mutex. The longest waiting goroutine, if any,
// acquires it next.
func (m *Mutex) Unlock() {
	m.sema.Signal()
}

// WaitCount returns the number of goroutines waiting to acquire the
// mutex.
func (m *Mutex) WaitCount() int {
	return m.sema.Waiting()
}
