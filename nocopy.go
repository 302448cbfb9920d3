package condsync

// noCopy may be embedded in structs that hold a mutex and must not be
// copied after first use. go vet's copylocks check recognizes the
// Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by go vet.
func (*noCopy) Lock() {}

// Unlock is a no-op used by go vet.
func (*noCopy) Unlock() {}
