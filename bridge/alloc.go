// Package bridge exposes parsed motion data as flat, caller-allocated
// records for handoff across a foreign-memory boundary.
//
// Every buffer a File hands out is obtained from an Allocator supplied
// by the caller, so a host runtime can route the storage through its
// own memory pools. Release returns all buffers to the allocator
// exactly once; a failed read releases whatever it had allocated
// before reporting the error.
package bridge

import "fmt"

// An Allocator provides the buffers backing a bridge File. A nil
// Allocator selects the ambient allocator, which allocates with make
// and frees nothing.
//
// Alloc methods may fail; the bridge surfaces the failure as an
// AllocError after returning every buffer it had already obtained.
// Free receives the exact slice value a matching Alloc call returned.
type Allocator interface {
	AllocBytes(n int) ([]byte, error)
	AllocFloats(n int) ([]float32, error)
	AllocChannels(n int) ([]Channel, error)
	AllocJoints(n int) ([]Joint, error)
	Free(buf any) error
}

// AllocError reports a failed buffer allocation.
type AllocError struct {
	// What names the buffer being allocated.
	What string
	// Size is the requested element count.
	Size int
	// Err is the allocator's failure, if it reported one.
	Err error
}

func (e *AllocError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bridge: alloc %s (%d elements): %v", e.What, e.Size, e.Err)
	}
	return fmt.Sprintf("bridge: alloc %s (%d elements) failed", e.What, e.Size)
}

func (e *AllocError) Unwrap() error { return e.Err }

// ambientAllocator is the fallback used when no Allocator is supplied.
// Buffers come from the Go runtime, so Free is a no-op.
type ambientAllocator struct{}

func (ambientAllocator) AllocBytes(n int) ([]byte, error)       { return make([]byte, n), nil }
func (ambientAllocator) AllocFloats(n int) ([]float32, error)   { return make([]float32, n), nil }
func (ambientAllocator) AllocChannels(n int) ([]Channel, error) { return make([]Channel, n), nil }
func (ambientAllocator) AllocJoints(n int) ([]Joint, error)     { return make([]Joint, n), nil }
func (ambientAllocator) Free(any) error                         { return nil }

// arena tracks every buffer obtained from an allocator so a partial
// conversion can be unwound and a completed File released in one pass.
type arena struct {
	alloc Allocator
	bufs  []any
}

func newArena(alloc Allocator) *arena {
	if alloc == nil {
		alloc = ambientAllocator{}
	}
	return &arena{alloc: alloc}
}

func (a *arena) bytes(what string, n int) ([]byte, error) {
	buf, err := a.alloc.AllocBytes(n)
	if err != nil || (n > 0 && buf == nil) {
		return nil, &AllocError{What: what, Size: n, Err: err}
	}
	a.bufs = append(a.bufs, buf)
	return buf, nil
}

func (a *arena) floats(what string, n int) ([]float32, error) {
	buf, err := a.alloc.AllocFloats(n)
	if err != nil || (n > 0 && buf == nil) {
		return nil, &AllocError{What: what, Size: n, Err: err}
	}
	a.bufs = append(a.bufs, buf)
	return buf, nil
}

func (a *arena) channels(what string, n int) ([]Channel, error) {
	buf, err := a.alloc.AllocChannels(n)
	if err != nil || (n > 0 && buf == nil) {
		return nil, &AllocError{What: what, Size: n, Err: err}
	}
	a.bufs = append(a.bufs, buf)
	return buf, nil
}

func (a *arena) joints(what string, n int) ([]Joint, error) {
	buf, err := a.alloc.AllocJoints(n)
	if err != nil || (n > 0 && buf == nil) {
		return nil, &AllocError{What: what, Size: n, Err: err}
	}
	a.bufs = append(a.bufs, buf)
	return buf, nil
}

// releaseAll frees every tracked buffer in reverse allocation order.
// It reports whether all frees succeeded.
func (a *arena) releaseAll() bool {
	ok := true
	for i := len(a.bufs) - 1; i >= 0; i-- {
		if err := a.alloc.Free(a.bufs[i]); err != nil {
			ok = false
		}
	}
	a.bufs = nil
	return ok
}
