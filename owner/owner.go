// Package owner provides Owner, a single-owner box for a heap value of any type.
//
// An Owner holds a *T without its own type naming T. The only thing it keeps
// from T is a destruction operation bound at construction time, so heterogeneous
// values can be stored, moved and released through one uniform handle.
//
// Exactly one Owner is responsible for a given value at any time. Moving (Take,
// Move) always empties the source, Release hands the value back to the caller,
// and Clear, Reset and Close destroy it. An empty Owner never destroys anything.
//
// Example usage:
//
//	conn := owner.New(openConn())
//	defer conn.Close() // destroys the connection unless it was released or moved
//
//	plugins["db"] = owner.Move(conn)
//
// An Owner is not safe for concurrent use.
package owner

import (
	"io"

	"github.com/amp-labs/amp-owner/should"
)

// noCopy lets `go vet` (copylocks) report an Owner copied by value, which
// would duplicate ownership.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Owner exclusively owns one value of an erased type.
// The zero value is an empty Owner, ready to use.
type Owner struct {
	_ noCopy

	addr    any         // the held *T, nil when empty
	destroy destroyFunc // bound to the held value's original type, nil when empty
}

// New takes ownership of ptr. The caller must not destroy ptr independently
// afterward. A nil ptr yields an empty Owner.
func New[T any](ptr *T) *Owner {
	o := &Owner{}
	adopt(o, ptr)

	return o
}

// Empty returns an Owner that holds nothing. It's equivalent to new(Owner).
func Empty() *Owner {
	return &Owner{}
}

// Move transfers ownership out of src into a new Owner, leaving src empty.
// A nil src yields an empty Owner.
func Move(src *Owner) *Owner {
	o := &Owner{}
	o.Take(src)

	return o
}

// IsEmpty returns true if no value is held.
func (o *Owner) IsEmpty() bool {
	return o == nil || o.addr == nil
}

// Get returns the held pointer without transferring ownership, or nil if the
// Owner is empty. The result must not be destroyed by the caller and must not
// be used after the Owner destroys it.
func (o *Owner) Get() any {
	if o == nil {
		return nil
	}

	return o.addr
}

// Release hands the held pointer back to the caller and empties the Owner
// without destroying anything. The caller is now responsible for the value.
// Returns nil if the Owner is empty.
func (o *Owner) Release() any {
	if o.IsEmpty() {
		return nil
	}

	addr := o.addr
	o.addr, o.destroy = nil, nil

	valuesReleased.Inc()

	return addr
}

// Take moves src's value into o, leaving src empty. If o already holds a value
// it is destroyed first. Taking from itself or from nil, or into a nil Owner,
// changes nothing.
func (o *Owner) Take(src *Owner) {
	if o == nil || o == src || src == nil {
		return
	}

	o.Clear()

	o.addr, o.destroy = src.addr, src.destroy
	src.addr, src.destroy = nil, nil
}

// Swap exchanges the held values of o and other. Nothing is destroyed.
// Swapping with itself or with a nil Owner changes nothing.
func (o *Owner) Swap(other *Owner) {
	if o == nil || o == other || other == nil {
		return
	}

	o.addr, other.addr = other.addr, o.addr
	o.destroy, other.destroy = other.destroy, o.destroy
}

// Reset destroys the value o currently holds and takes ownership of ptr, whose
// type may differ from the old one. A nil ptr leaves o empty.
//
// Resetting to the pointer o already holds is a no-op. Resetting a nil Owner
// does nothing, and ptr stays the caller's responsibility.
func Reset[T any](o *Owner, ptr *T) {
	if o == nil || (ptr != nil && o.addr == any(ptr)) {
		return
	}

	o.Clear()
	adopt(o, ptr)
}

// Clear destroys the held value, if any, and leaves o empty.
// Clearing an empty Owner does nothing. A failing destructor is logged through
// slog.Default(), never returned.
func (o *Owner) Clear() {
	should.Close(o.Detach(), "failed to destroy owned value")
}

// Detach empties o and hands its value to the returned io.Closer, which now
// owns it: the first Close destroys the value and reports the destructor's
// failure, later calls do nothing. Returns nil if o is empty.
//
// Detach is for callers that route destruction failures themselves, such as a
// collection with its own logger.
func (o *Owner) Detach() io.Closer {
	if o.IsEmpty() {
		return nil
	}

	addr, destroy := o.addr, o.destroy
	o.addr, o.destroy = nil, nil

	return destroy.bind(addr)
}

// Close implements io.Closer so an Owner can be destroyed with defer or handed
// to anything that collects closers. It destroys the held value, if any.
// Destruction failures are logged rather than returned, so Close always
// returns nil.
func (o *Owner) Close() error {
	o.Clear()

	return nil
}

// As returns the held pointer as a *T. The second result is false if o is
// empty or holds a value of some other type.
func As[T any](o *Owner) (*T, bool) {
	ptr, ok := o.Get().(*T)

	return ptr, ok && ptr != nil
}

// adopt binds o to ptr and to the destruction operation for T. o must be empty.
func adopt[T any](o *Owner, ptr *T) {
	if ptr == nil {
		return
	}

	o.addr, o.destroy = ptr, destroyerFor[T]()

	valuesAdopted.Inc()
}
