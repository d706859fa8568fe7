package owner

import (
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/amp-owner/closer"
	"go.uber.org/atomic"
)

var (
	// ErrDestroyFailed wraps an error returned by a value's Destroy or Close method.
	ErrDestroyFailed = errors.New("failed to destroy owned value")
	// ErrTypeMismatch means a destruction operation was handed a value it was not bound to.
	ErrTypeMismatch = errors.New("owned value has unexpected type")
)

// Destroyer is implemented by values that need cleanup beyond being dropped.
// If *T implements Destroyer, destroying an owned *T calls Destroy. Otherwise,
// if *T implements io.Closer, Close is called instead.
type Destroyer interface {
	Destroy() error
}

// destroyFunc is the erased destruction operation. It's created by destroyerFor
// while T is still known and later invoked with the held pointer.
type destroyFunc func(addr any) error

// destroyerFor returns the destruction operation for values of type T. It runs
// the value's own cleanup (Destroyer, then io.Closer) and then overwrites the
// value with T's zero value, dropping every reference it held.
func destroyerFor[T any]() destroyFunc {
	return func(addr any) error {
		ptr, ok := addr.(*T)
		if !ok || ptr == nil {
			return fmt.Errorf("%w: %T", ErrTypeMismatch, addr)
		}

		var err error

		switch v := any(ptr).(type) {
		case Destroyer:
			err = v.Destroy()
		case io.Closer:
			err = v.Close()
		}

		var zero T
		*ptr = zero

		if err != nil {
			return fmt.Errorf("%w %T: %w", ErrDestroyFailed, ptr, err)
		}

		return nil
	}
}

// bind binds d to addr as a one-shot io.Closer. The first Close destroys
// addr, turning a panicking destructor into an error; later calls do nothing.
func (d destroyFunc) bind(addr any) io.Closer {
	destroy := closer.HandlePanic(closer.CustomCloser(func() error {
		return d(addr)
	}))

	done := atomic.NewBool(false)

	return closer.CustomCloser(func() error {
		if done.Swap(true) {
			return nil
		}

		err := destroy.Close()

		valuesDestroyed.Inc()

		if err != nil {
			destroyErrors.Inc()
		}

		return err
	})
}
