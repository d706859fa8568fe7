// Package closer provides io.Closer building blocks used to destroy owned values.
//
// The package includes:
//   - CustomCloser: turns a cleanup function into an io.Closer
//   - Closer: collects closers and closes them all, in order, at once
//   - HandlePanic: recovers from a panicking Close and reports it as an error
package closer

import (
	"errors"
	"io"
	"runtime/debug"

	"github.com/amp-labs/amp-owner/utils"
)

type customCloser struct {
	closeFn func() error
}

// CustomCloser creates an io.Closer from a cleanup function.
// Returns nil if closeFn is nil.
//
// Example:
//
//	destroy := CustomCloser(func() error {
//	    return conn.Close()
//	})
//	defer destroy.Close()
func CustomCloser(closeFn func() error) io.Closer {
	if closeFn == nil {
		return nil
	}

	return &customCloser{closeFn: closeFn}
}

// Close runs the wrapped cleanup function. It is not idempotent.
func (c *customCloser) Close() error {
	return c.closeFn()
}

// Closer collects io.Closer instances and closes them all at once. Every
// closer is attempted even if an earlier one fails; failures are joined.
//
// Example:
//
//	collector := NewCloser()
//	collector.Add(first)
//	collector.Add(second)
//
//	return collector.Close() // first, then second
//
// Closer is not thread-safe.
type Closer struct {
	closers []io.Closer
}

// NewCloser creates a Closer with zero or more initial closers.
func NewCloser(closers ...io.Closer) *Closer {
	return &Closer{closers: closers}
}

// Add appends closer to the collection. Nil closers are skipped on Close.
func (c *Closer) Add(closer io.Closer) {
	c.closers = append(c.closers, closer)
}

// Len returns the number of closers added so far, nil ones included.
func (c *Closer) Len() int {
	return len(c.closers)
}

// Close closes every collected closer in the order they were added and
// returns the failures joined with errors.Join, or nil.
func (c *Closer) Close() error {
	var errs []error

	for _, closer := range c.closers {
		if closer == nil {
			continue
		}

		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// HandlePanic wraps closer so that a panic inside its Close is recovered and
// returned as an error wrapping errors.ErrPanicRecovery, with the stack trace.
// If Close both returns an error and panics, both are joined.
//
// Returns nil for a nil closer and leaves an already wrapped closer unchanged.
func HandlePanic(closer io.Closer) io.Closer {
	if closer == nil {
		return nil
	}

	if _, ok := closer.(*panicHandlingImpl); ok {
		return closer
	}

	return &panicHandlingImpl{closer: closer}
}

type panicHandlingImpl struct {
	closer io.Closer
}

func (p *panicHandlingImpl) Close() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(err, utils.GetPanicRecoveryError(r, debug.Stack()))
		}
	}()

	return p.closer.Close()
}
