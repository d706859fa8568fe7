// Package using runs a callback against a resource and guarantees the
// resource's cleanup afterward, like C#'s "using" statement. The owner
// package builds its scoped ownership on it.
//
// Example usage:
//
//	err := using.NewResource(func() (*Conn, using.Closer, error) {
//	    c, err := dial()
//	    if err != nil {
//	        return nil, nil, err
//	    }
//
//	    return c, using.WrapCloser(c), nil
//	}).Use(func(c *Conn) error {
//	    return c.Ping()
//	})
package using

import (
	"errors"
	"io"

	errors2 "github.com/amp-labs/amp-owner/errors"
)

var (
	// ErrResourceNil is returned when Use is called on a nil resource.
	ErrResourceNil = errors.New("resource is nil")
	// ErrFuncNil is returned when a nil function is passed to Use.
	ErrFuncNil = errors.New("f is nil")
)

// Closer cleans up a resource. It has the signature of io.Closer.Close.
type Closer func() error

// Resource produces a value together with the Closer that cleans it up.
type Resource[V any] struct {
	create   func() (V, Closer, error)
	released bool
}

// NewResource creates a Resource from a function returning a value, its closer
// and an error.
func NewResource[V any](f func() (V, Closer, error)) *Resource[V] {
	return &Resource[V]{
		create: f,
	}
}

// Use creates the value, calls userFunc with it and then runs the closer,
// also when userFunc returns an error or panics. Errors from userFunc and the
// closer are both returned.
func (p *Resource[V]) Use(userFunc func(value V) error) (errOut error) {
	if p == nil {
		return ErrResourceNil
	}

	if userFunc == nil {
		return ErrFuncNil
	}

	p.released = false

	val, closer, err := p.create()
	if err != nil {
		return err
	}

	errs := errors2.Collection{}

	defer func() {
		if !p.released && closer != nil {
			errs.Add(closer())
		}

		errOut = errs.GetError()
	}()

	errs.Add(userFunc(val))

	return nil
}

// Release skips the closer when the current Use call completes, leaving the
// caller responsible for the value.
func (p *Resource[V]) Release() {
	p.released = true
}

// WrapCloser converts an io.Closer into a Closer. A nil closer yields a no-op.
func WrapCloser(closer io.Closer) Closer {
	return func() error {
		if closer != nil {
			return closer.Close()
		}

		return nil
	}
}
