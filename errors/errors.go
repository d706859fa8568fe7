// Package errors holds the sentinel errors and error helpers shared by the
// ownership packages.
package errors

import "errors"

// ErrPanicRecovery wraps a panic that was recovered and turned into an error,
// such as a destructor that panicked while an owned value was being destroyed.
var ErrPanicRecovery = errors.New("recovered from panic")

// Collection accumulates errors from several steps, such as a callback and the
// cleanup that follows it, and reports them as one. It is not thread-safe.
type Collection struct {
	errors []error
}

// Add appends err to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// HasError returns true if at least one error was added.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// GetError returns nil for an empty collection, the error itself if there is
// only one, or all of them joined with errors.Join.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
