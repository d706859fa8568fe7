// Package utils holds small helpers shared by the ownership packages.
package utils //nolint:revive // utils is an appropriate package name for utility functions

import (
	"fmt"

	"github.com/amp-labs/amp-owner/errors"
)

// GetPanicRecoveryError converts a value returned by recover() into an error
// wrapping errors.ErrPanicRecovery. An error panic value stays reachable with
// errors.Is; any other value is formatted with %v. A non-nil stack is appended
// to the message. A nil panic value yields nil.
func GetPanicRecoveryError(recovered any, stack []byte) error {
	if recovered == nil {
		return nil
	}

	var err error

	if recErr, ok := recovered.(error); ok {
		err = fmt.Errorf("%w: %w", errors.ErrPanicRecovery, recErr)
	} else {
		err = fmt.Errorf("%w: %v", errors.ErrPanicRecovery, recovered)
	}

	if stack != nil {
		return fmt.Errorf("%w\nstack trace:\n%s", err, string(stack))
	}

	return err
}
