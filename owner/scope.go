package owner

import "github.com/amp-labs/amp-owner/using"

// Scope takes ownership of ptr, calls fn with the Owner and destroys whatever
// the Owner still holds once fn returns or panics. If fn releases the value or
// moves it into another Owner, nothing is destroyed.
//
// A nil fn returns using.ErrFuncNil; ptr is still destroyed, since its
// ownership was handed over.
//
// Example usage:
//
//	err := owner.Scope(newParser(), func(o *owner.Owner) error {
//	    p, _ := owner.As[parser](o)
//	    return p.Parse(input)
//	})
//	// The parser is destroyed here, even if Parse failed.
func Scope[T any](ptr *T, fn func(o *Owner) error) error {
	if fn == nil {
		New(ptr).Clear()

		return using.ErrFuncNil
	}

	return using.NewResource(func() (*Owner, using.Closer, error) {
		o := New(ptr)

		return o, using.WrapCloser(o), nil
	}).Use(fn)
}
