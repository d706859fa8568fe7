package owner

import (
	"testing"

	"github.com/amp-labs/amp-owner/using"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_DestroysOnReturn(t *testing.T) {
	t.Parallel()

	rec := newRecorder()

	err := Scope(&widget{name: "w", rec: rec}, func(o *Owner) error {
		w, ok := As[widget](o)
		require.True(t, ok)
		assert.Equal(t, "w", w.name)
		assert.Equal(t, 0, rec.total())

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, rec.count("w"))
}

func TestScope_DestroysOnError(t *testing.T) {
	t.Parallel()

	rec := newRecorder()

	err := Scope(&widget{name: "w", rec: rec}, func(*Owner) error {
		return errScopeFailed
	})

	require.ErrorIs(t, err, errScopeFailed)
	assert.Equal(t, 1, rec.count("w"))
}

func TestScope_DestroysOnPanic(t *testing.T) {
	t.Parallel()

	rec := newRecorder()

	assert.PanicsWithValue(t, "boom", func() {
		_ = Scope(&widget{name: "w", rec: rec}, func(*Owner) error {
			panic("boom")
		})
	})

	assert.Equal(t, 1, rec.count("w"))
}

func TestScope_ReleasedValueSurvives(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	kept := Empty()

	err := Scope(&widget{name: "moved", rec: rec}, func(o *Owner) error {
		kept.Take(o)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, rec.total())
	assert.False(t, kept.IsEmpty())

	var released any

	err = Scope(&gadget{name: "released", rec: rec}, func(o *Owner) error {
		released = o.Release()

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, rec.total())
	assert.NotNil(t, released)

	kept.Clear()
	assert.Equal(t, 1, rec.count("moved"))
}

func TestScope_NilFunc(t *testing.T) {
	t.Parallel()

	rec := newRecorder()

	err := Scope[widget](&widget{name: "w", rec: rec}, nil)

	require.ErrorIs(t, err, using.ErrFuncNil)
	assert.Equal(t, 1, rec.count("w"), "ownership was transferred, so the value is still destroyed")
}
