package closer

import (
	"errors"
	"io"
	"testing"

	ownerErrors "github.com/amp-labs/amp-owner/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errCloseFailed = errors.New("close failed")
	errFirst       = errors.New("first")
	errSecond      = errors.New("second")
)

// mockCloser is a test implementation of io.Closer.
type mockCloser struct {
	closeCount int
	closeError error
	panicValue any
	order      *[]*mockCloser
}

func (m *mockCloser) Close() error {
	m.closeCount++

	if m.order != nil {
		*m.order = append(*m.order, m)
	}

	if m.panicValue != nil {
		panic(m.panicValue)
	}

	return m.closeError
}

func TestCustomCloser_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CustomCloser(nil))
}

func TestCustomCloser_RunsFunction(t *testing.T) {
	t.Parallel()

	calls := 0
	closer := CustomCloser(func() error {
		calls++

		return errCloseFailed
	})
	require.NotNil(t, closer)

	require.ErrorIs(t, closer.Close(), errCloseFailed)
	require.ErrorIs(t, closer.Close(), errCloseFailed)
	assert.Equal(t, 2, calls, "CustomCloser is not idempotent by itself")
}

func TestCloser_ClosesAllInOrder(t *testing.T) {
	t.Parallel()

	var order []*mockCloser

	first := &mockCloser{order: &order, closeError: errFirst}
	second := &mockCloser{order: &order}
	third := &mockCloser{order: &order, closeError: errSecond}

	collector := NewCloser(first)
	collector.Add(nil)
	collector.Add(second)
	collector.Add(third)

	assert.Equal(t, 4, collector.Len())

	err := collector.Close()
	require.ErrorIs(t, err, errFirst)
	require.ErrorIs(t, err, errSecond)

	assert.Equal(t, []*mockCloser{first, second, third}, order)
}

func TestCloser_Empty(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewCloser().Close())
}

func TestHandlePanic_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, HandlePanic(nil))
}

func TestHandlePanic_Idempotent(t *testing.T) {
	t.Parallel()

	wrapped := HandlePanic(&mockCloser{})

	assert.Same(t, wrapped, HandlePanic(wrapped))
}

func TestHandlePanic_PassesThroughError(t *testing.T) {
	t.Parallel()

	mock := &mockCloser{closeError: errCloseFailed}

	err := HandlePanic(mock).Close()
	require.ErrorIs(t, err, errCloseFailed)
	assert.NotErrorIs(t, err, ownerErrors.ErrPanicRecovery)
	assert.Equal(t, 1, mock.closeCount)
}

func TestHandlePanic_RecoversErrorPanic(t *testing.T) {
	t.Parallel()

	var err error

	assert.NotPanics(t, func() {
		err = HandlePanic(&mockCloser{panicValue: errCloseFailed}).Close()
	})

	require.ErrorIs(t, err, ownerErrors.ErrPanicRecovery)
	require.ErrorIs(t, err, errCloseFailed)
	assert.Contains(t, err.Error(), "stack trace")
}

func TestHandlePanic_RecoversValuePanic(t *testing.T) {
	t.Parallel()

	err := HandlePanic(CustomCloser(func() error {
		panic("boom")
	})).Close()

	require.ErrorIs(t, err, ownerErrors.ErrPanicRecovery)
	assert.Contains(t, err.Error(), "boom")
}

var _ io.Closer = (*Closer)(nil)
