package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errCallback = errors.New("callback failed")
	errCleanup  = errors.New("cleanup failed")
)

func TestCollection_Empty(t *testing.T) {
	t.Parallel()

	var c Collection

	assert.False(t, c.HasError())
	assert.NoError(t, c.GetError())
}

func TestCollection_IgnoresNil(t *testing.T) {
	t.Parallel()

	var c Collection

	c.Add(nil)

	assert.False(t, c.HasError())
	assert.NoError(t, c.GetError())
}

func TestCollection_Single(t *testing.T) {
	t.Parallel()

	var c Collection

	c.Add(errCleanup)

	assert.True(t, c.HasError())
	assert.Equal(t, errCleanup, c.GetError(), "a single error is returned unwrapped")
}

func TestCollection_Multiple(t *testing.T) {
	t.Parallel()

	var c Collection

	c.Add(errCallback)
	c.Add(nil)
	c.Add(errCleanup)

	err := c.GetError()
	require.Error(t, err)
	require.ErrorIs(t, err, errCallback)
	require.ErrorIs(t, err, errCleanup)
}
