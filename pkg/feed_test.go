package tinyc

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntFeed(t *testing.T) {
	f := NewIntFeed(4, -5)
	assert.Equal(t, 2, f.Remaining())

	v, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(4), v)

	v, err = f.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), v)

	_, err = f.Next()
	assert.True(t, errors.Is(err, ErrFeedExhausted))
	assert.Equal(t, 0, f.Remaining())
}

func TestReadFeedLeavesSource(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("3\n1 2\n-3\n#include"))

	f, err := ReadFeed(r)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Remaining())

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "\n#include", string(rest))
}

func TestReadFeedFailures(t *testing.T) {
	cases := []string{
		"",
		"x",
		"2 1",
		"2 1 #include",
	}

	for _, c := range cases {
		_, err := ReadFeed(bufio.NewReader(strings.NewReader(c)))
		assert.Error(t, err, c)
	}
}

func TestReadFeedNegativeCount(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("-4 #include"))

	f, err := ReadFeed(r)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Remaining())

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, " #include", string(rest))
}
