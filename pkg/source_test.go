package tinyc

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"go.tinyc.dev/internal/test"
)

func TestSource(t *testing.T) {
	s := NewSource(strings.NewReader("ab\nc"))

	assert.Equal(t, int('a'), s.Peek())
	assert.Equal(t, int('a'), s.Next())
	assert.Equal(t, Location{Line: 1, Column: 2}, s.Location())
	assert.Equal(t, int('b'), s.Next())
	assert.Equal(t, int('\n'), s.Next())
	assert.Equal(t, Location{Line: 2, Column: 1}, s.Location())
	assert.Equal(t, int('c'), s.Next())
	assert.Equal(t, EOF, s.Peek())
	assert.Equal(t, EOF, s.Next())
	assert.Equal(t, Location{Line: 2, Column: 2}, s.Location())
	assert.NoError(t, s.Err())
}

func TestSourceSharesBufferedReader(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("1 12 rest"))

	feed, err := ReadFeed(br)
	assert.NoError(t, err)
	assert.Equal(t, 1, feed.Remaining())

	s := NewSource(br)
	assert.Equal(t, int(' '), s.Next())
	assert.Equal(t, int('r'), s.Next())
}

func TestSourceReadError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSource(iotest.ErrReader(boom))

	assert.Equal(t, EOF, s.Next())
	assert.ErrorIs(t, s.Err(), boom)
}

func TestParseFailsOnReadErrorAfterCompleteProgram(t *testing.T) {
	boom := errors.New("disk gone")
	r := io.MultiReader(strings.NewReader(test.Program("cout<<1;")), iotest.ErrReader(boom))

	prog, err := NewParser(NewLexer(r)).Run()
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, boom)
}

func TestLocationString(t *testing.T) {
	var nilLoc *Location
	assert.Equal(t, "?:?", nilLoc.String())
	assert.Equal(t, "3:14", (&Location{Line: 3, Column: 14}).String())
}
