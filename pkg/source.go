package tinyc

import (
	"bufio"
	"fmt"
	"io"
)

// EOF is returned by Source once the underlying stream is drained.
const EOF = -1

type Location struct {
	Line   int
	Column int
}

func (l *Location) String() string {
	if l == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Source hands out the program text one byte at a time, holding back at most
// one byte so callers can look before they consume.
type Source struct {
	reader   *bufio.Reader
	pending  int
	buffered bool
	loc      Location
	err      error
}

// NewSource wraps r. A *bufio.Reader is used as is so that a caller which has
// already consumed a prefix of the stream (the integer feed) shares its buffer.
func NewSource(r io.Reader) *Source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &Source{
		reader: br,
		loc:    Location{Line: 1, Column: 1},
	}
}

func (s *Source) Peek() int {
	if !s.buffered {
		s.pending = s.read()
		s.buffered = true
	}

	return s.pending
}

func (s *Source) Next() int {
	c := s.Peek()
	if c != EOF {
		s.buffered = false
		s.advance(byte(c))
	}

	return c
}

// Location returns the position of the byte Peek would return.
func (s *Source) Location() Location {
	return s.loc
}

// Err reports the first read failure other than io.EOF.
func (s *Source) Err() error {
	return s.err
}

func (s *Source) read() int {
	if s.err != nil {
		return EOF
	}

	b, err := s.reader.ReadByte()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}

		return EOF
	}

	return int(b)
}

func (s *Source) advance(b byte) {
	if b == '\n' {
		s.loc.Line++
		s.loc.Column = 1
		return
	}

	s.loc.Column++
}
