package tinyc

import (
	"bufio"
	"fmt"
)

// Feed supplies the integers read by cin, in order.
type Feed interface {
	Next() (int32, error)
}

type IntFeed struct {
	values []int32
	pos    int
}

func NewIntFeed(values ...int32) *IntFeed {
	return &IntFeed{values: values}
}

func (f *IntFeed) Next() (int32, error) {
	if f.pos >= len(f.values) {
		return 0, ErrFeedExhausted
	}

	v := f.values[f.pos]
	f.pos++

	return v, nil
}

func (f *IntFeed) Remaining() int {
	return len(f.values) - f.pos
}

// ReadFeed consumes a count n followed by n integers from r. A count below
// one yields an empty feed. The reader is left positioned right after the
// last integer so the program text can be lexed from the same buffer.
func ReadFeed(r *bufio.Reader) (*IntFeed, error) {
	var n int
	if _, err := fmt.Fscan(r, &n); err != nil {
		return nil, fmt.Errorf("reading input count: %w", err)
	}

	var values []int32
	for i := 0; i < n; i++ {
		var v int32
		if _, err := fmt.Fscan(r, &v); err != nil {
			return nil, fmt.Errorf("reading input value %d of %d: %w", i+1, n, err)
		}

		values = append(values, v)
	}

	return NewIntFeed(values...), nil
}
