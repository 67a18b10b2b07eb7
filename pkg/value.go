package tinyc

import "fmt"

// MaxArrayElements bounds the storage a single array declaration may allocate.
const MaxArrayElements = 1 << 26

// Value is a live binding: a *Scalar or an *Array.
type Value interface {
	value()
}

type Scalar struct {
	V int32
}

// Array is row-major storage. Strides are computed right to left so the last
// dimension has stride 1.
type Array struct {
	Dims    []int
	Strides []int
	Data    []int32
}

func (*Scalar) value() {}
func (*Array) value()  {}

func NewArray(dims []int) (*Array, error) {
	a := &Array{
		Dims:    append([]int(nil), dims...),
		Strides: make([]int, len(dims)),
	}

	size := 1
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrArrayTooLarge, dims[i])
		}

		a.Strides[i] = size
		size *= dims[i]
		if size > MaxArrayElements {
			return nil, fmt.Errorf("%w: %v", ErrArrayTooLarge, dims)
		}
	}

	a.Data = make([]int32, size)
	return a, nil
}

// Offset maps an index tuple to its position in Data.
func (a *Array) Offset(index []int32) (int, error) {
	if len(index) != len(a.Dims) {
		return 0, fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, len(a.Dims), len(index))
	}

	off := 0
	for i, idx := range index {
		if idx < 0 || int(idx) >= a.Dims[i] {
			return 0, fmt.Errorf("%w: index %d is %d, dimension is %d", ErrIndexOutOfRange, i, idx, a.Dims[i])
		}

		off += int(idx) * a.Strides[i]
	}

	return off, nil
}

// Element returns the storage cell addressed by index.
func (a *Array) Element(index []int32) (*int32, error) {
	off, err := a.Offset(index)
	if err != nil {
		return nil, err
	}

	return &a.Data[off], nil
}

// NewValue allocates the zeroed runtime instance of a declaration.
func NewValue(decl *VarDecl) (Value, error) {
	if !decl.IsArray() {
		return &Scalar{}, nil
	}

	return NewArray(decl.Dims)
}
