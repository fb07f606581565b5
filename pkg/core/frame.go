package core

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownColumn is returned when a column name is not part of the frame.
	ErrUnknownColumn = errors.New("core: unknown column")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("core: duplicate column")
	// ErrLengthMismatch is returned when columns have different lengths.
	ErrLengthMismatch = errors.New("core: column length mismatch")
)

// Frame is an ordered set of named numeric columns of equal length.
// A Frame is never mutated after construction; every derived frame
// owns its own column slices.
type Frame struct {
	names []string
	cols  [][]float64
	index map[string]int
	n     int
}

// NewFrame copies names and columns into a new Frame.
func NewFrame(names []string, cols [][]float64) (*Frame, error) {
	if len(names) != len(cols) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d names for %d columns", len(names), len(cols))
	}
	f := &Frame{
		names: make([]string, 0, len(names)),
		cols:  make([][]float64, 0, len(cols)),
		index: make(map[string]int, len(names)),
	}
	for j, name := range names {
		if err := f.add(name, cols[j]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Empty returns a frame with n rows and no columns.
func Empty(n int) *Frame {
	return &Frame{index: map[string]int{}, n: n}
}

func (f *Frame) add(name string, col []float64) error {
	if _, ok := f.index[name]; ok {
		return errors.Wrap(ErrDuplicateColumn, name)
	}
	if len(f.cols) == 0 && f.n == 0 {
		f.n = len(col)
	}
	if len(col) != f.n {
		return errors.Wrapf(ErrLengthMismatch, "column %q has %d rows, want %d", name, len(col), f.n)
	}
	f.index[name] = len(f.names)
	f.names = append(f.names, name)
	f.cols = append(f.cols, append([]float64(nil), col...))
	return nil
}

// Len is the number of rows.
func (f *Frame) Len() int { return f.n }

// Width is the number of columns.
func (f *Frame) Width() int { return len(f.names) }

// Names returns a copy of the column names in order.
func (f *Frame) Names() []string { return append([]string(nil), f.names...) }

// Has reports whether the frame has a column called name.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns a copy of the named column.
func (f *Frame) Column(name string) ([]float64, error) {
	j, ok := f.index[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownColumn, name)
	}
	return append([]float64(nil), f.cols[j]...), nil
}

// Select returns a frame holding the named columns in the requested order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := Empty(f.n)
	for _, name := range names {
		j, ok := f.index[name]
		if !ok {
			return nil, errors.Wrap(ErrUnknownColumn, name)
		}
		if err := out.add(name, f.cols[j]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Rows returns the frame as row-major data, the layout the classifiers consume.
func (f *Frame) Rows() [][]float64 {
	out := make([][]float64, f.n)
	for i := range out {
		row := make([]float64, len(f.cols))
		for j, col := range f.cols {
			row[j] = col[i]
		}
		out[i] = row
	}
	return out
}

// SelectRows is Select followed by Rows.
func (f *Frame) SelectRows(names ...string) ([][]float64, error) {
	sub, err := f.Select(names...)
	if err != nil {
		return nil, err
	}
	return sub.Rows(), nil
}

// Take returns the rows at idx, in idx order.
func (f *Frame) Take(idx []int) (*Frame, error) {
	out := Empty(len(idx))
	for j, name := range f.names {
		col := make([]float64, len(idx))
		for k, i := range idx {
			if i < 0 || i >= f.n {
				return nil, errors.Errorf("core: row %d out of range [0,%d)", i, f.n)
			}
			col[k] = f.cols[j][i]
		}
		if err := out.add(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// With returns a new frame with one extra column appended.
func (f *Frame) With(name string, values []float64) (*Frame, error) {
	return Concat(f, &Frame{names: []string{name}, cols: [][]float64{values}, index: map[string]int{name: 0}, n: len(values)})
}

// Concat joins frames column-wise. All frames must have the same row count
// and no column name may repeat.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return Empty(0), nil
	}
	out := Empty(frames[0].n)
	for _, fr := range frames {
		if fr.n != out.n {
			return nil, errors.Wrapf(ErrLengthMismatch, "frame has %d rows, want %d", fr.n, out.n)
		}
		for j, name := range fr.names {
			if err := out.add(name, fr.cols[j]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// ColumnSum returns the sum of the named column.
func (f *Frame) ColumnSum(name string) (float64, error) {
	j, ok := f.index[name]
	if !ok {
		return 0, errors.Wrap(ErrUnknownColumn, name)
	}
	return floats.Sum(f.cols[j]), nil
}
