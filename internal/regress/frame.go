package regress

import (
	"fmt"
	"math"
)

// Frame is a column-major numeric view of a table subset. Missing values are
// NaN. Frames are cheap, ephemeral, and computed per regression call.
type Frame struct {
	n     int
	order []string
	cols  map[string][]float64
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{cols: make(map[string][]float64)}
}

// AddColumn adds a named column. All columns of a frame must share one
// length; the first column fixes it.
func (f *Frame) AddColumn(name string, values []float64) error {
	if _, exists := f.cols[name]; exists {
		return fmt.Errorf("column %q already present", name)
	}
	if len(f.order) > 0 && len(values) != f.n {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, len(values), f.n)
	}
	if len(f.order) == 0 {
		f.n = len(values)
	}
	f.order = append(f.order, name)
	f.cols[name] = values
	return nil
}

// MustAddColumn is AddColumn for construction sites where a mismatch is a
// programming error.
func (f *Frame) MustAddColumn(name string, values []float64) {
	if err := f.AddColumn(name, values); err != nil {
		panic(err)
	}
}

// Len returns the row count.
func (f *Frame) Len() int {
	return f.n
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	return f.order
}

// HasColumn reports whether the frame carries the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the named column, or nil if absent.
func (f *Frame) Column(name string) []float64 {
	return f.cols[name]
}

// Missing returns the required column names absent from the frame.
func (f *Frame) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !f.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Select returns a frame restricted to the named columns, with listwise
// deletion applied: any row holding a NaN in one of the selected columns is
// dropped entirely.
func (f *Frame) Select(names ...string) (*Frame, error) {
	if missing := f.Missing(names...); len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %v", missing)
	}

	keep := make([]int, 0, f.n)
	for i := 0; i < f.n; i++ {
		complete := true
		for _, name := range names {
			if math.IsNaN(f.cols[name][i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	out := NewFrame()
	for _, name := range names {
		col := make([]float64, len(keep))
		for j, i := range keep {
			col[j] = f.cols[name][i]
		}
		out.MustAddColumn(name, col)
	}
	return out, nil
}
