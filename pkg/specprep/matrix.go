package specprep

import "fmt"

// Matrix is a dense row-major matrix of float64 values.
// Rows are stars and columns are wavelength pixels.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix allocates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.Data[i*m.Cols+j] = v
}

// Row returns row i as a slice sharing the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// SetRow copies values into row i. The length must equal Cols.
func (m *Matrix) SetRow(i int, values []float64) error {
	if len(values) != m.Cols {
		return fmt.Errorf("row %d has %d pixels, expected %d: %w", i, len(values), m.Cols, ErrShapeMismatch)
	}
	copy(m.Row(i), values)
	return nil
}

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix) SameShape(other *Matrix) bool {
	return m.Rows == other.Rows && m.Cols == other.Cols
}

// KeepColumns returns a new matrix holding only the columns where keep is true.
func (m *Matrix) KeepColumns(keep []bool) (*Matrix, error) {
	if len(keep) != m.Cols {
		return nil, fmt.Errorf("column mask has %d entries for %d columns: %w", len(keep), m.Cols, ErrShapeMismatch)
	}

	cols := 0
	for _, k := range keep {
		if k {
			cols++
		}
	}

	out := NewMatrix(m.Rows, cols)
	for i := 0; i < m.Rows; i++ {
		src := m.Row(i)
		dst := out.Row(i)
		n := 0
		for j, k := range keep {
			if k {
				dst[n] = src[j]
				n++
			}
		}
	}
	return out, nil
}

// VStackMatrices stacks b below a. Both must have the same number of columns.
func VStackMatrices(a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Cols {
		return nil, fmt.Errorf("cannot stack %d-pixel rows onto %d-pixel rows: %w", b.Cols, a.Cols, ErrShapeMismatch)
	}
	out := &Matrix{
		Rows: a.Rows + b.Rows,
		Cols: a.Cols,
		Data: make([]float64, 0, len(a.Data)+len(b.Data)),
	}
	out.Data = append(out.Data, a.Data...)
	out.Data = append(out.Data, b.Data...)
	return out, nil
}
