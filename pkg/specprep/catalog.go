package specprep

import (
	"fmt"
	"strconv"
	"strings"
)

// Column is a named catalog column. Format is the FITS binary table TFORM
// (for example "D", "J", "18A" or "8E") and Values holds one entry per row,
// typed as the FITS reader produced it.
type Column struct {
	Name   string
	Format string
	Values []interface{}
}

// Catalog is an ordered collection of equally long columns.
// Row i of a catalog describes the star in row i of the matching matrices.
type Catalog struct {
	columns []*Column
	index   map[string]int
}

// NewCatalog builds a catalog from columns. All columns must have the same
// length and distinct names.
func NewCatalog(columns ...*Column) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(columns))}
	for _, col := range columns {
		if err := c.appendColumn(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) appendColumn(col *Column) error {
	if _, dup := c.index[col.Name]; dup {
		return fmt.Errorf("duplicate column %q: %w", col.Name, ErrSchemaMismatch)
	}
	if len(c.columns) > 0 && len(col.Values) != c.NumRows() {
		return fmt.Errorf("column %q has %d rows, catalog has %d: %w", col.Name, len(col.Values), c.NumRows(), ErrShapeMismatch)
	}
	c.index[col.Name] = len(c.columns)
	c.columns = append(c.columns, col)
	return nil
}

// NumRows returns the number of rows. A catalog without columns has no rows.
func (c *Catalog) NumRows() int {
	if len(c.columns) == 0 {
		return 0
	}
	return len(c.columns[0].Values)
}

// NumCols returns the number of columns.
func (c *Catalog) NumCols() int { return len(c.columns) }

// Columns returns the columns in order. The slice must not be modified.
func (c *Catalog) Columns() []*Column { return c.columns }

// ColumnNames returns the column names in order.
func (c *Catalog) ColumnNames() []string {
	names := make([]string, len(c.columns))
	for i, col := range c.columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (c *Catalog) HasColumn(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Column returns the named column.
func (c *Catalog) Column(name string) (*Column, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.columns[i], true
}

// Value returns the raw value at (name, row).
func (c *Catalog) Value(name string, row int) (interface{}, error) {
	col, ok := c.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not in catalog: %w", name, ErrSchemaMismatch)
	}
	if row < 0 || row >= len(col.Values) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, len(col.Values))
	}
	return col.Values[row], nil
}

// Float returns the value at (name, row) converted to float64.
func (c *Catalog) Float(name string, row int) (float64, error) {
	v, err := c.Value(name, row)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("column %q holds %T, not a number: %w", name, v, ErrSchemaMismatch)
	}
	return f, nil
}

// String returns the value at (name, row) as text. FITS strings are padded
// with trailing blanks; these are removed.
func (c *Catalog) String(name string, row int) (string, error) {
	v, err := c.Value(name, row)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return strings.TrimRight(s, " \x00"), nil
	}
	return fmt.Sprint(v), nil
}

// Select returns a new catalog holding the given rows in the given order.
func (c *Catalog) Select(rows []int) (*Catalog, error) {
	out := &Catalog{index: make(map[string]int, len(c.columns))}
	n := c.NumRows()
	for _, col := range c.columns {
		values := make([]interface{}, len(rows))
		for i, r := range rows {
			if r < 0 || r >= n {
				return nil, fmt.Errorf("row %d out of range [0,%d)", r, n)
			}
			values[i] = col.Values[r]
		}
		if err := out.appendColumn(&Column{Name: col.Name, Format: col.Format, Values: values}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Filter returns the catalog restricted to rows for which keep returns true,
// together with the surviving row indices of the receiver.
// The first error returned by keep aborts the filter.
func (c *Catalog) Filter(keep func(row int) (bool, error)) (*Catalog, []int, error) {
	var rows []int
	for r := 0; r < c.NumRows(); r++ {
		ok, err := keep(r)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", r, err)
		}
		if ok {
			rows = append(rows, r)
		}
	}
	out, err := c.Select(rows)
	if err != nil {
		return nil, nil, err
	}
	return out, rows, nil
}

// AddFloatColumn appends a float64 column, replacing any column with the same name.
func (c *Catalog) AddFloatColumn(name string, values []float64) error {
	if len(c.columns) > 0 && len(values) != c.NumRows() {
		return fmt.Errorf("column %q has %d rows, catalog has %d: %w", name, len(values), c.NumRows(), ErrShapeMismatch)
	}
	boxed := make([]interface{}, len(values))
	for i, v := range values {
		boxed[i] = v
	}
	col := &Column{Name: name, Format: "D", Values: boxed}
	if i, ok := c.index[name]; ok {
		c.columns[i] = col
		return nil
	}
	return c.appendColumn(col)
}

// KeepColumns returns a new catalog with only the named columns, preserving
// the receiver's column order. Names not present are ignored.
func (c *Catalog) KeepColumns(names []string) *Catalog {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := &Catalog{index: make(map[string]int)}
	for _, col := range c.columns {
		if want[col.Name] {
			out.index[col.Name] = len(out.columns)
			out.columns = append(out.columns, col)
		}
	}
	return out
}

// CommonColumns returns the names present in both catalogs, in a's order.
func CommonColumns(a, b *Catalog) []string {
	var common []string
	for _, col := range a.columns {
		if b.HasColumn(col.Name) {
			common = append(common, col.Name)
		}
	}
	return common
}

// VStackCatalogs appends the rows of b below the rows of a. Both catalogs must
// hold the same set of column names; the result follows a's column order.
// String columns of different widths take the wider width, and scalar numeric
// columns of different kinds are promoted to float64.
func VStackCatalogs(a, b *Catalog) (*Catalog, error) {
	if a.NumCols() != b.NumCols() {
		return nil, fmt.Errorf("cannot stack %d columns onto %d columns: %w", b.NumCols(), a.NumCols(), ErrSchemaMismatch)
	}

	out := &Catalog{index: make(map[string]int, a.NumCols())}
	for _, top := range a.columns {
		bottom, ok := b.Column(top.Name)
		if !ok {
			return nil, fmt.Errorf("column %q missing from second catalog: %w", top.Name, ErrSchemaMismatch)
		}

		format, promote, err := reconcileFormats(top.Format, bottom.Format)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", top.Name, err)
		}

		values := make([]interface{}, 0, len(top.Values)+len(bottom.Values))
		values = append(values, top.Values...)
		values = append(values, bottom.Values...)
		if promote {
			for i, v := range values {
				f, _ := toFloat(v)
				values[i] = f
			}
		}

		if err := out.appendColumn(&Column{Name: top.Name, Format: format, Values: values}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseFormat splits a binary table TFORM into its repeat count and type code.
// A missing repeat count means 1.
func ParseFormat(format string) (repeat int, code byte, err error) {
	f := strings.TrimSpace(format)
	i := 0
	for i < len(f) && f[i] >= '0' && f[i] <= '9' {
		i++
	}
	if i == len(f) {
		return 0, 0, fmt.Errorf("malformed column format %q: %w", format, ErrSchemaMismatch)
	}
	repeat = 1
	if i > 0 {
		repeat, err = strconv.Atoi(f[:i])
		if err != nil {
			return 0, 0, fmt.Errorf("malformed column format %q: %w", format, ErrSchemaMismatch)
		}
	}
	return repeat, f[i], nil
}

func reconcileFormats(a, b string) (format string, promote bool, err error) {
	if a == b {
		return a, false, nil
	}
	ra, ca, err := ParseFormat(a)
	if err != nil {
		return "", false, err
	}
	rb, cb, err := ParseFormat(b)
	if err != nil {
		return "", false, err
	}

	switch {
	case ca == 'A' && cb == 'A':
		if rb > ra {
			return b, false, nil
		}
		return a, false, nil
	case ca == cb && ra == rb:
		return a, false, nil
	case ra == 1 && rb == 1 && isNumericCode(ca) && isNumericCode(cb):
		return "D", true, nil
	}
	return "", false, fmt.Errorf("incompatible formats %q and %q: %w", a, b, ErrSchemaMismatch)
}

func isNumericCode(code byte) bool {
	switch code {
	case 'B', 'I', 'J', 'K', 'E', 'D':
		return true
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
