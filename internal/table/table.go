package table

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Direction is the sort state of a single header.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "unsorted"
	}
}

// Header is one column header. Its Direction is owned by the Controller;
// any visual marker (CSS class, arrow glyph) is derived from it, never the
// other way around.
type Header struct {
	Label     string
	Direction Direction
}

// Row is one body row. Cells are column-ordered text values. Error marks a
// row with a data problem; Hidden marks a row suppressed by the errors-only
// filter. Row identity is pointer identity: sorting reorders *Row values and
// never copies a row.
type Row struct {
	Cells  []string
	Error  bool
	Hidden bool
}

// Cell returns the trimmed text of column col, or "" when the row has fewer
// cells than that.
func (r *Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[col])
}

// Table is an ordered set of headers and body rows. Header i corresponds to
// cell i of every row.
type Table struct {
	Headers []Header
	Rows    []*Row
}

// RowShapeError records a row that has fewer cells than the sorted column
// requires. The row still participates in the sort with an empty key.
type RowShapeError struct {
	Row    int // index of the row at the time the sort started
	Column int
	Cells  int
}

func (e RowShapeError) Error() string {
	return fmt.Sprintf("row %d has %d cells, cannot read column %d", e.Row, e.Cells, e.Column)
}

// Controller implements sorting and the errors-only filter over a Table.
type Controller struct {
	table      *Table
	errorsOnly bool
}

// NewController binds a controller to a table. The table must exist and have
// at least one header column.
func NewController(t *Table) (*Controller, error) {
	if t == nil {
		return nil, errors.New("table controller: no table to bind to")
	}
	if len(t.Headers) == 0 {
		return nil, errors.New("table controller: table has no header columns")
	}
	return &Controller{table: t}, nil
}

// Table returns the bound table.
func (c *Controller) Table() *Table {
	return c.table
}

// Columns returns the number of header columns.
func (c *Controller) Columns() int {
	return len(c.table.Headers)
}

// ErrorsOnly reports whether the errors-only filter is active.
func (c *Controller) ErrorsOnly() bool {
	return c.errorsOnly
}

// SetErrorsOnly records the filter state without touching row visibility.
// Used when binding to a document whose rows already carry hidden markers.
func (c *Controller) SetErrorsOnly(checked bool) {
	c.errorsOnly = checked
}

// SortState returns the currently sorted column and its direction, or
// (-1, Unsorted) when no column is sorted.
func (c *Controller) SortState() (int, Direction) {
	for i, h := range c.table.Headers {
		if h.Direction != Unsorted {
			return i, h.Direction
		}
	}
	return -1, Unsorted
}

// SortByColumn sorts the body rows by column col. A column that is currently
// ascending flips to descending; any other state (unsorted or descending)
// sorts ascending. All other headers lose their direction marker, so exactly
// one header is marked after the call. The sort is stable.
//
// Rows with too few cells are reported once each and sort with an empty key;
// the rest of the table still sorts. Hidden flags are left untouched.
func (c *Controller) SortByColumn(col int) ([]RowShapeError, error) {
	t := c.table
	if col < 0 || col >= len(t.Headers) {
		return nil, fmt.Errorf("sort column %d out of range, table has %d columns", col, len(t.Headers))
	}

	next := Ascending
	if t.Headers[col].Direction == Ascending {
		next = Descending
	}
	for i := range t.Headers {
		t.Headers[i].Direction = Unsorted
	}

	var malformed []RowShapeError
	keys := make([]sortKey, len(t.Rows))
	for i, r := range t.Rows {
		if col >= len(r.Cells) {
			malformed = append(malformed, RowShapeError{Row: i, Column: col, Cells: len(r.Cells)})
			keys[i] = keyFor("")
			continue
		}
		keys[i] = keyFor(r.Cells[col])
	}

	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		cmp := keys[order[a]].compare(keys[order[b]])
		if next == Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	rows := make([]*Row, len(t.Rows))
	for i, idx := range order {
		rows[i] = t.Rows[idx]
	}
	t.Rows = rows
	t.Headers[col].Direction = next

	return malformed, nil
}

// ToggleErrorFilter applies or clears the errors-only filter. Checked hides
// every row that does not carry the error marker; unchecked unhides every
// row regardless of its error state. Row order is never touched.
func (c *Controller) ToggleErrorFilter(checked bool) {
	c.errorsOnly = checked
	for _, r := range c.table.Rows {
		if checked {
			r.Hidden = !r.Error
		} else {
			r.Hidden = false
		}
	}
}

// sortKey is the derived comparison value of one cell: the numeric value when
// the trimmed text parses as a finite number, else the lowercased text.
// Numeric keys order before all non-numeric keys, in both directions.
type sortKey struct {
	numeric bool
	num     float64
	text    string
}

func keyFor(raw string) sortKey {
	s := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return sortKey{numeric: true, num: f}
	}
	return sortKey{text: strings.ToLower(s)}
}

func (k sortKey) compare(o sortKey) int {
	switch {
	case k.numeric && o.numeric:
		switch {
		case k.num < o.num:
			return -1
		case k.num > o.num:
			return 1
		}
		return 0
	case k.numeric:
		return -1
	case o.numeric:
		return 1
	}
	return strings.Compare(k.text, o.text)
}
