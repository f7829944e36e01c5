package swrl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adalundhe/owlreasoner/core/ontology"
)

var (
	// ErrDuplicateColumn is returned when a column is added twice to a table.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrUnknownColumn is returned when a row binds a column the table lacks.
	ErrUnknownColumn = errors.New("unknown column")
)

// Binding is one row of a table viewed as variable name to term.
type Binding map[string]ontology.Term

// =============================================================================
// Table
// =============================================================================

// Table is an ordered sequence of rows sharing one column set. Columns are
// variable names; a cell holding the zero Term is unbound. Tables grow only
// by appending columns and rows.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]ontology.Term
}

// NewTable returns an empty table with the given columns. Repeated names
// are kept once.
func NewTable(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		_ = t.AddColumn(c)
	}
	return t
}

// AddColumn appends a column. Existing rows get a null cell.
func (t *Table) AddColumn(name string) error {
	if _, ok := t.index[name]; ok {
		return fmt.Errorf("add column %q: %w", name, ErrDuplicateColumn)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], ontology.Term{})
	}
	return nil
}

// AddRow appends a row. Every key must name an existing column; columns
// absent from bindings are left null.
func (t *Table) AddRow(bindings Binding) error {
	row := make([]ontology.Term, len(t.columns))
	for name, value := range bindings {
		i, ok := t.index[name]
		if !ok {
			return fmt.Errorf("add row: %q: %w", name, ErrUnknownColumn)
		}
		row[i] = value
	}
	t.rows = append(t.rows, row)
	return nil
}

// appendRow adds a row whose cells already follow the column order.
func (t *Table) appendRow(row []ontology.Term) {
	t.rows = append(t.rows, row)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns a copy of the rows, cells in column order.
func (t *Table) Rows() [][]ontology.Term {
	out := make([][]ontology.Term, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]ontology.Term(nil), row...)
	}
	return out
}

// Value returns the cell of row i in the named column. ok is false when the
// column does not exist or the row is out of range.
func (t *Table) Value(i int, column string) (ontology.Term, bool) {
	c, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return ontology.Term{}, false
	}
	return t.rows[i][c], true
}

// Binding returns row i as a map from column name to term.
func (t *Table) Binding(i int) Binding {
	b := make(Binding, len(t.columns))
	for c, name := range t.columns {
		b[name] = t.rows[i][c]
	}
	return b
}

// Filter returns a table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Binding) bool) *Table {
	out := NewTable(t.columns...)
	for i, row := range t.rows {
		if keep(t.Binding(i)) {
			out.appendRow(row)
		}
	}
	return out
}

// Project returns a table restricted to the given columns, in that order.
func (t *Table) Project(columns ...string) (*Table, error) {
	positions := make([]int, len(columns))
	for i, name := range columns {
		c, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("project %q: %w", name, ErrUnknownColumn)
		}
		positions[i] = c
	}
	out := NewTable(columns...)
	for _, row := range t.rows {
		projected := make([]ontology.Term, len(positions))
		for i, c := range positions {
			projected[i] = row[c]
		}
		out.appendRow(projected)
	}
	return out, nil
}

// Distinct returns a table without repeated rows, keeping first occurrences.
func (t *Table) Distinct() *Table {
	out := NewTable(t.columns...)
	seen := make(map[string]struct{}, len(t.rows))
	for _, row := range t.rows {
		var b strings.Builder
		for _, cell := range row {
			// null cells render empty, which no bound term does
			b.WriteString(cell.String())
			b.WriteByte(0)
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.appendRow(row)
	}
	return out
}

// String renders the table for debugging.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.columns, "\t"))
	for _, row := range t.rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(cell.String())
		}
	}
	return b.String()
}

// =============================================================================
// Join
// =============================================================================

// Join returns the natural join of left and right over their shared columns.
// Output rows follow the left row order, then the right row order for each
// left row. Without shared columns the result is the cartesian product. A
// null cell in a shared column never matches.
func Join(left, right *Table) *Table {
	columns, shared, joiner := joinedColumns(left, right)
	out := NewTable(columns...)

	leftKeys := make([]int, len(shared))
	rightKeys := make([]int, len(shared))
	for i, name := range shared {
		leftKeys[i] = left.index[name]
		rightKeys[i] = right.index[name]
	}

	// the right side is hashed so that probing keeps the left order
	rightRows := make(map[string][]int)
	for i, row := range right.rows {
		key, ok := identityKey(row, rightKeys)
		if !ok {
			continue
		}
		rightRows[key] = append(rightRows[key], i)
	}
	for _, row := range left.rows {
		key, ok := identityKey(row, leftKeys)
		if !ok {
			continue
		}
		for _, j := range rightRows[key] {
			out.appendRow(joiner(row, right.rows[j]))
		}
	}
	return out
}

// joinedColumns returns the output columns of a join, the shared column
// names and a function building an output row from a left and a right row.
func joinedColumns(left, right *Table) ([]string, []string, func(l, r []ontology.Term) []ontology.Term) {
	columns := append([]string(nil), left.columns...)
	var shared []string
	var extra []int
	for i, name := range right.columns {
		if _, ok := left.index[name]; ok {
			shared = append(shared, name)
			continue
		}
		columns = append(columns, name)
		extra = append(extra, i)
	}
	joiner := func(l, r []ontology.Term) []ontology.Term {
		row := make([]ontology.Term, 0, len(columns))
		row = append(row, l...)
		for _, i := range extra {
			row = append(row, r[i])
		}
		return row
	}
	return columns, shared, joiner
}

// identityKey concatenates the cells at positions into a hash key. ok is
// false when one of the cells is null.
func identityKey(row []ontology.Term, positions []int) (string, bool) {
	var b strings.Builder
	for _, p := range positions {
		cell := row[p]
		if cell.IsNull() {
			return "", false
		}
		b.WriteString(cell.String())
		b.WriteByte(0)
	}
	return b.String(), true
}
