package domain

import "slices"

const (
	ColumnName             = "Name"
	ColumnShortDescription = "Short description"
	ColumnDescription      = "Description"
)

// TableFormat is the on-disk encoding of a table.
type TableFormat string

const (
	TableFormatCSV  TableFormat = "csv"
	TableFormatTSV  TableFormat = "tsv"
	TableFormatXLSX TableFormat = "xlsx"
)

// Table is one uploaded input, or the processed output built from it. Rows are kept
// in source order and a row's position is its identity.
type Table struct {
	Name      string
	Format    TableFormat
	Delimiter rune
	Header    []string
	Rows      [][]string
}

// ColumnIndex returns the position of the named column, or -1. Matching is case-sensitive.
func (t *Table) ColumnIndex(column string) int {
	return slices.Index(t.Header, column)
}

// EnsureColumn returns the index of column, appending it with empty cells when absent.
// Short rows are padded first so the new cell lines up with the new header.
func (t *Table) EnsureColumn(column string) int {
	if idx := t.ColumnIndex(column); idx >= 0 {
		return idx
	}

	width := len(t.Header)
	t.Header = append(t.Header, column)
	for i := range t.Rows {
		for len(t.Rows[i]) < width {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i] = append(t.Rows[i], "")
	}

	return width
}

// Cell reads a cell, treating short rows as padded with empty strings.
func (t *Table) Cell(row, column int) string {
	if row < 0 || row >= len(t.Rows) || column < 0 || column >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][column]
}

// SetCell writes a cell, padding the row when it is shorter than the header.
func (t *Table) SetCell(row, column int, value string) {
	if row < 0 || row >= len(t.Rows) || column < 0 {
		return
	}
	for len(t.Rows[row]) <= column {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][column] = value
}

// Clone returns a deep copy so the orchestrator never writes into the caller's input.
func (t *Table) Clone() *Table {
	clone := &Table{
		Name:      t.Name,
		Format:    t.Format,
		Delimiter: t.Delimiter,
		Header:    slices.Clone(t.Header),
		Rows:      make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		clone.Rows[i] = slices.Clone(row)
	}
	return clone
}

// ProductRow is the orchestrator's view of one input row.
type ProductRow struct {
	Index            int
	Name             string
	ShortDescription string
	LongDescription  string
}
