package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTable() *Table {
	return &Table{
		Name:   "products.csv",
		Header: []string{"Name", "Price"},
		Rows: [][]string{
			{"Lamp", "10"},
			{"Chair"},
		},
	}
}

func TestTable_ColumnIndex(t *testing.T) {
	table := newTable()

	assert.Equal(t, 0, table.ColumnIndex("Name"))
	assert.Equal(t, 1, table.ColumnIndex("Price"))
	assert.Equal(t, -1, table.ColumnIndex("name"))
}

func TestTable_EnsureColumn(t *testing.T) {
	table := newTable()

	idx := table.EnsureColumn(ColumnDescription)
	assert.Equal(t, 2, idx)
	assert.Equal(t, []string{"Name", "Price", "Description"}, table.Header)

	again := table.EnsureColumn(ColumnDescription)
	assert.Equal(t, idx, again)
	assert.Len(t, table.Header, 3)
}

func TestTable_EnsureColumnPadsShortRows(t *testing.T) {
	table := newTable()

	idx := table.EnsureColumn(ColumnShortDescription)
	table.SetCell(1, idx, "<p>Sit.</p>")

	assert.Equal(t, []string{"Lamp", "10", ""}, table.Rows[0])
	assert.Equal(t, []string{"Chair", "", "<p>Sit.</p>"}, table.Rows[1])
}

func TestTable_CellAndSetCell(t *testing.T) {
	table := newTable()

	assert.Equal(t, "", table.Cell(1, 1))
	assert.Equal(t, "", table.Cell(5, 0))

	table.SetCell(1, 3, "value")
	assert.Equal(t, []string{"Chair", "", "", "value"}, table.Rows[1])

	table.SetCell(9, 0, "ignored")
	assert.Len(t, table.Rows, 2)
}

func TestTable_Clone(t *testing.T) {
	table := newTable()
	clone := table.Clone()

	clone.EnsureColumn(ColumnShortDescription)
	clone.SetCell(0, 0, "Desk lamp")

	assert.Equal(t, []string{"Name", "Price"}, table.Header)
	assert.Equal(t, "Lamp", table.Rows[0][0])
	assert.Equal(t, "Desk lamp", clone.Rows[0][0])
}
