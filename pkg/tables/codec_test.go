package tables

import (
	"testing"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRegistry_DecodeCSV(t *testing.T) {
	registry := NewDefaultRegistry()

	tests := []struct {
		name              string
		fileName          string
		content           string
		expectedDelimiter rune
		expectedHeader    []string
		expectedRows      [][]string
	}{
		{
			name:              "comma separated",
			fileName:          "products.csv",
			content:           "Name,SKU\nWireless Mouse,WM-1\nDesk Lamp,DL-2\n",
			expectedDelimiter: ',',
			expectedHeader:    []string{"Name", "SKU"},
			expectedRows:      [][]string{{"Wireless Mouse", "WM-1"}, {"Desk Lamp", "DL-2"}},
		},
		{
			name:              "semicolon separated with quoted comma",
			fileName:          "produits.csv",
			content:           "Name;Price;Tags\n\"Lampe, LED\";12,50;maison\n",
			expectedDelimiter: ';',
			expectedHeader:    []string{"Name", "Price", "Tags"},
			expectedRows:      [][]string{{"Lampe, LED", "12,50", "maison"}},
		},
		{
			name:              "byte order mark and short rows",
			fileName:          "export.csv",
			content:           "\ufeffName,SKU,Stock\nMug,M-1\n\n,,\nTeapot,T-1,4\n",
			expectedDelimiter: ',',
			expectedHeader:    []string{"Name", "SKU", "Stock"},
			expectedRows:      [][]string{{"Mug", "M-1", ""}, {"", "", ""}, {"Teapot", "T-1", "4"}},
		},
		{
			name:              "tab separated",
			fileName:          "products.tsv",
			content:           "Name\tSKU\nWireless Mouse\tWM-1\n",
			expectedDelimiter: '\t',
			expectedHeader:    []string{"Name", "SKU"},
			expectedRows:      [][]string{{"Wireless Mouse", "WM-1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := registry.Decode(tt.fileName, "", []byte(tt.content))
			require.NoError(t, err)

			assert.Equal(t, tt.fileName, table.Name)
			assert.Equal(t, tt.expectedDelimiter, table.Delimiter)
			assert.Equal(t, tt.expectedHeader, table.Header)
			assert.Equal(t, tt.expectedRows, table.Rows)
		})
	}
}

func TestRegistry_DecodeEmptyFile(t *testing.T) {
	_, err := NewDefaultRegistry().Decode("empty.csv", "text/csv", nil)
	assert.Error(t, err)
}

func TestRegistry_EncodeKeepsDelimiter(t *testing.T) {
	registry := NewDefaultRegistry()

	table, err := registry.Decode("produits.csv", "", []byte("Name;Price\nLampe;12\n"))
	require.NoError(t, err)

	table.SetCell(0, table.EnsureColumn(domain.ColumnShortDescription), "<p>Une lampe; vraiment.</p>")

	data, contentType, err := registry.Encode(table)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "Name;Price;Short description\nLampe;12;\"<p>Une lampe; vraiment.</p>\"\n", string(data))
}

func TestXLSXCodec_RoundTrip(t *testing.T) {
	codec := NewXLSXCodec()

	table := &domain.Table{
		Name:   "catalog.xlsx",
		Format: domain.TableFormatXLSX,
		Header: []string{"Name", "SKU", domain.ColumnShortDescription},
		Rows: [][]string{
			{"Wireless Mouse", "WM-1", "<p>Click freely.</p>"},
			{"Desk Lamp", "DL-2", ""},
		},
	}

	data, err := codec.Encode(table)
	require.NoError(t, err)
	assert.True(t, codec.CanDecode(data, "", "upload.bin"))

	decoded, err := NewDefaultRegistry().Decode("catalog.xlsx", "", data)
	require.NoError(t, err)

	assert.Equal(t, domain.TableFormatXLSX, decoded.Format)
	assert.Equal(t, table.Header, decoded.Header)
	assert.Equal(t, table.Rows, decoded.Rows)
}

func TestRegistry_DetectFallsBackToCSV(t *testing.T) {
	codec, err := NewDefaultRegistry().Detect([]byte("Name\nMug\n"), "text/plain", "upload")
	require.NoError(t, err)
	assert.Equal(t, domain.TableFormatCSV, codec.Format())
}

func TestRegistry_DecodeKeepsBlankRows(t *testing.T) {
	table, err := NewDefaultRegistry().Decode("products.csv", "", []byte("Name,Price\nMouse,10\n,\nLamp,12\n"))
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"", ""}, table.Rows[1])
	assert.Equal(t, "Lamp", table.Cell(2, table.ColumnIndex(domain.ColumnName)))
}

func TestRegistry_DecodeRejectsRowWiderThanHeader(t *testing.T) {
	_, err := NewDefaultRegistry().Decode("products.csv", "", []byte("Name,Price\nMouse,10,extra\n,,\nLamp,12\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "expected 2 fields, saw 3")
}

func TestRegistry_DecodeKeepsHeaderAsWritten(t *testing.T) {
	table, err := NewDefaultRegistry().Decode("products.csv", "", []byte("\ufeff Name ,SKU\nMug,M-1\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{" Name ", "SKU"}, table.Header)
	assert.Equal(t, -1, table.ColumnIndex(domain.ColumnName))
}

func xlsxFixture(t *testing.T, rows map[string][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for cell, values := range rows {
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}

func TestXLSXCodec_DecodeKeepsBlankRows(t *testing.T) {
	data := xlsxFixture(t, map[string][]interface{}{
		"A1": {"Name", "Price"},
		"A2": {"Mouse", "10"},
		"A4": {"Lamp", "12"},
	})

	table, err := NewXLSXCodec().Decode("catalog.xlsx", data)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Mouse", "10"}, {"", ""}, {"Lamp", "12"}}, table.Rows)
}

func TestXLSXCodec_DecodeRejectsRowWiderThanHeader(t *testing.T) {
	data := xlsxFixture(t, map[string][]interface{}{
		"A1": {"Name", "Price"},
		"A2": {"Mouse", "10", "extra"},
	})

	_, err := NewXLSXCodec().Decode("catalog.xlsx", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
