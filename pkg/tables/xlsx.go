package tables

import (
	"bytes"
	"fmt"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/xuri/excelize/v2"
)

const outputSheet = "Sheet1"

type XLSXCodec struct{}

func NewXLSXCodec() *XLSXCodec {
	return &XLSXCodec{}
}

func (c *XLSXCodec) Format() domain.TableFormat {
	return domain.TableFormatXLSX
}

func (c *XLSXCodec) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (c *XLSXCodec) CanDecode(content []byte, contentType, fileName string) bool {
	if hasExtension(fileName, ".xlsx") {
		return true
	}

	if hasContentType(contentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet") {
		return true
	}

	return len(content) >= 4 && content[0] == 0x50 && content[1] == 0x4B && content[2] == 0x03 && content[3] == 0x04
}

// Decode reads the first sheet. The first row is the header.
func (c *XLSXCodec) Decode(name string, content []byte) (*domain.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("Excel sheet is empty")
	}

	header := stripBOM(rows[0])

	table := &domain.Table{
		Name:   name,
		Format: domain.TableFormatXLSX,
		Header: header,
	}

	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d: expected %d cells, saw %d", i+2, len(header), len(row))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func (c *XLSXCodec) Encode(table *domain.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writer, err := f.NewStreamWriter(outputSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet writer: %w", err)
	}

	if err := writer.SetRow("A1", toCells(table.Header)); err != nil {
		return nil, err
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := writer.SetRow(cell, toCells(row)); err != nil {
			return nil, err
		}
	}

	if err := writer.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
