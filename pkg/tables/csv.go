package tables

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/flowbaker/copysmith/pkg/domain"
)

// candidateDelimiters are tried on the header line, in order of preference on ties.
var candidateDelimiters = []rune{',', ';', '|'}

type CSVCodec struct{}

func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

func (c *CSVCodec) Format() domain.TableFormat {
	return domain.TableFormatCSV
}

func (c *CSVCodec) ContentType() string {
	return "text/csv"
}

func (c *CSVCodec) CanDecode(content []byte, contentType, fileName string) bool {
	if hasExtension(fileName, ".csv") {
		return true
	}

	return hasContentType(contentType, "text/csv", "application/csv")
}

func (c *CSVCodec) Decode(name string, content []byte) (*domain.Table, error) {
	delimiter := sniffDelimiter(content)

	header, rows, err := readDelimited(content, delimiter)
	if err != nil {
		return nil, err
	}

	return &domain.Table{
		Name:      name,
		Format:    domain.TableFormatCSV,
		Delimiter: delimiter,
		Header:    header,
		Rows:      rows,
	}, nil
}

func (c *CSVCodec) Encode(table *domain.Table) ([]byte, error) {
	delimiter := table.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	return writeDelimited(table, delimiter)
}

// sniffDelimiter counts candidate delimiters outside quotes on the header line.
func sniffDelimiter(content []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(content)).ReadString('\n')

	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best := candidateDelimiters[0]
	for _, d := range candidateDelimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

func readDelimited(content []byte, delimiter rune) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("file is empty")
		}
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	header = stripBOM(header)

	var rows [][]string

	// Empty lines are skipped by the reader; a line of bare delimiters is kept as a row.
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse: %w", err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}

		for len(record) < len(header) {
			record = append(record, "")
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}

func writeDelimited(table *domain.Table, delimiter rune) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)
	writer.Comma = delimiter

	if err := writer.Write(table.Header); err != nil {
		return nil, err
	}

	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
