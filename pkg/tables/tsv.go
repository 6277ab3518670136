package tables

import (
	"github.com/flowbaker/copysmith/pkg/domain"
)

type TSVCodec struct{}

func NewTSVCodec() *TSVCodec {
	return &TSVCodec{}
}

func (c *TSVCodec) Format() domain.TableFormat {
	return domain.TableFormatTSV
}

func (c *TSVCodec) ContentType() string {
	return "text/tab-separated-values"
}

func (c *TSVCodec) CanDecode(content []byte, contentType, fileName string) bool {
	if hasExtension(fileName, ".tsv", ".tab") {
		return true
	}

	return hasContentType(contentType, "text/tab-separated-values", "text/tsv")
}

func (c *TSVCodec) Decode(name string, content []byte) (*domain.Table, error) {
	header, rows, err := readDelimited(content, '\t')
	if err != nil {
		return nil, err
	}

	return &domain.Table{
		Name:      name,
		Format:    domain.TableFormatTSV,
		Delimiter: '\t',
		Header:    header,
		Rows:      rows,
	}, nil
}

func (c *TSVCodec) Encode(table *domain.Table) ([]byte, error) {
	return writeDelimited(table, '\t')
}
