package tables

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flowbaker/copysmith/pkg/domain"
)

// Codec reads and writes one table format.
type Codec interface {
	Format() domain.TableFormat
	CanDecode(content []byte, contentType, fileName string) bool
	Decode(name string, content []byte) (*domain.Table, error)
	Encode(table *domain.Table) ([]byte, error)
	ContentType() string
}

type Registry struct {
	codecs map[domain.TableFormat]Codec
	order  []domain.TableFormat
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[domain.TableFormat]Codec),
		order:  make([]domain.TableFormat, 0),
	}
}

// NewDefaultRegistry registers every supported format. XLSX is probed first because
// its zip signature is unambiguous; CSV is the fallback for unknown text files.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	registry.Register(NewXLSXCodec())
	registry.Register(NewTSVCodec())
	registry.Register(NewCSVCodec())

	return registry
}

func (r *Registry) Register(codec Codec) {
	format := codec.Format()
	if _, exists := r.codecs[format]; !exists {
		r.order = append(r.order, format)
	}
	r.codecs[format] = codec
}

func (r *Registry) Get(format domain.TableFormat) (Codec, error) {
	if codec, ok := r.codecs[format]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("unsupported table format: %s", format)
}

// Detect picks the codec for an upload from its name, content type or leading bytes.
func (r *Registry) Detect(content []byte, contentType, fileName string) (Codec, error) {
	for _, format := range r.order {
		codec := r.codecs[format]
		if codec.CanDecode(content, contentType, fileName) {
			return codec, nil
		}
	}

	if codec, ok := r.codecs[domain.TableFormatCSV]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unable to detect table format of %s", fileName)
}

// Decode detects the format of an upload and decodes it.
func (r *Registry) Decode(fileName, contentType string, content []byte) (*domain.Table, error) {
	codec, err := r.Detect(content, contentType, fileName)
	if err != nil {
		return nil, err
	}

	table, err := codec.Decode(fileName, content)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileName, err)
	}

	return table, nil
}

// Encode writes table back in the format it was read from.
func (r *Registry) Encode(table *domain.Table) ([]byte, string, error) {
	codec, err := r.Get(table.Format)
	if err != nil {
		return nil, "", err
	}

	data, err := codec.Encode(table)
	if err != nil {
		return nil, "", fmt.Errorf("failed to write %s: %w", table.Name, err)
	}

	return data, codec.ContentType(), nil
}

func hasExtension(fileName string, extensions ...string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func hasContentType(contentType string, types ...string) bool {
	contentTypeLower := strings.ToLower(contentType)
	for _, t := range types {
		if strings.Contains(contentTypeLower, t) {
			return true
		}
	}
	return false
}

// stripBOM removes a UTF-8 byte order mark from the first header cell. Column names
// are otherwise kept exactly as written.
func stripBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}
