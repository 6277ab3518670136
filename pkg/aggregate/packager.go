package aggregate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/klauspost/compress/zip"
)

const (
	OutputPrefix    = "processed_"
	ArchiveName     = "processed_files.zip"
	ArchiveMimeType = "application/zip"
)

type TableEncoder interface {
	Encode(table *domain.Table) ([]byte, string, error)
}

// Artifact is the single downloadable result of a batch.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// OutputName derives the name of a processed table from its input file name.
func OutputName(inputName string) string {
	return OutputPrefix + filepath.Base(inputName)
}

type Packager struct {
	encoder TableEncoder
	now     func() time.Time
}

func NewPackager(encoder TableEncoder) *Packager {
	return &Packager{
		encoder: encoder,
		now:     time.Now,
	}
}

// Package builds the artifact: the encoded table when exactly one table completed, an
// archive of every completed table otherwise. It fails with domain.ErrNothingToDownload
// when no table completed.
func (p *Packager) Package(outcome *BatchOutcome) (*Artifact, error) {
	switch len(outcome.Processed) {
	case 0:
		return nil, domain.ErrNothingToDownload
	case 1:
		processed := outcome.Processed[0]

		data, contentType, err := p.encoder.Encode(processed.Table)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", processed.OriginalName, err)
		}

		return &Artifact{
			Name:        processed.OutputName,
			ContentType: contentType,
			Data:        data,
		}, nil
	default:
		data, err := p.archive(outcome.Processed)
		if err != nil {
			return nil, err
		}

		return &Artifact{
			Name:        ArchiveName,
			ContentType: ArchiveMimeType,
			Data:        data,
		}, nil
	}
}

func (p *Packager) archive(processed []ProcessedTable) ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	used := make(map[string]bool, len(processed))

	for _, table := range processed {
		data, _, err := p.encoder.Encode(table.Table)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", table.OriginalName, err)
		}

		name := uniqueName(table.OutputName, used)

		entry, err := writer.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: p.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}

		if _, err := entry.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

// uniqueName suffixes repeated entry names: a.csv, a_2.csv, a_3.csv.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}

	used[candidate] = true
	return candidate
}
