package sinks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowbaker/copysmith/pkg/aggregate"
	"github.com/spf13/afero"
)

// LocalSink writes artifacts into a directory.
type LocalSink struct {
	fs  afero.Fs
	dir string
}

func NewLocalSink(fs afero.Fs, dir string) *LocalSink {
	return &LocalSink{fs: fs, dir: dir}
}

func (s *LocalSink) Name() string {
	return "local"
}

func (s *LocalSink) Store(_ context.Context, _ string, artifact *aggregate.Artifact) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, filepath.Base(artifact.Name))

	if err := afero.WriteFile(s.fs, path, artifact.Data, os.FileMode(0o644)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
