package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowbaker/copysmith/internal/notifier"
	"github.com/flowbaker/copysmith/internal/sinks"
	"github.com/flowbaker/copysmith/pkg/aggregate"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// UploadedFile is one raw input, from disk or from a multipart upload.
type UploadedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

type TableDecoder interface {
	Decode(fileName, contentType string, content []byte) (*domain.Table, error)
}

type BatchRunner interface {
	Run(ctx context.Context, params aggregate.RunParams) *aggregate.BatchOutcome
}

type ArtifactPackager interface {
	Package(outcome *aggregate.BatchOutcome) (*aggregate.Artifact, error)
}

type BatchNotifier interface {
	NotifyBatch(ctx context.Context, summary notifier.BatchSummary) error
}

type BatchServiceDependencies struct {
	Decoder  TableDecoder
	Runner   BatchRunner
	Packager ArtifactPackager
	Sinks    []sinks.ArtifactSink
	Notifier BatchNotifier
	Logger   *zerolog.Logger
}

// BatchService runs a whole batch: decode, process, package, store and notify.
type BatchService struct {
	decoder  TableDecoder
	runner   BatchRunner
	packager ArtifactPackager
	sinks    []sinks.ArtifactSink
	notifier BatchNotifier
	logger   zerolog.Logger
}

func NewBatchService(deps BatchServiceDependencies) *BatchService {
	logger := log.Logger
	if deps.Logger != nil {
		logger = *deps.Logger
	}

	return &BatchService{
		decoder:  deps.Decoder,
		runner:   deps.Runner,
		packager: deps.Packager,
		sinks:    deps.Sinks,
		notifier: deps.Notifier,
		logger:   logger,
	}
}

type ProcessParams struct {
	RunID string
	Files []UploadedFile
	Style domain.StyleConfiguration
}

type ProcessResult struct {
	Outcome   *aggregate.BatchOutcome
	Artifact  *aggregate.Artifact
	Locations []string
}

// Process runs params.Files as one batch. Files that cannot be decoded are recorded as
// table failures. When no table completes, the result is returned together with
// domain.ErrNothingToDownload. Sink and notification failures are logged, never returned.
func (s *BatchService) Process(ctx context.Context, params ProcessParams) (*ProcessResult, error) {
	if err := params.Style.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}

	inputs, decodeFailures := s.decode(params.Files)

	outcome := s.runner.Run(ctx, aggregate.RunParams{
		RunID:  params.RunID,
		Inputs: inputs,
		Style:  params.Style,
	})
	outcome.TableFailures = append(decodeFailures, outcome.TableFailures...)

	result := &ProcessResult{Outcome: outcome}

	artifact, err := s.packager.Package(outcome)
	if err != nil {
		s.notify(ctx, result)

		if errors.Is(err, domain.ErrNothingToDownload) {
			return result, err
		}
		return result, fmt.Errorf("failed to package batch %s: %w", outcome.RunID, err)
	}

	result.Artifact = artifact

	locations, err := sinks.StoreAll(ctx, s.sinks, outcome.RunID, artifact)
	if err != nil {
		s.logger.Warn().Err(err).Str("run_id", outcome.RunID).Msg("Failed to store artifact in every sink")
	}
	result.Locations = locations

	s.notify(ctx, result)

	return result, nil
}

func (s *BatchService) decode(files []UploadedFile) ([]aggregate.NamedInput, []*domain.TableError) {
	var (
		inputs   []aggregate.NamedInput
		failures []*domain.TableError
	)

	for _, file := range files {
		table, err := s.decoder.Decode(file.Name, file.ContentType, file.Content)
		if err != nil {
			s.logger.Error().Err(err).Str("table", file.Name).Msg("Skipping unreadable table")
			failures = append(failures, &domain.TableError{Table: file.Name, Err: err})
			continue
		}

		inputs = append(inputs, aggregate.NamedInput{Name: file.Name, Table: table})
	}

	return inputs, failures
}

func (s *BatchService) notify(ctx context.Context, result *ProcessResult) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.NotifyBatch(context.WithoutCancel(ctx), notifier.BatchSummary{
		Outcome:   result.Outcome,
		Artifact:  result.Artifact,
		Locations: result.Locations,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("run_id", result.Outcome.RunID).Msg("Failed to send batch notification")
	}
}
