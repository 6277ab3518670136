package aggregate

import (
	"context"
	"errors"
	"time"

	"github.com/flowbaker/copysmith/pkg/batch"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type TableRunner interface {
	Run(ctx context.Context, params batch.RunParams) (*batch.TableOutcome, error)
}

// NamedInput is one decoded upload. Name is the original file name.
type NamedInput struct {
	Name  string
	Table *domain.Table
}

// ProcessedTable is a table that completed, whatever its row failures.
type ProcessedTable struct {
	OriginalName string
	OutputName   string
	Table        *domain.Table
	Succeeded    int
	Failed       int
}

type BatchOutcome struct {
	RunID         string
	Processed     []ProcessedTable
	TableFailures []*domain.TableError
	RowErrors     []*domain.RowError
	Canceled      bool
	TotalRows     int
	SucceededRows int
	FailedRows    int
	StartedAt     time.Time
	FinishedAt    time.Time
}

func (o *BatchOutcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

type AggregatorDependencies struct {
	Runner   TableRunner
	Observer *domain.ProgressObserver
	Logger   *zerolog.Logger
}

// Aggregator runs every input of a batch through the orchestrator, one table after
// the other, and keeps whatever succeeded.
type Aggregator struct {
	runner   TableRunner
	observer *domain.ProgressObserver
	logger   zerolog.Logger
}

func NewAggregator(deps AggregatorDependencies) *Aggregator {
	logger := log.Logger
	if deps.Logger != nil {
		logger = *deps.Logger
	}

	return &Aggregator{
		runner:   deps.Runner,
		observer: deps.Observer,
		logger:   logger,
	}
}

type RunParams struct {
	RunID  string
	Inputs []NamedInput
	Style  domain.StyleConfiguration
}

// Run processes params.Inputs in order. A table that aborts is recorded and the next one
// starts. Cancellation stops the loop; the tables that already completed are kept.
func (a *Aggregator) Run(ctx context.Context, params RunParams) *BatchOutcome {
	runID := params.RunID
	if runID == "" {
		runID = xid.New().String()
	}

	logger := a.logger.With().Str("run_id", runID).Logger()

	outcome := &BatchOutcome{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
	}

	logger.Info().Int("tables", len(params.Inputs)).Msg("Starting batch")
	a.notify(ctx, logger, domain.ProgressEvent{
		RunID: runID,
		Type:  domain.ProgressEventTypeBatchStarted,
		Total: len(params.Inputs),
	})

	for _, input := range params.Inputs {
		if err := ctx.Err(); err != nil {
			outcome.Canceled = true
			logger.Warn().Err(err).Msg("Batch canceled, remaining tables skipped")
			break
		}

		table := *input.Table
		table.Name = input.Name

		result, err := a.runner.Run(ctx, batch.RunParams{
			RunID: runID,
			Table: &table,
			Style: params.Style,
		})

		if result != nil {
			outcome.TotalRows += result.Total
			outcome.SucceededRows += result.Succeeded
			outcome.FailedRows += result.Failed()
			outcome.RowErrors = append(outcome.RowErrors, result.RowErrors...)
		}

		if err != nil {
			outcome.TableFailures = append(outcome.TableFailures, &domain.TableError{Table: input.Name, Err: err})

			if errors.Is(err, domain.ErrBatchCanceled) {
				outcome.Canceled = true
				break
			}
			continue
		}

		outcome.Processed = append(outcome.Processed, ProcessedTable{
			OriginalName: input.Name,
			OutputName:   OutputName(input.Name),
			Table:        result.Table,
			Succeeded:    result.Succeeded,
			Failed:       result.Failed(),
		})
	}

	outcome.FinishedAt = time.Now().UTC()

	logger.Info().
		Int("processed", len(outcome.Processed)).
		Int("skipped", len(outcome.TableFailures)).
		Int("rows_succeeded", outcome.SucceededRows).
		Int("rows_failed", outcome.FailedRows).
		Dur("duration", outcome.Duration()).
		Msg("Batch finished")

	a.notify(ctx, logger, domain.ProgressEvent{
		RunID: runID,
		Type:  domain.ProgressEventTypeBatchCompleted,
		Total: len(params.Inputs),
	})

	return outcome
}

func (a *Aggregator) notify(ctx context.Context, logger zerolog.Logger, event domain.ProgressEvent) {
	event.EventID = uuid.New().String()
	event.Timestamp = time.Now().UTC()

	if err := a.observer.Notify(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn().Err(err).Str("event", string(event.Type)).Msg("Failed to publish progress event")
	}
}
