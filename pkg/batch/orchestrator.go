package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/flowbaker/copysmith/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LanguageResolver interface {
	Resolve(selector, productName string) domain.LanguageCode
}

type PromptBuilder interface {
	Build(productName string, lang domain.LanguageCode, style domain.StyleConfiguration, kind domain.ContentKind) (string, error)
}

type Generator interface {
	Submit(ctx context.Context, req domain.GenerationRequest) (string, error)
}

type OutputValidator interface {
	Check(kind domain.ContentKind, style domain.ShortStyle, text string) (string, error)
}

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

// TableOutcome is the result of running one input table.
type TableOutcome struct {
	Name      string
	State     State
	Table     *domain.Table
	Total     int
	Succeeded int
	RowErrors []*domain.RowError
}

func (o *TableOutcome) Failed() int {
	return len(o.RowErrors)
}

type OrchestratorDependencies struct {
	Resolver  LanguageResolver
	Builder   PromptBuilder
	Generator Generator
	Validator OutputValidator
	Pacer     Pacer
	Observer  *domain.ProgressObserver
	Logger    *zerolog.Logger
}

// Orchestrator processes the rows of one table strictly in order, one outbound call
// at a time, pausing between rows.
type Orchestrator struct {
	resolver  LanguageResolver
	builder   PromptBuilder
	generator Generator
	validator OutputValidator
	pacer     Pacer
	observer  *domain.ProgressObserver
	logger    zerolog.Logger
}

func NewOrchestrator(deps OrchestratorDependencies) *Orchestrator {
	pacer := deps.Pacer
	if pacer == nil {
		pacer = NewFixedPacer()
	}

	logger := log.Logger
	if deps.Logger != nil {
		logger = *deps.Logger
	}

	return &Orchestrator{
		resolver:  deps.Resolver,
		builder:   deps.Builder,
		generator: deps.Generator,
		validator: deps.Validator,
		pacer:     pacer,
		observer:  deps.Observer,
		logger:    logger,
	}
}

type RunParams struct {
	RunID string
	Table *domain.Table
	Style domain.StyleConfiguration
}

// Run processes every row of params.Table into a copy of it with the two description
// columns filled. The input table is never modified. A missing Name column aborts the
// table with a *domain.ConfigurationError; a canceled context aborts it with
// domain.ErrBatchCanceled. Row failures never abort the table.
func (o *Orchestrator) Run(ctx context.Context, params RunParams) (*TableOutcome, error) {
	input := params.Table
	logger := o.logger.With().Str("table", input.Name).Logger()

	outcome := &TableOutcome{
		Name:  input.Name,
		State: StateIdle,
		Total: len(input.Rows),
	}

	nameIdx := input.ColumnIndex(domain.ColumnName)
	if nameIdx < 0 {
		outcome.State = StateAborted
		err := &domain.ConfigurationError{Table: input.Name, MissingColumns: []string{domain.ColumnName}}

		logger.Error().Err(err).Msg("Skipping table")
		o.notify(ctx, logger, domain.ProgressEvent{
			RunID: params.RunID,
			Type:  domain.ProgressEventTypeTableAborted,
			Table: input.Name,
			Total: outcome.Total,
			Error: err.Error(),
		})

		return outcome, err
	}

	output := input.Clone()
	shortIdx := output.EnsureColumn(domain.ColumnShortDescription)
	longIdx := output.EnsureColumn(domain.ColumnDescription)

	outcome.State = StateRunning

	logger.Info().Int("rows", outcome.Total).Msg("Processing table")
	o.notify(ctx, logger, domain.ProgressEvent{
		RunID: params.RunID,
		Type:  domain.ProgressEventTypeTableStarted,
		Table: input.Name,
		Total: outcome.Total,
	})

	for i := range output.Rows {
		if err := ctx.Err(); err != nil {
			return o.abort(outcome, logger, err)
		}

		row := domain.ProductRow{
			Index: i,
			Name:  strings.TrimSpace(output.Cell(i, nameIdx)),
		}

		rowErr := o.processRow(ctx, input.Name, params.Style, &row)

		output.SetCell(i, shortIdx, row.ShortDescription)
		output.SetCell(i, longIdx, row.LongDescription)

		event := domain.ProgressEvent{
			RunID:       params.RunID,
			Type:        domain.ProgressEventTypeRowCompleted,
			Table:       input.Name,
			RowIndex:    i,
			Total:       outcome.Total,
			ProductName: row.Name,
			Short:       row.ShortDescription,
			Long:        row.LongDescription,
		}

		if rowErr != nil {
			outcome.RowErrors = append(outcome.RowErrors, rowErr)
			event.Failed = true
			event.Error = rowErr.Err.Error()

			logger.Warn().Err(rowErr.Err).Int("row", i+1).Str("product", row.Name).Msg("Row failed, descriptions left empty")
		} else {
			outcome.Succeeded++
			logger.Info().Int("row", i+1).Int("total", outcome.Total).Str("product", row.Name).Msg("Row processed")
		}

		o.notify(ctx, logger, event)

		if i < len(output.Rows)-1 {
			if err := o.pacer.Wait(ctx, i); err != nil {
				return o.abort(outcome, logger, err)
			}
		}
	}

	outcome.State = StateCompleted
	outcome.Table = output

	logger.Info().
		Int("succeeded", outcome.Succeeded).
		Int("failed", outcome.Failed()).
		Msg("Table processed")

	o.notify(ctx, logger, domain.ProgressEvent{
		RunID:    params.RunID,
		Type:     domain.ProgressEventTypeTableCompleted,
		Table:    input.Name,
		RowIndex: max(outcome.Total-1, 0),
		Total:    outcome.Total,
	})

	return outcome, nil
}

// processRow fills row's descriptions, or leaves both empty and returns why.
func (o *Orchestrator) processRow(ctx context.Context, table string, style domain.StyleConfiguration, row *domain.ProductRow) *domain.RowError {
	rowError := func(err error) *domain.RowError {
		return &domain.RowError{Table: table, Row: row.Index, ProductName: row.Name, Err: err}
	}

	if row.Name == "" {
		return rowError(domain.ErrEmptyProductName)
	}

	lang := o.resolver.Resolve(style.TargetLanguage, row.Name)

	short, shortErr := o.generate(ctx, table, style, lang, row, domain.ContentKindShort)
	// The long description is requested even when the short one failed.
	long, longErr := o.generate(ctx, table, style, lang, row, domain.ContentKindLong)

	if err := errors.Join(shortErr, longErr); err != nil {
		return rowError(err)
	}

	if shape := validation.LongShape(long); !shape.IsTwoSections() && !validation.IsLanguageSentinel(long) {
		o.logger.Warn().
			Str("table", table).
			Int("row", row.Index+1).
			Int("headings", shape.Headings).
			Int("paragraphs", shape.Paragraphs).
			Msg("Long description does not have two heading/paragraph pairs")
	}

	row.ShortDescription = short
	row.LongDescription = long

	return nil
}

func (o *Orchestrator) generate(ctx context.Context, table string, style domain.StyleConfiguration, lang domain.LanguageCode, row *domain.ProductRow, kind domain.ContentKind) (string, error) {
	prompt, err := o.builder.Build(row.Name, lang, style, kind)
	if err != nil {
		return "", err
	}

	text, err := o.generator.Submit(ctx, domain.GenerationRequest{
		Prompt:      prompt,
		MaxTokens:   kind.MaxTokens(),
		Temperature: style.Temperature,
	})
	if err != nil {
		return "", &domain.GenerationError{
			Table:       table,
			Row:         row.Index,
			ProductName: row.Name,
			Kind:        kind,
			Err:         err,
		}
	}

	return o.validator.Check(kind, style.ShortStyle, text)
}

func (o *Orchestrator) abort(outcome *TableOutcome, logger zerolog.Logger, cause error) (*TableOutcome, error) {
	outcome.State = StateAborted
	outcome.Table = nil

	logger.Warn().Err(cause).Msg("Table interrupted")

	return outcome, fmt.Errorf("%w: %v", domain.ErrBatchCanceled, cause)
}

func (o *Orchestrator) notify(ctx context.Context, logger zerolog.Logger, event domain.ProgressEvent) {
	event.EventID = uuid.New().String()
	event.Timestamp = time.Now().UTC()

	// Progress must never fail the batch; a detached context lets the final
	// events of a canceled run still reach their handlers.
	if err := o.observer.Notify(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn().Err(err).Str("event", string(event.Type)).Msg("Failed to publish progress event")
	}
}
