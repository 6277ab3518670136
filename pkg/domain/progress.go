package domain

import (
	"context"
	"errors"
	"time"
)

type ProgressEventType string

const (
	ProgressEventTypeBatchStarted   ProgressEventType = "batch_started"
	ProgressEventTypeTableStarted   ProgressEventType = "table_started"
	ProgressEventTypeRowCompleted   ProgressEventType = "row_completed"
	ProgressEventTypeTableCompleted ProgressEventType = "table_completed"
	ProgressEventTypeTableAborted   ProgressEventType = "table_aborted"
	ProgressEventTypeBatchCompleted ProgressEventType = "batch_completed"
)

// ProgressEvent is emitted for the presentation layer while a batch runs. Row events
// carry the row index, the total, the product name and what was written for it.
type ProgressEvent struct {
	RunID       string            `json:"run_id"`
	EventID     string            `json:"event_id"`
	Type        ProgressEventType `json:"type"`
	Table       string            `json:"table,omitempty"`
	RowIndex    int               `json:"row_index"`
	Total       int               `json:"total"`
	ProductName string            `json:"product_name,omitempty"`
	Short       string            `json:"short,omitempty"`
	Long        string            `json:"long,omitempty"`
	Failed      bool              `json:"failed,omitempty"`
	Error       string            `json:"error,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Fraction reports how far through its table a row event is.
func (e ProgressEvent) Fraction() float64 {
	if e.Total <= 0 {
		return 0
	}
	return float64(e.RowIndex+1) / float64(e.Total)
}

type ProgressEventHandler interface {
	HandleEvent(ctx context.Context, event ProgressEvent) error
}

// ProgressEventHandlerFunc adapts a plain function to ProgressEventHandler.
type ProgressEventHandlerFunc func(ctx context.Context, event ProgressEvent) error

func (f ProgressEventHandlerFunc) HandleEvent(ctx context.Context, event ProgressEvent) error {
	return f(ctx, event)
}

// ProgressObserver fans events out to every subscribed handler. A failing handler
// does not stop the others; the joined error is returned to the caller, which logs it.
type ProgressObserver struct {
	handlers []ProgressEventHandler
}

func NewProgressObserver() *ProgressObserver {
	return &ProgressObserver{
		handlers: []ProgressEventHandler{},
	}
}

func (o *ProgressObserver) Subscribe(handler ProgressEventHandler) {
	o.handlers = append(o.handlers, handler)
}

func (o *ProgressObserver) Notify(ctx context.Context, event ProgressEvent) error {
	if o == nil {
		return nil
	}

	var errs []error
	for _, handler := range o.handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
