package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNothingToDownload is returned when no table of a batch produced output
	ErrNothingToDownload = errors.New("nothing to download")

	// ErrBatchCanceled is returned when the caller cancels a run between rows
	ErrBatchCanceled = errors.New("batch canceled")

	// ErrEmptyProductName is recorded for rows whose name cell is blank
	ErrEmptyProductName = errors.New("product name is empty")
)

// ConfigurationError reports an input table that cannot be processed at all.
type ConfigurationError struct {
	Table          string
	MissingColumns []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("table %q is missing required columns: %s", e.Table, strings.Join(e.MissingColumns, ", "))
}

// GenerationError wraps a failed call to the generation service for one row.
type GenerationError struct {
	Table       string
	Row         int
	ProductName string
	Kind        ContentKind
	Err         error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("table %q row %d (%s): %s generation failed: %v", e.Table, e.Row+1, e.ProductName, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// FormatValidationError is returned when generated text does not match its structural contract.
type FormatValidationError struct {
	Kind   ContentKind
	Reason string
}

func (e *FormatValidationError) Error() string {
	return fmt.Sprintf("%s description failed format validation: %s", e.Kind, e.Reason)
}

// RowError attaches row context to any per-row failure.
type RowError struct {
	Table       string
	Row         int
	ProductName string
	Err         error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table %q row %d (%s): %v", e.Table, e.Row+1, e.ProductName, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// TableError records a table that was aborted or interrupted.
type TableError struct {
	Table string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %q: %v", e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsFormatValidationError checks if an error is a FormatValidationError
func IsFormatValidationError(err error) bool {
	var formatErr *FormatValidationError
	return errors.As(err, &formatErr)
}
