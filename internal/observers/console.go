package observers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flowbaker/copysmith/pkg/domain"
)

type consoleStyles struct {
	table   lipgloss.Style
	counter lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
}

// ConsoleProgressHandler prints one line per row and a header per table.
type ConsoleProgressHandler struct {
	out    io.Writer
	styles consoleStyles
}

func NewConsoleProgressHandler(out io.Writer) *ConsoleProgressHandler {
	renderer := lipgloss.NewRenderer(out)

	return &ConsoleProgressHandler{
		out: out,
		styles: consoleStyles{
			table:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
			counter: renderer.NewStyle().Faint(true),
			ok:      renderer.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
			failed:  renderer.NewStyle().Foreground(lipgloss.Color("#e53935")),
			muted:   renderer.NewStyle().Faint(true),
		},
	}
}

func (h *ConsoleProgressHandler) HandleEvent(_ context.Context, event domain.ProgressEvent) error {
	line := h.render(event)
	if line == "" {
		return nil
	}

	_, err := fmt.Fprintln(h.out, line)
	return err
}

func (h *ConsoleProgressHandler) render(event domain.ProgressEvent) string {
	switch event.Type {
	case domain.ProgressEventTypeTableStarted:
		return h.styles.table.Render(fmt.Sprintf("%s (%d rows)", event.Table, event.Total))
	case domain.ProgressEventTypeRowCompleted:
		counter := h.styles.counter.Render(fmt.Sprintf("[%d/%d]", event.RowIndex+1, event.Total))
		if event.Failed {
			return fmt.Sprintf("  %s %s %s %s", counter, h.styles.failed.Render("✗"), event.ProductName, h.styles.muted.Render(event.Error))
		}
		return fmt.Sprintf("  %s %s %s", counter, h.styles.ok.Render("✓"), event.ProductName)
	case domain.ProgressEventTypeTableAborted:
		return h.styles.failed.Render(fmt.Sprintf("%s skipped: %s", event.Table, event.Error))
	case domain.ProgressEventTypeTableCompleted:
		return h.styles.muted.Render(strings.Repeat("─", 32))
	default:
		return ""
	}
}
