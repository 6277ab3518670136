package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowbaker/copysmith/pkg/aggregate"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackNotifier_NotifyBatch(t *testing.T) {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		outcome   *aggregate.BatchOutcome
		wantText  string
		wantColor string
	}{
		{
			name: "all rows succeeded",
			outcome: &aggregate.BatchOutcome{
				RunID:         "run-1",
				Processed:     []aggregate.ProcessedTable{{OutputName: "processed_a.csv"}},
				TotalRows:     3,
				SucceededRows: 3,
				StartedAt:     started,
				FinishedAt:    started.Add(12 * time.Second),
			},
			wantText:  "Batch run-1 finished",
			wantColor: "good",
		},
		{
			name: "skipped table",
			outcome: &aggregate.BatchOutcome{
				RunID:     "run-2",
				Processed: []aggregate.ProcessedTable{{OutputName: "processed_a.csv"}},
				TableFailures: []*domain.TableError{
					{Table: "b.csv", Err: &domain.ConfigurationError{Table: "b.csv", MissingColumns: []string{"Name"}}},
				},
			},
			wantText:  "Batch run-2 finished",
			wantColor: "warning",
		},
		{
			name:      "nothing processed",
			outcome:   &aggregate.BatchOutcome{RunID: "run-3", Canceled: true},
			wantText:  "Batch run-3 was canceled",
			wantColor: "danger",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotURL string
				gotMsg *slack.WebhookMessage
			)

			notifier := NewSlackNotifier(SlackNotifierDependencies{
				WebhookURL: "https://hooks.slack.com/services/T000/B000/XXXX",
				Poster: func(_ context.Context, url string, msg *slack.WebhookMessage) error {
					gotURL = url
					gotMsg = msg
					return nil
				},
			})

			err := notifier.NotifyBatch(context.Background(), BatchSummary{
				Outcome:   tt.outcome,
				Artifact:  &aggregate.Artifact{Name: "processed_a.csv"},
				Locations: []string{"out/processed_a.csv"},
			})
			require.NoError(t, err)

			assert.Equal(t, "https://hooks.slack.com/services/T000/B000/XXXX", gotURL)
			require.NotNil(t, gotMsg)
			assert.Equal(t, tt.wantText, gotMsg.Text)
			require.Len(t, gotMsg.Attachments, 1)
			assert.Equal(t, tt.wantColor, gotMsg.Attachments[0].Color)
		})
	}
}

func TestSlackNotifier_NotifyBatch_Error(t *testing.T) {
	notifier := NewSlackNotifier(SlackNotifierDependencies{
		Poster: func(context.Context, string, *slack.WebhookMessage) error {
			return errors.New("invalid_token")
		},
	})

	err := notifier.NotifyBatch(context.Background(), BatchSummary{Outcome: &aggregate.BatchOutcome{}})

	assert.ErrorContains(t, err, "invalid_token")
}

func TestBuildMessage_Fields(t *testing.T) {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	msg := buildMessage(BatchSummary{
		Outcome: &aggregate.BatchOutcome{
			RunID:         "run-1",
			Processed:     []aggregate.ProcessedTable{{}, {}},
			TotalRows:     4,
			SucceededRows: 3,
			FailedRows:    1,
			StartedAt:     started,
			FinishedAt:    started.Add(90 * time.Second),
		},
		Artifact: &aggregate.Artifact{Name: "processed_files.zip"},
	})

	fields := msg.Attachments[0].Fields
	values := map[string]string{}
	for _, field := range fields {
		values[field.Title] = field.Value
	}

	assert.Equal(t, "2", values["Tables processed"])
	assert.Equal(t, "3/4 succeeded", values["Rows"])
	assert.Equal(t, "1m30s", values["Duration"])
	assert.Equal(t, "processed_files.zip", values["Artifact"])
	assert.Equal(t, "warning", msg.Attachments[0].Color)
}
