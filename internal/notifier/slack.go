package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flowbaker/copysmith/pkg/aggregate"
	"github.com/slack-go/slack"
)

// WebhookPoster posts a message to a Slack incoming webhook.
type WebhookPoster func(ctx context.Context, url string, msg *slack.WebhookMessage) error

type SlackNotifierDependencies struct {
	WebhookURL string
	Poster     WebhookPoster
}

// SlackNotifier posts a summary of every finished batch.
type SlackNotifier struct {
	webhookURL string
	post       WebhookPoster
}

func NewSlackNotifier(deps SlackNotifierDependencies) *SlackNotifier {
	post := deps.Poster
	if post == nil {
		post = slack.PostWebhookContext
	}

	return &SlackNotifier{
		webhookURL: deps.WebhookURL,
		post:       post,
	}
}

type BatchSummary struct {
	Outcome   *aggregate.BatchOutcome
	Artifact  *aggregate.Artifact
	Locations []string
}

func (n *SlackNotifier) NotifyBatch(ctx context.Context, summary BatchSummary) error {
	if err := n.post(ctx, n.webhookURL, buildMessage(summary)); err != nil {
		return fmt.Errorf("failed to post batch summary to slack: %w", err)
	}
	return nil
}

func buildMessage(summary BatchSummary) *slack.WebhookMessage {
	outcome := summary.Outcome

	color := "good"
	switch {
	case len(outcome.Processed) == 0:
		color = "danger"
	case outcome.FailedRows > 0 || len(outcome.TableFailures) > 0 || outcome.Canceled:
		color = "warning"
	}

	fields := []slack.AttachmentField{
		{Title: "Tables processed", Value: fmt.Sprintf("%d", len(outcome.Processed)), Short: true},
		{Title: "Tables skipped", Value: fmt.Sprintf("%d", len(outcome.TableFailures)), Short: true},
		{Title: "Rows", Value: fmt.Sprintf("%d/%d succeeded", outcome.SucceededRows, outcome.TotalRows), Short: true},
		{Title: "Duration", Value: outcome.Duration().Round(time.Second).String(), Short: true},
	}

	if summary.Artifact != nil {
		fields = append(fields, slack.AttachmentField{Title: "Artifact", Value: summary.Artifact.Name})
	}
	if len(summary.Locations) > 0 {
		fields = append(fields, slack.AttachmentField{Title: "Stored at", Value: strings.Join(summary.Locations, "\n")})
	}
	if len(outcome.TableFailures) > 0 {
		var lines []string
		for _, failure := range outcome.TableFailures {
			lines = append(lines, failure.Error())
		}
		fields = append(fields, slack.AttachmentField{Title: "Skipped tables", Value: strings.Join(lines, "\n")})
	}

	text := fmt.Sprintf("Batch %s finished", outcome.RunID)
	if outcome.Canceled {
		text = fmt.Sprintf("Batch %s was canceled", outcome.RunID)
	}

	return &slack.WebhookMessage{
		Text: text,
		Attachments: []slack.Attachment{
			{
				Color:  color,
				Fields: fields,
			},
		},
	}
}
