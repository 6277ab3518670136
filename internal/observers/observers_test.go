package observers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	channel string
	message interface{}
}

type fakePublisher struct {
	messages []published
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}

	f.messages = append(f.messages, published{channel: channel, message: message})
	cmd.SetVal(1)

	return cmd
}

func TestRedisProgressPublisher_HandleEvent(t *testing.T) {
	client := &fakePublisher{}
	publisher := NewRedisProgressPublisher(RedisProgressPublisherDependencies{
		Client:  client,
		Channel: "copysmith:progress",
	})

	err := publisher.HandleEvent(context.Background(), domain.ProgressEvent{
		RunID:       "run-1",
		Type:        domain.ProgressEventTypeRowCompleted,
		Table:       "catalog.csv",
		RowIndex:    2,
		Total:       5,
		ProductName: "Lampe",
	})
	require.NoError(t, err)

	require.Len(t, client.messages, 1)
	assert.Equal(t, "copysmith:progress", client.messages[0].channel)

	var decoded domain.ProgressEvent
	require.NoError(t, json.Unmarshal(client.messages[0].message.([]byte), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, domain.ProgressEventTypeRowCompleted, decoded.Type)
	assert.Equal(t, 2, decoded.RowIndex)
}

func TestRedisProgressPublisher_HandleEvent_Error(t *testing.T) {
	publisher := NewRedisProgressPublisher(RedisProgressPublisherDependencies{
		Client:  &fakePublisher{err: errors.New("connection refused")},
		Channel: "copysmith:progress",
	})

	err := publisher.HandleEvent(context.Background(), domain.ProgressEvent{Type: domain.ProgressEventTypeBatchStarted})

	assert.ErrorContains(t, err, "connection refused")
}

func TestConsoleProgressHandler_HandleEvent(t *testing.T) {
	tests := []struct {
		name  string
		event domain.ProgressEvent
		want  string
	}{
		{
			name:  "table started",
			event: domain.ProgressEvent{Type: domain.ProgressEventTypeTableStarted, Table: "catalog.csv", Total: 2},
			want:  "catalog.csv (2 rows)\n",
		},
		{
			name:  "row succeeded",
			event: domain.ProgressEvent{Type: domain.ProgressEventTypeRowCompleted, RowIndex: 0, Total: 2, ProductName: "Lampe"},
			want:  "  [1/2] ✓ Lampe\n",
		},
		{
			name: "row failed",
			event: domain.ProgressEvent{
				Type:        domain.ProgressEventTypeRowCompleted,
				RowIndex:    1,
				Total:       2,
				ProductName: "Chaise",
				Failed:      true,
				Error:       "timeout",
			},
			want: "  [2/2] ✗ Chaise timeout\n",
		},
		{
			name:  "batch events are not printed",
			event: domain.ProgressEvent{Type: domain.ProgressEventTypeBatchStarted},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, NewConsoleProgressHandler(&buf).HandleEvent(context.Background(), tt.event))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
