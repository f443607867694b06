package producer

import (
	"context"
	"errors"
	"testing"

	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	kafkaMock "go-ems/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	writeFn func(msgs ...kafkago.Message) error
	calls   int
	sent    []kafkago.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.calls++
	if f.writeFn != nil {
		if err := f.writeFn(msgs...); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestRelayPending(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes batch and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}
		first := kafka.OutboxEvent{ID: "o-1", AggregateID: "emp-1", EventType: "employee_onboarded", Topic: events.EmployeeLifecycleTopic, RequestID: "rid-1", Payload: []byte(`{}`)}
		second := kafka.OutboxEvent{ID: "o-2", AggregateID: "sal-1", EventType: "salary_generated", Topic: events.SalaryGeneratedTopic, Payload: []byte(`{}`)}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{first, second}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		n, err := relayPending(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 1, writer.calls)
		require.Len(t, writer.sent, 2)
		assert.Equal(t, events.EmployeeLifecycleTopic, writer.sent[0].Topic)
		assert.Equal(t, []byte("emp-1"), writer.sent[0].Key)
		assert.Equal(t, "o-1", header(writer.sent[0], "event_id"))
		assert.Equal(t, "rid-1", header(writer.sent[0], "request_id"))
	})

	t.Run("per message failure marks only that event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		brokerErr := errors.New("broker unavailable")
		writer := &fakeWriter{writeFn: func(msgs ...kafkago.Message) error {
			return kafkago.WriteErrors{brokerErr, nil}
		}}
		bad := kafka.OutboxEvent{ID: "o-1", AggregateID: "bad", Topic: "t"}
		good := kafka.OutboxEvent{ID: "o-2", AggregateID: "good", Topic: "t"}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{bad, good}, nil)
		repo.EXPECT().MarkFailed(ctx, bad, "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		n, err := relayPending(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("batch failure marks every event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{writeFn: func(...kafkago.Message) error { return errors.New("dial tcp: refused") }}
		a := kafka.OutboxEvent{ID: "o-1", Topic: "t"}
		b := kafka.OutboxEvent{ID: "o-2", Topic: "t"}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{a, b}, nil)
		repo.EXPECT().MarkFailed(ctx, a, "dial tcp: refused").Return(nil)
		repo.EXPECT().MarkFailed(ctx, b, "dial tcp: refused").Return(nil)

		_, err := relayPending(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
	})

	t.Run("empty outbox", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}
		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, nil)

		n, err := relayPending(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, writer.calls)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		_, err := relayPending(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.Error(t, err)
	})
}
