package producer

import (
	"context"
	"time"

	"go-ems/internal/messaging/kafka"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const batchSize = 50

var metricsRelayed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ems_outbox_events_total",
		Help: "Outbox events handed to Kafka, by topic and result.",
	},
	[]string{"topic", "result"},
)

// ProcessOutboxEvents polls the outbox every pollInterval and relays pending
// events until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			// drain full batches before waiting for the next tick
			for {
				n, err := relayPending(ctx, repo, writer, log)
				if err != nil {
					log.Error("relay outbox events failed", zap.Error(err))
					break
				}
				if n < batchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// relayPending publishes one batch and records each outcome. It returns the
// batch size so the caller knows whether more events are waiting.
func relayPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	log *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	log.Debug("relaying outbox batch", zap.Int("count", len(events)))

	results := publishBatch(ctx, writer, events)
	sent := 0
	for i, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if pubErr := results[i]; pubErr != nil {
			metricsRelayed.WithLabelValues(event.Topic, "failed").Inc()
			log.Warn("publish outbox event failed", append(fields, zap.Int("retry_count", event.RetryCount), zap.Error(pubErr))...)
			if markErr := repo.MarkFailed(ctx, event, pubErr.Error()); markErr != nil {
				log.Error("mark outbox event failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		metricsRelayed.WithLabelValues(event.Topic, "sent").Inc()
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the event will be published again on the next poll
			log.Error("mark outbox event sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
	}

	log.Info("outbox batch relayed", zap.Int("count", len(events)), zap.Int("sent", sent))
	return len(events), nil
}
