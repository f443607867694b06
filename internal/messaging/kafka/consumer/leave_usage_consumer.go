package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-ems/internal/events"
	"go-ems/internal/leavebalance"
	leavebalanceerrors "go-ems/internal/leavebalance/errors"
	"go-ems/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveUsage applies usage events to the ledger. Messages that can never
// apply are committed and skipped; transient failures are retried with backoff
// before the next message is fetched.
func ConsumeLeaveUsage(
	ctx context.Context,
	reader MessageReader,
	ledger leavebalance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_usage")
	log.Info("leave usage consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave usage consumer stopped")
				return
			}
			log.Error("fetch leave usage message failed", zap.Error(err))
			continue
		}

		handleLeaveUsage(ctx, reader, ledger, log, msg)
	}
}

func handleLeaveUsage(
	ctx context.Context,
	reader MessageReader,
	ledger leavebalance.Service,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.LeaveUsageRecordedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave usage event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		commit(ctx, reader, log, msg)
		return
	}

	req := leavebalance.RecordUsageRequest{
		EventID:         event.EventID,
		EmployeeID:      event.EmployeeID,
		Month:           event.Month,
		Year:            event.Year,
		PaidLeaveUsed:   event.PaidLeaveUsed,
		UnpaidLeaveUsed: event.UnpaidLeaveUsed,
	}
	log = log.With(zap.String("event_id", event.EventID), zap.String("employee_id", event.EmployeeID))

	// Transient failures are retried in place: committing a later offset
	// would otherwise skip this message for good.
	for attempt := 0; ; attempt++ {
		_, err := ledger.RecordMonthlyUsage(ctx, req)
		switch {
		case err == nil:
			commit(ctx, reader, log, msg)
			log.Info("leave usage applied",
				zap.String("month", event.Month),
				zap.Int("year", event.Year),
			)
			return
		case errors.Is(err, leavebalanceerrors.ErrDuplicateUsageEvent):
			log.Warn("leave usage event already applied, skipping")
			commit(ctx, reader, log, msg)
			return
		case apperror.Is(err, apperror.CodeInvalidInput), apperror.Is(err, apperror.CodeNotFound):
			log.Error("leave usage event rejected", zap.Error(err))
			commit(ctx, reader, log, msg)
			return
		}

		delay := retryBackoff(attempt)
		log.Error("apply leave usage failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Warn("leave usage left uncommitted on shutdown")
			return
		case <-timer.C:
		}
	}
}

var (
	retryBaseBackoff = 500 * time.Millisecond
	retryMaxBackoff  = 30 * time.Second
)

// retryBackoff doubles from retryBaseBackoff and caps at retryMaxBackoff.
func retryBackoff(attempt int) time.Duration {
	delay := retryBaseBackoff
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= retryMaxBackoff {
			return retryMaxBackoff
		}
	}
	return delay
}

func commit(ctx context.Context, reader MessageReader, log *zap.Logger, msg kafkago.Message) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave usage message failed", zap.Error(err))
	}
}
