package consumer

import (
	"context"
	"encoding/json"

	"globalven/internal/audit"
	"globalven/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeTransferLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.transfer_lifecycle")
	log.Info("transfer lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("transfer lifecycle consumer stopped")
				return
			}
			log.Error("fetch transfer lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.TransferLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode transfer lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := auditService.Record(ctx, event); err != nil {
			log.Error("record transfer lifecycle event failed",
				zap.Int64("transfer_id", event.TransferID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit transfer lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("transfer lifecycle event recorded",
			zap.Int64("transfer_id", event.TransferID),
			zap.String("event_type", event.EventType),
		)
	}
}
