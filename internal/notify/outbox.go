package notify

import (
	"context"
	"time"

	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const drainBatchSize = 50

// OutboxWorker drains pending notification intents and sends them through
// the email client. Delivery is at-most-once: a failed send is marked failed
// and logged, never retried. Request handlers only append intents; all
// sending happens here, off the request path.
type OutboxWorker struct {
	db       *gorm.DB
	sender   clients.EmailSender
	interval time.Duration
	logger   *zap.Logger
}

// NewOutboxWorker creates a worker draining on the given interval.
func NewOutboxWorker(db *gorm.DB, sender clients.EmailSender, interval time.Duration, logger *zap.Logger) *OutboxWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &OutboxWorker{
		db:       db,
		sender:   sender,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the drain loop until ctx is cancelled.
func (w *OutboxWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.DrainOnce(ctx); err != nil {
				w.logger.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

// DrainOnce processes one batch of pending intents.
func (w *OutboxWorker) DrainOnce(ctx context.Context) error {
	var intents []models.NotificationIntent
	err := w.db.Where("status = ?", models.IntentPending).
		Order("created_at ASC").
		Limit(drainBatchSize).
		Find(&intents).Error
	if err != nil {
		return err
	}

	for i := range intents {
		intent := &intents[i]

		// Claim before sending so a crash cannot double-send.
		now := time.Now().UTC()
		claim := w.db.Model(&models.NotificationIntent{}).
			Where("id = ? AND status = ?", intent.ID, models.IntentPending).
			Updates(map[string]interface{}{"status": models.IntentSent, "attempted_at": now})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			continue
		}

		if w.sender.Send(ctx, intent.Recipient, intent.Subject, intent.HTMLBody, intent.TextBody) {
			w.logger.Info("notification sent",
				zap.String("intent_id", intent.ID),
				zap.String("provider_role", intent.ProviderRole),
			)
			continue
		}

		w.logger.Warn("notification delivery failed",
			zap.String("intent_id", intent.ID),
			zap.String("provider_role", intent.ProviderRole),
		)
		if err := w.db.Model(&models.NotificationIntent{}).
			Where("id = ?", intent.ID).
			Update("status", models.IntentFailed).Error; err != nil {
			return err
		}
	}

	return nil
}
