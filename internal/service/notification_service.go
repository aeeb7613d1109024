package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/campusflow/disruption-service/internal/config"
	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/events"
	"github.com/campusflow/disruption-service/internal/repository"
)

// NotificationService persists per-student notifications for disruption
// events. Delivery beyond the in-app record is stubbed.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifications repository.NotificationRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher:    dispatcher,
		notifications: notifications,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to disruption events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventDisruptionCreated, n.handleDisruptionEvent)
	n.dispatcher.Subscribe(events.EventDisruptionResolved, n.handleDisruptionEvent)
}

// ListForUser returns a user's notifications, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return n.notifications.ListByUser(ctx, userID)
}

func (n *NotificationService) handleDisruptionEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("disruption event",
		zap.String("type", string(event.Type)),
		zap.String("disruption_id", event.DisruptionID),
	)

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	notification := &domain.Notification{
		UserID:       event.StudentID,
		DisruptionID: event.DisruptionID,
		Channel:      domain.NotificationChannelInApp,
		Payload:      string(payload),
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to persist notification", zap.Error(err))
		return err
	}

	n.sendEmailStub(event)
	return nil
}

func (n *NotificationService) sendEmailStub(event events.Event) {
	if n.cfg.EmailFrom == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("disruption_id", event.DisruptionID),
		zap.String("event_type", string(event.Type)))
}
