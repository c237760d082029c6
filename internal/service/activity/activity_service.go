package activity

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type ActivityUseCase interface {
	Record(ctx context.Context, event domain.BookingEvent) error
	Recent(ctx context.Context, limit int) ([]domain.BookingEvent, error)
}

// ActivityService keeps the admin-facing log of booking lifecycle events.
// Recording is idempotent per event id, so redelivered messages are harmless.
type ActivityService struct {
	events repository.EventRepository
	logger logrus.FieldLogger
}

func NewActivityService(events repository.EventRepository, logger logrus.FieldLogger) *ActivityService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ActivityService{events: events, logger: logger.WithField("component", "activity")}
}

func (s *ActivityService) Record(ctx context.Context, event domain.BookingEvent) error {
	if err := s.events.Append(ctx, event); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"type":       event.Type,
		"booking_id": event.BookingID,
	}).Info("recorded booking event")
	return nil
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.BookingEvent, error) {
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	return s.events.Recent(ctx, limit)
}

var _ ActivityUseCase = (*ActivityService)(nil)
