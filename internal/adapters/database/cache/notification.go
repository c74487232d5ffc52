package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

func (s *NotificationStorage) Create(ctx context.Context, notification *entity.EventNotification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(notification).Error
}

// GetUnnotifiedTeams returns the registrations of an event whose team has not yet
// received a reminder of the given type.
func (s *NotificationStorage) GetUnnotifiedTeams(ctx context.Context, eventID string, notificationType entity.NotificationType) ([]entity.EventRegistration, error) {
	var registrations []entity.EventRegistration

	err := s.db.WithContext(ctx).
		Joins("LEFT JOIN event_notifications ON event_notifications.team_id = event_registrations.team_id AND event_notifications.event_id = event_registrations.event_id AND event_notifications.type = ?", notificationType).
		Where("event_registrations.event_id = ? AND event_registrations.status <> ? AND event_notifications.id IS NULL", eventID, entity.RegistrationCancelled).
		Find(&registrations).Error

	return registrations, err
}
