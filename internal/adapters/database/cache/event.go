package cache

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Upsert inserts the event row or replaces it when the id already exists.
// Registrations are not touched, see UpsertWithRegistrations.
func (s *EventStorage) Upsert(ctx context.Context, event *entity.Event) error {
	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(event).Error
}

func (s *EventStorage) UpsertMany(ctx context.Context, events []entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range events {
			if err := upsertEventTx(tx, &events[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertWithRegistrations writes the event row and replaces its registration rows in one transaction.
func (s *EventStorage) UpsertWithRegistrations(ctx context.Context, event *entity.Event) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertEventTx(tx, event)
	})
}

func upsertEventTx(tx *gorm.DB, event *entity.Event) error {
	err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{UpdateAll: true}).Create(event).Error
	if err != nil {
		return err
	}
	err = tx.Where("event_id = ?", event.ID).Delete(&entity.EventRegistration{}).Error
	if err != nil {
		return err
	}
	if len(event.Registrations) == 0 {
		return nil
	}
	for i := range event.Registrations {
		event.Registrations[i].EventID = event.ID
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&event.Registrations).Error
}

// Delete removes the event together with its registration rows.
func (s *EventStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&entity.EventRegistration{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Event{}).Error
	})
}

// Get is a function that gets an event from the cache by id.
func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Preload("Registrations").Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, notFound(err, "event", id)
	}
	return &event, nil
}

func (s *EventStorage) GetAll(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Preload("Registrations").Order("start_date").Find(&events).Error
	return events, err
}

// GetByCreator returns the events created by the given user.
func (s *EventStorage) GetByCreator(ctx context.Context, userID string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Where("created_by = ?", userID).Order("start_date").Find(&events).Error
	return events, err
}

// GetByTeam returns the events the team holds a registration for.
func (s *EventStorage) GetByTeam(ctx context.Context, teamID string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("id IN (?)", s.db.Model(&entity.EventRegistration{}).Select("event_id").Where("team_id = ?", teamID)).
		Order("start_date").
		Find(&events).Error
	return events, err
}

func (s *EventStorage) Search(ctx context.Context, query string) ([]entity.Event, error) {
	var events []entity.Event
	pattern := likePattern(query)
	err := s.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern, pattern).
		Order("start_date").
		Find(&events).Error
	return events, err
}

// GetByDateRange returns events starting within [from, to].
func (s *EventStorage) GetByDateRange(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("start_date >= ? AND start_date <= ?", from.UTC(), to.UTC()).
		Order("start_date").
		Find(&events).Error
	return events, err
}

// GetUpcoming returns events that have not started at now and start before the given time.
func (s *EventStorage) GetUpcoming(ctx context.Context, now, before time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("start_date > ? AND start_date <= ? AND status <> ?", now.UTC(), before.UTC(), entity.EventCancelled).
		Order("start_date").
		Find(&events).Error
	return events, err
}

func (s *EventStorage) ListItems(ctx context.Context) ([]dto.EventListItem, error) {
	var items []dto.EventListItem
	err := s.db.WithContext(ctx).
		Table("events").
		Select("events.id, events.title, events.type, events.status, events.location, events.start_date, events.end_date, events.max_teams, " +
			"(SELECT COUNT(*) FROM event_registrations WHERE event_registrations.event_id = events.id) AS registered_count").
		Order("events.start_date").
		Scan(&items).Error
	return items, err
}

// Count is a function that gets the count of cached events.
func (s *EventStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Event{}).Count(&count).Error
	return count, err
}
