package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/calendar"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type EventCache interface {
	Upsert(ctx context.Context, event *entity.Event) error
	UpsertMany(ctx context.Context, events []entity.Event) error
	UpsertWithRegistrations(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]entity.Event, error)
	ListItems(ctx context.Context) ([]dto.EventListItem, error)
}

type eventNotifier interface {
	NotifyEvent(ctx context.Context, event *entity.Event) error
}

type EventService struct {
	logger *types.Logger

	documents DocumentStore
	cache     EventCache
	notifier  eventNotifier
	clock     clockwork.Clock
}

func NewEventService(
	logger *types.Logger,
	documents DocumentStore,
	cache EventCache,
	notifier eventNotifier,
	clock clockwork.Clock,
) *EventService {
	return &EventService{
		logger:    logger,
		documents: documents,
		cache:     cache,
		notifier:  notifier,
		clock:     clock,
	}
}

// GetAll returns every event ordered by start date and refreshes the local cache.
func (s *EventService) GetAll(ctx context.Context) ([]entity.Event, error) {
	events, err := getAllDocuments(ctx, s.documents, eventsCollection, entity.EventFromMap)
	if err != nil {
		return nil, err
	}
	sortBy(events, func(a, b entity.Event) bool { return a.StartDate.Before(b.StartDate) })

	if err = s.cache.UpsertMany(ctx, events); err != nil {
		s.logger.Warnf("failed to cache events: %v", err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	event, err := getDocument(ctx, s.documents, eventsCollection, id, entity.EventFromMap)
	if err != nil {
		return nil, err
	}
	s.cacheEvent(ctx, event)
	return event, nil
}

func (s *EventService) Create(ctx context.Context, event entity.Event) (*entity.Event, error) {
	now := s.clock.Now().UTC()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = entity.EventUpcoming
	}
	if event.RegisteredTeams == nil {
		event.RegisteredTeams = entity.StringSlice{}
	}
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := setDocument(ctx, s.documents, eventsCollection, event.ID, event.ToMap()); err != nil {
		return nil, err
	}
	s.cacheEvent(ctx, &event)

	s.logger.Infof("Event created (event_id=%s, title=%s)", event.ID, event.Title)
	if s.notifier != nil {
		if err := s.notifier.NotifyEvent(ctx, &event); err != nil {
			s.logger.Errorf("failed to notify about event %s: %v", event.ID, err)
		}
	}
	return &event, nil
}

func (s *EventService) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	exists, err := s.documents.Exists(ctx, eventsCollection, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event %s: %w", event.ID, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to update event %s: %w", event.ID, errorz.ErrNotFound)
	}

	event.UpdatedAt = s.clock.Now().UTC()
	if err = setDocument(ctx, s.documents, eventsCollection, event.ID, event.ToMap()); err != nil {
		return nil, err
	}
	s.cacheEvent(ctx, event)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := deleteDocument(ctx, s.documents, eventsCollection, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warnf("failed to remove event %s from cache: %v", id, err)
	}
	s.logger.Infof("Event deleted (event_id=%s)", id)
	return nil
}

// RegisterForEvent enters team into the event on behalf of userID.
func (s *EventService) RegisterForEvent(ctx context.Context, eventID string, team *entity.Team, userID string) (*entity.Event, error) {
	if team == nil || team.ID == "" {
		return nil, fmt.Errorf("%w: no team selected", errorz.ErrInvalidInput)
	}
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	switch {
	case !event.IsRegistrationOpen(now):
		return nil, errorz.ErrRegistrationClosed
	case event.IsTeamRegistered(team.ID):
		return nil, errorz.ErrAlreadyRegistered
	case event.IsFull():
		return nil, errorz.ErrEventFull
	}

	event.RegisteredTeams = append(event.RegisteredTeams, team.ID)
	event.Registrations = append(event.Registrations, entity.EventRegistration{
		ID:           uuid.NewString(),
		EventID:      event.ID,
		TeamID:       team.ID,
		TeamName:     team.Name,
		RegisteredBy: userID,
		RegisteredAt: now,
		Status:       entity.RegistrationConfirmed,
	})
	event.UpdatedAt = now

	if err = setDocument(ctx, s.documents, eventsCollection, event.ID, event.ToMap()); err != nil {
		return nil, err
	}
	s.cacheEvent(ctx, event)

	s.logger.Infof("Team registered for event (event_id=%s, team_id=%s, user_id=%s)", event.ID, team.ID, userID)
	return event, nil
}

func (s *EventService) UnregisterFromEvent(ctx context.Context, eventID, teamID string) (*entity.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsTeamRegistered(teamID) {
		return nil, errorz.ErrNotRegistered
	}

	event.RegisteredTeams = event.RegisteredTeams.Without(teamID)
	event.Registrations = filter(event.Registrations, func(r entity.EventRegistration) bool {
		return r.TeamID != teamID
	})
	event.UpdatedAt = s.clock.Now().UTC()

	if err = setDocument(ctx, s.documents, eventsCollection, event.ID, event.ToMap()); err != nil {
		return nil, err
	}
	s.cacheEvent(ctx, event)

	s.logger.Infof("Team unregistered from event (event_id=%s, team_id=%s)", event.ID, teamID)
	return event, nil
}

// GetRegisteredEvents returns the events teamID is entered in.
func (s *EventService) GetRegisteredEvents(ctx context.Context, teamID string) ([]entity.Event, error) {
	events, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(events, func(e entity.Event) bool { return e.IsTeamRegistered(teamID) }), nil
}

func (s *EventService) Search(ctx context.Context, query string) ([]entity.Event, error) {
	events, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(events, func(e entity.Event) bool {
		return containsFold(query, e.Title, e.Description, e.Location, e.Venue)
	}), nil
}

// GetByDateRange returns events starting within [from, to].
func (s *EventService) GetByDateRange(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	events, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(events, func(e entity.Event) bool {
		return !e.StartDate.Before(from) && !e.StartDate.After(to)
	}), nil
}

// GetCached reads the events last stored in the local cache without contacting the remote store.
func (s *EventService) GetCached(ctx context.Context) ([]entity.Event, error) {
	events, err := s.cache.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached events: %w", err)
	}
	return events, nil
}

func (s *EventService) ListItems(ctx context.Context) ([]dto.EventListItem, error) {
	items, err := s.cache.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached events: %w", err)
	}
	return items, nil
}

// ExportCalendar renders the events of teamID, or all events when teamID is empty, as iCalendar.
func (s *EventService) ExportCalendar(ctx context.Context, teamID string) ([]byte, error) {
	var (
		events []entity.Event
		err    error
	)
	if teamID == "" {
		events, err = s.GetAll(ctx)
	} else {
		events, err = s.GetRegisteredEvents(ctx, teamID)
	}
	if err != nil {
		return nil, err
	}
	return calendar.ExportEventsToICS(events, s.clock.Now())
}

func (s *EventService) cacheEvent(ctx context.Context, event *entity.Event) {
	if err := s.cache.UpsertWithRegistrations(ctx, event); err != nil {
		s.logger.Warnf("failed to cache event %s: %v", event.ID, err)
	}
}
