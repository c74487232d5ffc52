package dto

import (
	"time"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

// Event is an event as seen by one team: IsRegistered tells whether that team entered it.
type Event struct {
	ID                   string
	Title                string
	Type                 entity.EventType
	Status               entity.EventStatus
	Location             string
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline time.Time
	MaxTeams             int
	RegisteredCount      int
	IsRegistered         bool
}

func NewEventFromEntity(event entity.Event, teamID string) Event {
	return Event{
		ID:                   event.ID,
		Title:                event.Title,
		Type:                 event.Type,
		Status:               event.Status,
		Location:             event.Location,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		RegistrationDeadline: event.RegistrationDeadline,
		MaxTeams:             event.MaxTeams,
		RegisteredCount:      len(event.RegisteredTeams),
		IsRegistered:         event.IsTeamRegistered(teamID),
	}
}

// EventListItem is one row of the cached event list.
type EventListItem struct {
	ID              string
	Title           string
	Type            entity.EventType
	Status          entity.EventStatus
	Location        string
	StartDate       time.Time
	EndDate         time.Time
	MaxTeams        int
	RegisteredCount int
}
