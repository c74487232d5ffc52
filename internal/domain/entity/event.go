package entity

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventTournament EventType = "tournament"
	EventLeague     EventType = "league"
	EventTraining   EventType = "training"
	EventSocial     EventType = "social"
	EventWorkshop   EventType = "workshop"
)

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// EventRegistration records one team entering an event.
type EventRegistration struct {
	ID           string             `json:"id" gorm:"primaryKey"`
	EventID      string             `json:"eventId" gorm:"index;not null"`
	TeamID       string             `json:"teamId" gorm:"index"`
	TeamName     string             `json:"teamName"`
	RegisteredBy string             `json:"registeredBy"`
	RegisteredAt time.Time          `json:"registeredAt"`
	Status       RegistrationStatus `json:"status"`
	Notes        string             `json:"notes"`
}

func (r EventRegistration) ToMap() Document {
	return Document{
		"id":           r.ID,
		"eventId":      r.EventID,
		"teamId":       r.TeamID,
		"teamName":     r.TeamName,
		"registeredBy": r.RegisteredBy,
		"registeredAt": r.RegisteredAt,
		"status":       string(r.Status),
		"notes":        r.Notes,
	}
}

type Event struct {
	ID                   string              `json:"id" gorm:"primaryKey"`
	Title                string              `json:"title" gorm:"not null"`
	Description          string              `json:"description"`
	Type                 EventType           `json:"type"`
	Status               EventStatus         `json:"status"`
	StartDate            time.Time           `json:"startDate" gorm:"index"`
	EndDate              time.Time           `json:"endDate"`
	RegistrationDeadline time.Time           `json:"registrationDeadline"`
	Location             string              `json:"location"`
	Venue                string              `json:"venue"`
	MaxTeams             int                 `json:"maxTeams"`
	EntryFee             float64             `json:"entryFee"`
	ImageURL             string              `json:"imageUrl"`
	CreatedBy            string              `json:"createdBy" gorm:"index"`
	RegisteredTeams      StringSlice         `json:"registeredTeams"`
	Registrations        []EventRegistration `json:"registrations" gorm:"foreignKey:EventID"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// IsRegistrationOpen reports whether teams may still enter at now.
// A zero deadline falls back to the start date.
func (e *Event) IsRegistrationOpen(now time.Time) bool {
	if e.Status == EventCancelled || e.Status == EventCompleted {
		return false
	}
	deadline := e.RegistrationDeadline
	if deadline.IsZero() {
		deadline = e.StartDate
	}
	return deadline.IsZero() || now.Before(deadline)
}

// IsFull is always false when MaxTeams is not set.
func (e *Event) IsFull() bool {
	return e.MaxTeams > 0 && len(e.RegisteredTeams) >= e.MaxTeams
}

// SpotsLeft returns -1 for events without a team limit.
func (e *Event) SpotsLeft() int {
	if e.MaxTeams <= 0 {
		return -1
	}
	return max(e.MaxTeams-len(e.RegisteredTeams), 0)
}

func (e *Event) IsTeamRegistered(teamID string) bool {
	return e.RegisteredTeams.Contains(teamID)
}

// IsOver checks if the event has started, shifted by additionalTime.
func (e *Event) IsOver(now time.Time, additionalTime time.Duration) bool {
	return e.StartDate.Before(now.Add(-additionalTime))
}

// Link generates a shareable link to the event in the format https://<host>/events/<eventID>.
func (e *Event) Link(host string) string {
	return fmt.Sprintf("https://%s/events/%s", host, e.ID)
}

func (e *Event) ToMap() Document {
	registeredTeams := []string(e.RegisteredTeams)
	if registeredTeams == nil {
		registeredTeams = []string{}
	}
	registrations := make([]Document, 0, len(e.Registrations))
	for _, r := range e.Registrations {
		registrations = append(registrations, r.ToMap())
	}
	return Document{
		"id":                   e.ID,
		"title":                e.Title,
		"description":          e.Description,
		"type":                 string(e.Type),
		"status":               string(e.Status),
		"startDate":            e.StartDate,
		"endDate":              e.EndDate,
		"registrationDeadline": e.RegistrationDeadline,
		"location":             e.Location,
		"venue":                e.Venue,
		"maxTeams":             e.MaxTeams,
		"entryFee":             e.EntryFee,
		"imageUrl":             e.ImageURL,
		"createdBy":            e.CreatedBy,
		"registeredTeams":      registeredTeams,
		"registrations":        registrations,
		"createdAt":            e.CreatedAt,
		"updatedAt":            e.UpdatedAt,
	}
}

func EventFromMap(doc Document) (*Event, error) {
	var event Event
	if err := decodeDocument(doc, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
