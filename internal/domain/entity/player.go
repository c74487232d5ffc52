package entity

import (
	"strings"
	"time"
)

type Position string

const (
	Goalkeeper Position = "goalkeeper"
	Defender   Position = "defender"
	Midfielder Position = "midfielder"
	Forward    Position = "forward"
)

func (p Position) Valid() bool {
	switch p {
	case Goalkeeper, Defender, Midfielder, Forward:
		return true
	}
	return false
}

// PlayerStats are the running season totals of a player.
type PlayerStats struct {
	GamesPlayed   int `json:"gamesPlayed"`
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	GreenCards    int `json:"greenCards"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
	MinutesPlayed int `json:"minutesPlayed"`
}

func (s PlayerStats) ToMap() Document {
	return Document{
		"gamesPlayed":   s.GamesPlayed,
		"goals":         s.Goals,
		"assists":       s.Assists,
		"greenCards":    s.GreenCards,
		"yellowCards":   s.YellowCards,
		"redCards":      s.RedCards,
		"minutesPlayed": s.MinutesPlayed,
	}
}

// PlayerStatistics are figures derived from PlayerStats.
type PlayerStatistics struct {
	GoalsPerGame       float64 `json:"goalsPerGame"`
	AssistsPerGame     float64 `json:"assistsPerGame"`
	GoalContributions  int     `json:"goalContributions"`
	DisciplinaryPoints int     `json:"disciplinaryPoints"`
}

type Player struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	UserID       string      `json:"userId" gorm:"index"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phoneNumber"`
	DateOfBirth  time.Time   `json:"dateOfBirth"`
	TeamID       string      `json:"teamId" gorm:"index"`
	Position     Position    `json:"position"`
	JerseyNumber int         `json:"jerseyNumber"`
	Nationality  string      `json:"nationality"`
	Stats        PlayerStats `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (p *Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Player) Age(now time.Time) int {
	return ageAt(p.DateOfBirth, now)
}

// Statistics derives per-game figures. Cards weigh 1, 2 and 5 points by colour.
func (p *Player) Statistics() PlayerStatistics {
	s := p.Stats
	stats := PlayerStatistics{
		GoalContributions:  s.Goals + s.Assists,
		DisciplinaryPoints: s.GreenCards + s.YellowCards*2 + s.RedCards*5,
	}
	if s.GamesPlayed > 0 {
		stats.GoalsPerGame = float64(s.Goals) / float64(s.GamesPlayed)
		stats.AssistsPerGame = float64(s.Assists) / float64(s.GamesPlayed)
	}
	return stats
}

func (p *Player) ToMap() Document {
	return Document{
		"id":           p.ID,
		"userId":       p.UserID,
		"firstName":    p.FirstName,
		"lastName":     p.LastName,
		"email":        p.Email,
		"phoneNumber":  p.PhoneNumber,
		"dateOfBirth":  p.DateOfBirth,
		"teamId":       p.TeamID,
		"position":     string(p.Position),
		"jerseyNumber": p.JerseyNumber,
		"nationality":  p.Nationality,
		"stats":        p.Stats.ToMap(),
		"isActive":     p.IsActive,
		"createdAt":    p.CreatedAt,
		"updatedAt":    p.UpdatedAt,
	}
}

func PlayerFromMap(doc Document) (*Player, error) {
	var player Player
	if err := decodeDocument(doc, &player); err != nil {
		return nil, err
	}
	return &player, nil
}
