package entity

import (
	"time"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
)

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
	MatchPostponed MatchStatus = "postponed"
	MatchCancelled MatchStatus = "cancelled"
)

type MatchStats struct {
	HomePossession int `json:"homePossession"`
	AwayPossession int `json:"awayPossession"`
	HomeShots      int `json:"homeShots"`
	AwayShots      int `json:"awayShots"`
	HomeCorners    int `json:"homeCorners"`
	AwayCorners    int `json:"awayCorners"`
	HomeCards      int `json:"homeCards"`
	AwayCards      int `json:"awayCards"`
}

func (s MatchStats) ToMap() Document {
	return Document{
		"homePossession": s.HomePossession,
		"awayPossession": s.AwayPossession,
		"homeShots":      s.HomeShots,
		"awayShots":      s.AwayShots,
		"homeCorners":    s.HomeCorners,
		"awayCorners":    s.AwayCorners,
		"homeCards":      s.HomeCards,
		"awayCards":      s.AwayCards,
	}
}

type GoalScorer struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	TeamID     string `json:"teamId"`
	Minute     int    `json:"minute"`
}

func (g GoalScorer) ToMap() Document {
	return Document{
		"playerId":   g.PlayerID,
		"playerName": g.PlayerName,
		"teamId":     g.TeamID,
		"minute":     g.Minute,
	}
}

func scorersToMaps(scorers []GoalScorer) []Document {
	out := make([]Document, 0, len(scorers))
	for _, s := range scorers {
		out = append(out, s.ToMap())
	}
	return out
}

type Match struct {
	ID           string               `json:"id" gorm:"primaryKey"`
	EventID      string               `json:"eventId" gorm:"index"`
	HomeTeamID   string               `json:"homeTeamId"`
	HomeTeamName string               `json:"homeTeamName"`
	AwayTeamID   string               `json:"awayTeamId"`
	AwayTeamName string               `json:"awayTeamName"`
	ScheduledAt  time.Time            `json:"scheduledAt"`
	Venue        string               `json:"venue"`
	Status       MatchStatus          `json:"status"`
	HomeScore    int                  `json:"homeScore"`
	AwayScore    int                  `json:"awayScore"`
	Stats        MatchStats           `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	Scorers      JSONList[GoalScorer] `json:"scorers"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func (m *Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

func (m *Match) ToMap() Document {
	return Document{
		"id":           m.ID,
		"eventId":      m.EventID,
		"homeTeamId":   m.HomeTeamID,
		"homeTeamName": m.HomeTeamName,
		"awayTeamId":   m.AwayTeamID,
		"awayTeamName": m.AwayTeamName,
		"scheduledAt":  m.ScheduledAt,
		"venue":        m.Venue,
		"status":       string(m.Status),
		"homeScore":    m.HomeScore,
		"awayScore":    m.AwayScore,
		"stats":        m.Stats.ToMap(),
		"scorers":      scorersToMaps(m.Scorers),
		"createdAt":    m.CreatedAt,
		"updatedAt":    m.UpdatedAt,
	}
}

func MatchFromMap(doc Document) (*Match, error) {
	var match Match
	if err := decodeDocument(doc, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

type GameEventType string

const (
	GameEventGoal       GameEventType = "goal"
	GameEventGreenCard  GameEventType = "green_card"
	GameEventYellowCard GameEventType = "yellow_card"
	GameEventRedCard    GameEventType = "red_card"
)

func (t GameEventType) IsCard() bool {
	return t == GameEventGreenCard || t == GameEventYellowCard || t == GameEventRedCard
}

type GameEvent struct {
	Type     GameEventType `json:"type"`
	TeamID   string        `json:"teamId"`
	PlayerID string        `json:"playerId"`
	Minute   int           `json:"minute"`
}

// Periods is the number of quarters in a hockey game.
const Periods = 4

// LiveGame tracks the score of a match while it is played. It is filled in by hand.
type LiveGame struct {
	MatchID        string      `json:"matchId"`
	HomeTeamID     string      `json:"homeTeamId"`
	AwayTeamID     string      `json:"awayTeamId"`
	Period         int         `json:"period"`
	ElapsedMinutes int         `json:"elapsedMinutes"`
	HomeScore      int         `json:"homeScore"`
	AwayScore      int         `json:"awayScore"`
	Events         []GameEvent `json:"events"`
	IsLive         bool        `json:"isLive"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func NewLiveGame(match *Match, now time.Time) *LiveGame {
	return &LiveGame{
		MatchID:    match.ID,
		HomeTeamID: match.HomeTeamID,
		AwayTeamID: match.AwayTeamID,
		Period:     1,
		IsLive:     true,
		UpdatedAt:  now,
	}
}

func (g *LiveGame) side(teamID string) (home bool, err error) {
	switch teamID {
	case g.HomeTeamID:
		return true, nil
	case g.AwayTeamID:
		return false, nil
	}
	return false, errorz.ErrTeamNotInMatch
}

func (g *LiveGame) RecordGoal(teamID, playerID string, minute int, now time.Time) error {
	if !g.IsLive {
		return errorz.ErrMatchNotLive
	}
	home, err := g.side(teamID)
	if err != nil {
		return err
	}
	if home {
		g.HomeScore++
	} else {
		g.AwayScore++
	}
	g.Events = append(g.Events, GameEvent{Type: GameEventGoal, TeamID: teamID, PlayerID: playerID, Minute: minute})
	g.ElapsedMinutes = max(g.ElapsedMinutes, minute)
	g.UpdatedAt = now
	return nil
}

func (g *LiveGame) RecordCard(card GameEventType, teamID, playerID string, minute int, now time.Time) error {
	if !g.IsLive {
		return errorz.ErrMatchNotLive
	}
	if !card.IsCard() {
		return errorz.ErrInvalidInput
	}
	if _, err := g.side(teamID); err != nil {
		return err
	}
	g.Events = append(g.Events, GameEvent{Type: card, TeamID: teamID, PlayerID: playerID, Minute: minute})
	g.ElapsedMinutes = max(g.ElapsedMinutes, minute)
	g.UpdatedAt = now
	return nil
}

func (g *LiveGame) NextPeriod(now time.Time) error {
	if !g.IsLive {
		return errorz.ErrMatchNotLive
	}
	if g.Period >= Periods {
		return errorz.ErrInvalidState
	}
	g.Period++
	g.UpdatedAt = now
	return nil
}

// Finish stops the game and returns its result.
func (g *LiveGame) Finish(now time.Time) (*GameResult, error) {
	if !g.IsLive {
		return nil, errorz.ErrMatchNotLive
	}
	g.IsLive = false
	g.UpdatedAt = now

	result := &GameResult{
		MatchID:     g.MatchID,
		HomeTeamID:  g.HomeTeamID,
		AwayTeamID:  g.AwayTeamID,
		HomeScore:   g.HomeScore,
		AwayScore:   g.AwayScore,
		CompletedAt: now,
	}
	switch {
	case g.HomeScore > g.AwayScore:
		result.WinnerTeamID = g.HomeTeamID
	case g.AwayScore > g.HomeScore:
		result.WinnerTeamID = g.AwayTeamID
	}
	for _, e := range g.Events {
		if e.Type == GameEventGoal {
			result.Scorers = append(result.Scorers, GoalScorer{PlayerID: e.PlayerID, TeamID: e.TeamID, Minute: e.Minute})
		}
	}
	return result, nil
}

func (g *LiveGame) ToMap() Document {
	events := make([]Document, 0, len(g.Events))
	for _, e := range g.Events {
		events = append(events, Document{
			"type":     string(e.Type),
			"teamId":   e.TeamID,
			"playerId": e.PlayerID,
			"minute":   e.Minute,
		})
	}
	return Document{
		"matchId":        g.MatchID,
		"homeTeamId":     g.HomeTeamID,
		"awayTeamId":     g.AwayTeamID,
		"period":         g.Period,
		"elapsedMinutes": g.ElapsedMinutes,
		"homeScore":      g.HomeScore,
		"awayScore":      g.AwayScore,
		"events":         events,
		"isLive":         g.IsLive,
		"updatedAt":      g.UpdatedAt,
	}
}

func LiveGameFromMap(doc Document) (*LiveGame, error) {
	var game LiveGame
	if err := decodeDocument(doc, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

type GameResult struct {
	MatchID      string       `json:"matchId"`
	HomeTeamID   string       `json:"homeTeamId"`
	AwayTeamID   string       `json:"awayTeamId"`
	HomeScore    int          `json:"homeScore"`
	AwayScore    int          `json:"awayScore"`
	WinnerTeamID string       `json:"winnerTeamId"`
	Scorers      []GoalScorer `json:"scorers"`
	CompletedAt  time.Time    `json:"completedAt"`
}

func (r *GameResult) IsDraw() bool {
	return r.WinnerTeamID == ""
}

func (r *GameResult) ToMap() Document {
	return Document{
		"matchId":      r.MatchID,
		"homeTeamId":   r.HomeTeamID,
		"awayTeamId":   r.AwayTeamID,
		"homeScore":    r.HomeScore,
		"awayScore":    r.AwayScore,
		"winnerTeamId": r.WinnerTeamID,
		"scorers":      scorersToMaps(r.Scorers),
		"completedAt":  r.CompletedAt,
	}
}

func GameResultFromMap(doc Document) (*GameResult, error) {
	var result GameResult
	if err := decodeDocument(doc, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
