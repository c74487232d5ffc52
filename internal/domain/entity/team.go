package entity

import "time"

type TeamCategory string

const (
	CategoryMen     TeamCategory = "men"
	CategoryWomen   TeamCategory = "women"
	CategoryBoys    TeamCategory = "boys"
	CategoryGirls   TeamCategory = "girls"
	CategoryMixed   TeamCategory = "mixed"
	CategoryMasters TeamCategory = "masters"
)

type TeamStatistics struct {
	GamesPlayed  int `json:"gamesPlayed"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
}

// Points uses the league scoring of 3 for a win and 1 for a draw.
func (s TeamStatistics) Points() int {
	return s.Wins*3 + s.Draws
}

func (s TeamStatistics) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

func (s TeamStatistics) WinPercentage() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// Record adds one finished game to the statistics.
func (s *TeamStatistics) Record(scored, conceded int) {
	s.GamesPlayed++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Wins++
	case scored < conceded:
		s.Losses++
	default:
		s.Draws++
	}
}

func (s TeamStatistics) ToMap() Document {
	return Document{
		"gamesPlayed":  s.GamesPlayed,
		"wins":         s.Wins,
		"draws":        s.Draws,
		"losses":       s.Losses,
		"goalsFor":     s.GoalsFor,
		"goalsAgainst": s.GoalsAgainst,
	}
}

type Team struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null;index"`
	Category     TeamCategory   `json:"category"`
	Division     string         `json:"division"`
	CoachName    string         `json:"coachName"`
	ManagerName  string         `json:"managerName"`
	CaptainName  string         `json:"captainName"`
	ContactEmail string         `json:"contactEmail"`
	ContactPhone string         `json:"contactPhone"`
	LogoURL      string         `json:"logoUrl"`
	HomeVenue    string         `json:"homeVenue"`
	FoundedYear  int            `json:"foundedYear"`
	PlayerIDs    StringSlice    `json:"playerIds"`
	Statistics   TeamStatistics `json:"statistics" gorm:"embedded;embeddedPrefix:stats_"`
	CreatedBy    string         `json:"createdBy" gorm:"index"`
	IsActive     bool           `json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (t *Team) PlayerCount() int {
	return len(t.PlayerIDs)
}

func (t *Team) HasPlayer(playerID string) bool {
	return t.PlayerIDs.Contains(playerID)
}

func (t *Team) ToMap() Document {
	playerIDs := []string(t.PlayerIDs)
	if playerIDs == nil {
		playerIDs = []string{}
	}
	return Document{
		"id":           t.ID,
		"name":         t.Name,
		"category":     string(t.Category),
		"division":     t.Division,
		"coachName":    t.CoachName,
		"managerName":  t.ManagerName,
		"captainName":  t.CaptainName,
		"contactEmail": t.ContactEmail,
		"contactPhone": t.ContactPhone,
		"logoUrl":      t.LogoURL,
		"homeVenue":    t.HomeVenue,
		"foundedYear":  t.FoundedYear,
		"playerIds":    playerIDs,
		"statistics":   t.Statistics.ToMap(),
		"createdBy":    t.CreatedBy,
		"isActive":     t.IsActive,
		"createdAt":    t.CreatedAt,
		"updatedAt":    t.UpdatedAt,
	}
}

func TeamFromMap(doc Document) (*Team, error) {
	var team Team
	if err := decodeDocument(doc, &team); err != nil {
		return nil, err
	}
	return &team, nil
}
