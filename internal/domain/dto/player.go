package dto

import "github.com/nhu-hockey/nhu-app/internal/domain/entity"

// PlayerListItem flattens a player with the name of the team they play for.
type PlayerListItem struct {
	ID           string
	FirstName    string
	LastName     string
	Position     entity.Position
	JerseyNumber int
	TeamID       string
	TeamName     string
}

func (p PlayerListItem) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
