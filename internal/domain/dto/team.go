package dto

import "github.com/nhu-hockey/nhu-app/internal/domain/entity"

type TeamListItem struct {
	ID          string
	Name        string
	Category    entity.TeamCategory
	Division    string
	CoachName   string
	PlayerCount int
}
