package cache

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

type TeamStorage struct {
	db *gorm.DB
}

func NewTeamStorage(db *gorm.DB) *TeamStorage {
	return &TeamStorage{
		db: db,
	}
}

func (s *TeamStorage) Upsert(ctx context.Context, team *entity.Team) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(team).Error
}

func (s *TeamStorage) UpsertMany(ctx context.Context, teams []entity.Team) error {
	if len(teams) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&teams).Error
}

func (s *TeamStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Team{}).Error
}

func (s *TeamStorage) Get(ctx context.Context, id string) (*entity.Team, error) {
	var team entity.Team
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if err != nil {
		return nil, notFound(err, "team", id)
	}
	return &team, nil
}

func (s *TeamStorage) GetAll(ctx context.Context) ([]entity.Team, error) {
	var teams []entity.Team
	err := s.db.WithContext(ctx).Order("name").Find(&teams).Error
	return teams, err
}

// GetByCreator returns the teams registered by the given user.
func (s *TeamStorage) GetByCreator(ctx context.Context, userID string) ([]entity.Team, error) {
	var teams []entity.Team
	err := s.db.WithContext(ctx).Where("created_by = ?", userID).Order("name").Find(&teams).Error
	return teams, err
}

func (s *TeamStorage) Search(ctx context.Context, query string) ([]entity.Team, error) {
	var teams []entity.Team
	pattern := likePattern(query)
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(division) LIKE ? OR LOWER(coach_name) LIKE ?", pattern, pattern, pattern).
		Order("name").
		Find(&teams).Error
	return teams, err
}

func (s *TeamStorage) GetByCategory(ctx context.Context, category entity.TeamCategory) ([]entity.Team, error) {
	var teams []entity.Team
	err := s.db.WithContext(ctx).Where("category = ?", category).Order("name").Find(&teams).Error
	return teams, err
}

// ListItems returns active teams with the number of active cached players in each.
func (s *TeamStorage) ListItems(ctx context.Context) ([]dto.TeamListItem, error) {
	var items []dto.TeamListItem
	err := s.db.WithContext(ctx).
		Table("teams").
		Select("teams.id, teams.name, teams.category, teams.division, teams.coach_name, COUNT(players.id) AS player_count").
		Joins("LEFT JOIN players ON players.team_id = teams.id AND players.is_active = ?", true).
		Where("teams.is_active = ?", true).
		Group("teams.id, teams.name, teams.category, teams.division, teams.coach_name").
		Order("teams.name").
		Scan(&items).Error
	return items, err
}

func (s *TeamStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Team{}).Count(&count).Error
	return count, err
}
