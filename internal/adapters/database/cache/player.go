package cache

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

type PlayerStorage struct {
	db *gorm.DB
}

func NewPlayerStorage(db *gorm.DB) *PlayerStorage {
	return &PlayerStorage{
		db: db,
	}
}

func (s *PlayerStorage) Upsert(ctx context.Context, player *entity.Player) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(player).Error
}

func (s *PlayerStorage) UpsertMany(ctx context.Context, players []entity.Player) error {
	if len(players) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&players).Error
}

func (s *PlayerStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Player{}).Error
}

func (s *PlayerStorage) Get(ctx context.Context, id string) (*entity.Player, error) {
	var player entity.Player
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&player).Error
	if err != nil {
		return nil, notFound(err, "player", id)
	}
	return &player, nil
}

func (s *PlayerStorage) GetAll(ctx context.Context) ([]entity.Player, error) {
	var players []entity.Player
	err := s.db.WithContext(ctx).Order("last_name, first_name").Find(&players).Error
	return players, err
}

// GetByUser returns the player profiles owned by the given user account.
func (s *PlayerStorage) GetByUser(ctx context.Context, userID string) ([]entity.Player, error) {
	var players []entity.Player
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&players).Error
	return players, err
}

func (s *PlayerStorage) GetByTeam(ctx context.Context, teamID string) ([]entity.Player, error) {
	var players []entity.Player
	err := s.db.WithContext(ctx).Where("team_id = ?", teamID).Order("jersey_number").Find(&players).Error
	return players, err
}

// Search matches the full name case-insensitively.
func (s *PlayerStorage) Search(ctx context.Context, query string) ([]entity.Player, error) {
	var players []entity.Player
	err := s.db.WithContext(ctx).
		Where("LOWER(first_name || ' ' || last_name) LIKE ?", likePattern(query)).
		Order("last_name, first_name").
		Find(&players).Error
	return players, err
}

// ListItems flattens active players with the name of their team.
func (s *PlayerStorage) ListItems(ctx context.Context) ([]dto.PlayerListItem, error) {
	var items []dto.PlayerListItem
	err := s.db.WithContext(ctx).
		Table("players").
		Select("players.id, players.first_name, players.last_name, players.position, players.jersey_number, players.team_id, teams.name AS team_name").
		Joins("LEFT JOIN teams ON teams.id = players.team_id").
		Where("players.is_active = ?", true).
		Order("players.last_name, players.first_name").
		Scan(&items).Error
	return items, err
}

// ListItemsByTeam is ListItems restricted to one team.
func (s *PlayerStorage) ListItemsByTeam(ctx context.Context, teamID string) ([]dto.PlayerListItem, error) {
	var items []dto.PlayerListItem
	err := s.db.WithContext(ctx).
		Table("players").
		Select("players.id, players.first_name, players.last_name, players.position, players.jersey_number, players.team_id, teams.name AS team_name").
		Joins("LEFT JOIN teams ON teams.id = players.team_id").
		Where("players.team_id = ? AND players.is_active = ?", teamID, true).
		Order("players.jersey_number").
		Scan(&items).Error
	return items, err
}
