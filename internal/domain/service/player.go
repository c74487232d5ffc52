package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type PlayerCache interface {
	Upsert(ctx context.Context, player *entity.Player) error
	UpsertMany(ctx context.Context, players []entity.Player) error
	Delete(ctx context.Context, id string) error
	ListItems(ctx context.Context) ([]dto.PlayerListItem, error)
	ListItemsByTeam(ctx context.Context, teamID string) ([]dto.PlayerListItem, error)
}

type rosterService interface {
	Get(ctx context.Context, id string) (*entity.Team, error)
	AddPlayer(ctx context.Context, teamID, playerID string) (*entity.Team, error)
	RemovePlayer(ctx context.Context, teamID, playerID string) (*entity.Team, error)
}

type PlayerService struct {
	logger *types.Logger

	documents DocumentStore
	cache     PlayerCache
	roster    rosterService
	clock     clockwork.Clock
}

func NewPlayerService(
	logger *types.Logger,
	documents DocumentStore,
	cache PlayerCache,
	roster rosterService,
	clock clockwork.Clock,
) *PlayerService {
	return &PlayerService{
		logger:    logger,
		documents: documents,
		cache:     cache,
		roster:    roster,
		clock:     clock,
	}
}

// GetAll returns every player ordered by last name and refreshes the local cache.
func (s *PlayerService) GetAll(ctx context.Context) ([]entity.Player, error) {
	players, err := getAllDocuments(ctx, s.documents, playersCollection, entity.PlayerFromMap)
	if err != nil {
		return nil, err
	}
	sortBy(players, func(a, b entity.Player) bool {
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})

	if err = s.cache.UpsertMany(ctx, players); err != nil {
		s.logger.Warnf("failed to cache players: %v", err)
	}
	return players, nil
}

func (s *PlayerService) Get(ctx context.Context, id string) (*entity.Player, error) {
	player, err := getDocument(ctx, s.documents, playersCollection, id, entity.PlayerFromMap)
	if err != nil {
		return nil, err
	}
	s.cachePlayer(ctx, player)
	return player, nil
}

// Create stores a new player and puts them on their team's roster.
// Jersey numbers are unique among the active players of a team.
func (s *PlayerService) Create(ctx context.Context, player entity.Player) (*entity.Player, error) {
	now := s.clock.Now().UTC()
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	player.IsActive = true
	player.CreatedAt = now
	player.UpdatedAt = now

	if err := s.checkTeam(ctx, player.TeamID); err != nil {
		return nil, err
	}
	if err := s.checkJersey(ctx, &player); err != nil {
		return nil, err
	}
	if err := s.save(ctx, &player); err != nil {
		return nil, err
	}
	if player.TeamID != "" {
		if _, err := s.roster.AddPlayer(ctx, player.TeamID, player.ID); err != nil {
			return nil, fmt.Errorf("failed to add player %s to team %s: %w", player.ID, player.TeamID, err)
		}
	}
	s.logger.Infof("Player created (player_id=%s, team_id=%s)", player.ID, player.TeamID)
	return &player, nil
}

func (s *PlayerService) Update(ctx context.Context, player *entity.Player) (*entity.Player, error) {
	exists, err := s.documents.Exists(ctx, playersCollection, player.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check player %s: %w", player.ID, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to update player %s: %w", player.ID, errorz.ErrNotFound)
	}
	if err = s.checkJersey(ctx, player); err != nil {
		return nil, err
	}
	player.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *PlayerService) Delete(ctx context.Context, id string) error {
	player, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = deleteDocument(ctx, s.documents, playersCollection, id); err != nil {
		return err
	}
	if player.TeamID != "" {
		if _, err = s.roster.RemovePlayer(ctx, player.TeamID, id); err != nil {
			s.logger.Warnf("failed to remove player %s from team %s: %v", id, player.TeamID, err)
		}
	}
	if err = s.cache.Delete(ctx, id); err != nil {
		s.logger.Warnf("failed to remove player %s from cache: %v", id, err)
	}
	s.logger.Infof("Player deleted (player_id=%s)", id)
	return nil
}

func (s *PlayerService) GetByTeam(ctx context.Context, teamID string) ([]entity.Player, error) {
	players, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(players, func(p entity.Player) bool { return p.TeamID == teamID }), nil
}

// SearchPlayers matches query against the players' full names, ignoring case.
func (s *PlayerService) SearchPlayers(ctx context.Context, query string) ([]entity.Player, error) {
	players, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(players, func(p entity.Player) bool { return containsFold(query, p.FullName()) }), nil
}

// Transfer moves the player to teamID, updating both rosters.
func (s *PlayerService) Transfer(ctx context.Context, playerID, teamID string) (*entity.Player, error) {
	player, err := s.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.TeamID == teamID {
		return player, nil
	}

	if err = s.checkTeam(ctx, teamID); err != nil {
		return nil, err
	}
	previous := player.TeamID
	player.TeamID = teamID
	if err = s.checkJersey(ctx, player); err != nil {
		return nil, err
	}
	player.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, player); err != nil {
		return nil, err
	}

	if previous != "" {
		if _, err = s.roster.RemovePlayer(ctx, previous, player.ID); err != nil {
			return nil, fmt.Errorf("failed to remove player %s from team %s: %w", player.ID, previous, err)
		}
	}
	if teamID != "" {
		if _, err = s.roster.AddPlayer(ctx, teamID, player.ID); err != nil {
			return nil, fmt.Errorf("failed to add player %s to team %s: %w", player.ID, teamID, err)
		}
	}
	s.logger.Infof("Player transferred (player_id=%s, from=%s, to=%s)", player.ID, previous, teamID)
	return player, nil
}

func (s *PlayerService) UpdateStats(ctx context.Context, playerID string, stats entity.PlayerStats) (*entity.Player, error) {
	player, err := s.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	player.Stats = stats
	player.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// ListItems returns cached list rows for teamID, or for every player when teamID is empty.
func (s *PlayerService) ListItems(ctx context.Context, teamID string) ([]dto.PlayerListItem, error) {
	var (
		items []dto.PlayerListItem
		err   error
	)
	if teamID == "" {
		items, err = s.cache.ListItems(ctx)
	} else {
		items, err = s.cache.ListItemsByTeam(ctx, teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list cached players: %w", err)
	}
	return items, nil
}

// checkTeam makes sure teamID names an existing team before anything is written.
func (s *PlayerService) checkTeam(ctx context.Context, teamID string) error {
	if teamID == "" {
		return nil
	}
	if _, err := s.roster.Get(ctx, teamID); err != nil {
		return fmt.Errorf("failed to check team %s: %w", teamID, err)
	}
	return nil
}

func (s *PlayerService) checkJersey(ctx context.Context, player *entity.Player) error {
	if player.TeamID == "" || player.JerseyNumber == 0 {
		return nil
	}
	players, err := getAllDocuments(ctx, s.documents, playersCollection, entity.PlayerFromMap)
	if err != nil {
		return err
	}
	for _, other := range players {
		if other.ID != player.ID && other.IsActive && other.TeamID == player.TeamID && other.JerseyNumber == player.JerseyNumber {
			return fmt.Errorf("%w: #%d", errorz.ErrJerseyTaken, player.JerseyNumber)
		}
	}
	return nil
}

func (s *PlayerService) save(ctx context.Context, player *entity.Player) error {
	if err := setDocument(ctx, s.documents, playersCollection, player.ID, player.ToMap()); err != nil {
		return err
	}
	s.cachePlayer(ctx, player)
	return nil
}

func (s *PlayerService) cachePlayer(ctx context.Context, player *entity.Player) {
	if err := s.cache.Upsert(ctx, player); err != nil {
		s.logger.Warnf("failed to cache player %s: %v", player.ID, err)
	}
}
