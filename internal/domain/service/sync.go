package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

// SyncStats counts the documents copied into the local cache per collection.
type SyncStats struct {
	Events  int
	Teams   int
	Players int
	Users   int
}

// SyncService refreshes the local cache from the remote store.
type SyncService struct {
	logger *types.Logger

	events  *EventService
	teams   *TeamService
	players *PlayerService
	users   *UserService
}

func NewSyncService(logger *types.Logger, events *EventService, teams *TeamService, players *PlayerService, users *UserService) *SyncService {
	return &SyncService{
		logger:  logger,
		events:  events,
		teams:   teams,
		players: players,
		users:   users,
	}
}

// Sync pulls every cached collection concurrently. The first failure cancels the rest.
func (s *SyncService) Sync(ctx context.Context) (SyncStats, error) {
	var stats SyncStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.events.GetAll(ctx)
		stats.Events = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.teams.GetAll(ctx)
		stats.Teams = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.players.GetAll(ctx)
		stats.Players = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.users.GetAll(ctx)
		stats.Users = len(items)
		return err
	})
	if err := g.Wait(); err != nil {
		return SyncStats{}, err
	}

	s.logger.Infof("Cache synced (events=%d, teams=%d, players=%d, users=%d)", stats.Events, stats.Teams, stats.Players, stats.Users)
	return stats, nil
}
