package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type standingsService interface {
	RecordResult(ctx context.Context, teamID string, scored, conceded int) (*entity.Team, error)
}

type MatchService struct {
	logger *types.Logger

	documents DocumentStore
	standings standingsService
	clock     clockwork.Clock
}

func NewMatchService(logger *types.Logger, documents DocumentStore, standings standingsService, clock clockwork.Clock) *MatchService {
	return &MatchService{
		logger:    logger,
		documents: documents,
		standings: standings,
		clock:     clock,
	}
}

// GetAll returns every match ordered by kick-off.
func (s *MatchService) GetAll(ctx context.Context) ([]entity.Match, error) {
	matches, err := getAllDocuments(ctx, s.documents, matchesCollection, entity.MatchFromMap)
	if err != nil {
		return nil, err
	}
	sortBy(matches, func(a, b entity.Match) bool { return a.ScheduledAt.Before(b.ScheduledAt) })
	return matches, nil
}

func (s *MatchService) Get(ctx context.Context, id string) (*entity.Match, error) {
	return getDocument(ctx, s.documents, matchesCollection, id, entity.MatchFromMap)
}

func (s *MatchService) GetByEvent(ctx context.Context, eventID string) ([]entity.Match, error) {
	matches, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(matches, func(m entity.Match) bool { return m.EventID == eventID }), nil
}

func (s *MatchService) GetByTeam(ctx context.Context, teamID string) ([]entity.Match, error) {
	matches, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(matches, func(m entity.Match) bool { return m.Involves(teamID) }), nil
}

func (s *MatchService) Create(ctx context.Context, match entity.Match) (*entity.Match, error) {
	if match.HomeTeamID == "" || match.AwayTeamID == "" || match.HomeTeamID == match.AwayTeamID {
		return nil, fmt.Errorf("%w: a match needs two different teams", errorz.ErrInvalidInput)
	}
	now := s.clock.Now().UTC()
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	match.Status = entity.MatchScheduled
	match.HomeScore = 0
	match.AwayScore = 0
	match.Scorers = entity.JSONList[entity.GoalScorer]{}
	match.CreatedAt = now
	match.UpdatedAt = now

	if err := s.saveMatch(ctx, &match); err != nil {
		return nil, err
	}
	s.logger.Infof("Match created (match_id=%s, home=%s, away=%s)", match.ID, match.HomeTeamID, match.AwayTeamID)
	return &match, nil
}

func (s *MatchService) Update(ctx context.Context, match *entity.Match) (*entity.Match, error) {
	exists, err := s.documents.Exists(ctx, matchesCollection, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check match %s: %w", match.ID, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to update match %s: %w", match.ID, errorz.ErrNotFound)
	}
	match.UpdatedAt = s.clock.Now().UTC()
	if err = s.saveMatch(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// Delete removes the match and its live game, if any.
func (s *MatchService) Delete(ctx context.Context, id string) error {
	if err := deleteDocument(ctx, s.documents, matchesCollection, id); err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, liveGamesCollection, id); err != nil {
		s.logger.Warnf("failed to delete live game %s: %v", id, err)
	}
	s.logger.Infof("Match deleted (match_id=%s)", id)
	return nil
}

// StartLive opens live scoring for a scheduled match.
// Starting a match that is already live returns its current live game.
func (s *MatchService) StartLive(ctx context.Context, matchID string) (*entity.LiveGame, error) {
	match, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	switch match.Status {
	case entity.MatchLive:
		return s.GetLive(ctx, matchID)
	case entity.MatchCompleted:
		return nil, errorz.ErrMatchCompleted
	case entity.MatchCancelled, entity.MatchPostponed:
		return nil, fmt.Errorf("%w: match is %s", errorz.ErrInvalidState, match.Status)
	}

	now := s.clock.Now().UTC()
	game := entity.NewLiveGame(match, now)
	if err = s.saveLive(ctx, game); err != nil {
		return nil, err
	}
	match.Status = entity.MatchLive
	match.UpdatedAt = now
	if err = s.saveMatch(ctx, match); err != nil {
		return nil, err
	}
	s.logger.Infof("Match started (match_id=%s)", matchID)
	return game, nil
}

func (s *MatchService) GetLive(ctx context.Context, matchID string) (*entity.LiveGame, error) {
	return getDocument(ctx, s.documents, liveGamesCollection, matchID, entity.LiveGameFromMap)
}

func (s *MatchService) RecordGoal(ctx context.Context, matchID, teamID, playerID, playerName string, minute int) (*entity.LiveGame, error) {
	return s.updateLive(ctx, matchID, func(game *entity.LiveGame, match *entity.Match) error {
		if err := game.RecordGoal(teamID, playerID, minute, s.clock.Now().UTC()); err != nil {
			return err
		}
		match.Scorers = append(match.Scorers, entity.GoalScorer{
			PlayerID:   playerID,
			PlayerName: playerName,
			TeamID:     teamID,
			Minute:     minute,
		})
		return nil
	})
}

func (s *MatchService) RecordCard(ctx context.Context, matchID string, card entity.GameEventType, teamID, playerID string, minute int) (*entity.LiveGame, error) {
	return s.updateLive(ctx, matchID, func(game *entity.LiveGame, match *entity.Match) error {
		if err := game.RecordCard(card, teamID, playerID, minute, s.clock.Now().UTC()); err != nil {
			return err
		}
		if teamID == match.HomeTeamID {
			match.Stats.HomeCards++
		} else {
			match.Stats.AwayCards++
		}
		return nil
	})
}

func (s *MatchService) NextPeriod(ctx context.Context, matchID string) (*entity.LiveGame, error) {
	return s.updateLive(ctx, matchID, func(game *entity.LiveGame, _ *entity.Match) error {
		return game.NextPeriod(s.clock.Now().UTC())
	})
}

// Complete finishes the live game, stores its result and applies it to both teams' statistics.
func (s *MatchService) Complete(ctx context.Context, matchID string) (*entity.GameResult, error) {
	var result *entity.GameResult
	_, err := s.updateLive(ctx, matchID, func(game *entity.LiveGame, match *entity.Match) error {
		var err error
		result, err = game.Finish(s.clock.Now().UTC())
		if err != nil {
			return err
		}
		result.Scorers = match.Scorers
		match.Status = entity.MatchCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err = setDocument(ctx, s.documents, gameResultsCollection, result.MatchID, result.ToMap()); err != nil {
		return nil, err
	}
	if s.standings != nil {
		if _, err = s.standings.RecordResult(ctx, result.HomeTeamID, result.HomeScore, result.AwayScore); err != nil {
			return nil, fmt.Errorf("failed to update home team statistics: %w", err)
		}
		if _, err = s.standings.RecordResult(ctx, result.AwayTeamID, result.AwayScore, result.HomeScore); err != nil {
			return nil, fmt.Errorf("failed to update away team statistics: %w", err)
		}
	}
	s.logger.Infof("Match completed (match_id=%s, score=%d:%d)", matchID, result.HomeScore, result.AwayScore)
	return result, nil
}

func (s *MatchService) GetResult(ctx context.Context, matchID string) (*entity.GameResult, error) {
	return getDocument(ctx, s.documents, gameResultsCollection, matchID, entity.GameResultFromMap)
}

// updateLive applies change to the live game of matchID and mirrors its score onto the match.
func (s *MatchService) updateLive(ctx context.Context, matchID string, change func(*entity.LiveGame, *entity.Match) error) (*entity.LiveGame, error) {
	match, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == entity.MatchCompleted {
		return nil, errorz.ErrMatchCompleted
	}
	if match.Status != entity.MatchLive {
		return nil, errorz.ErrMatchNotLive
	}
	game, err := s.GetLive(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err = change(game, match); err != nil {
		return nil, err
	}
	match.HomeScore = game.HomeScore
	match.AwayScore = game.AwayScore
	match.UpdatedAt = game.UpdatedAt

	if err = s.saveLive(ctx, game); err != nil {
		return nil, err
	}
	if err = s.saveMatch(ctx, match); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *MatchService) saveMatch(ctx context.Context, match *entity.Match) error {
	return setDocument(ctx, s.documents, matchesCollection, match.ID, match.ToMap())
}

func (s *MatchService) saveLive(ctx context.Context, game *entity.LiveGame) error {
	return setDocument(ctx, s.documents, liveGamesCollection, game.MatchID, game.ToMap())
}
