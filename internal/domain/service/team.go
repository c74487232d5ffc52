package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/xuri/excelize/v2"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type TeamCache interface {
	Upsert(ctx context.Context, team *entity.Team) error
	UpsertMany(ctx context.Context, teams []entity.Team) error
	Delete(ctx context.Context, id string) error
	ListItems(ctx context.Context) ([]dto.TeamListItem, error)
}

type teamNotifier interface {
	NotifyTeam(ctx context.Context, team *entity.Team, title, body string) error
}

type TeamService struct {
	logger *types.Logger

	documents DocumentStore
	cache     TeamCache
	notifier  teamNotifier
	clock     clockwork.Clock
}

func NewTeamService(
	logger *types.Logger,
	documents DocumentStore,
	cache TeamCache,
	notifier teamNotifier,
	clock clockwork.Clock,
) *TeamService {
	return &TeamService{
		logger:    logger,
		documents: documents,
		cache:     cache,
		notifier:  notifier,
		clock:     clock,
	}
}

// GetAll returns every team ordered by name and refreshes the local cache.
func (s *TeamService) GetAll(ctx context.Context) ([]entity.Team, error) {
	teams, err := getAllDocuments(ctx, s.documents, teamsCollection, entity.TeamFromMap)
	if err != nil {
		return nil, err
	}
	sortBy(teams, func(a, b entity.Team) bool { return a.Name < b.Name })

	if err = s.cache.UpsertMany(ctx, teams); err != nil {
		s.logger.Warnf("failed to cache teams: %v", err)
	}
	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*entity.Team, error) {
	team, err := getDocument(ctx, s.documents, teamsCollection, id, entity.TeamFromMap)
	if err != nil {
		return nil, err
	}
	s.cacheTeam(ctx, team)
	return team, nil
}

func (s *TeamService) Create(ctx context.Context, team entity.Team) (*entity.Team, error) {
	now := s.clock.Now().UTC()
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if team.PlayerIDs == nil {
		team.PlayerIDs = entity.StringSlice{}
	}
	team.IsActive = true
	team.CreatedAt = now
	team.UpdatedAt = now

	if err := s.save(ctx, &team); err != nil {
		return nil, err
	}
	s.logger.Infof("Team created (team_id=%s, name=%s)", team.ID, team.Name)
	if s.notifier != nil {
		body := fmt.Sprintf("%s joined the %s division", team.Name, team.Category)
		if err := s.notifier.NotifyTeam(ctx, &team, "New team", body); err != nil {
			s.logger.Errorf("failed to notify about team %s: %v", team.ID, err)
		}
	}
	return &team, nil
}

func (s *TeamService) Update(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	exists, err := s.documents.Exists(ctx, teamsCollection, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check team %s: %w", team.ID, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to update team %s: %w", team.ID, errorz.ErrNotFound)
	}
	team.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := deleteDocument(ctx, s.documents, teamsCollection, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warnf("failed to remove team %s from cache: %v", id, err)
	}
	s.logger.Infof("Team deleted (team_id=%s)", id)
	return nil
}

// GetByCreator returns the teams userID created.
func (s *TeamService) GetByCreator(ctx context.Context, userID string) ([]entity.Team, error) {
	teams, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(teams, func(t entity.Team) bool { return t.CreatedBy == userID }), nil
}

func (s *TeamService) Search(ctx context.Context, query string) ([]entity.Team, error) {
	teams, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(teams, func(t entity.Team) bool {
		return containsFold(query, t.Name, t.Division, t.CoachName, t.HomeVenue)
	}), nil
}

// AddPlayer puts playerID on the roster. Adding a player twice is a no-op.
func (s *TeamService) AddPlayer(ctx context.Context, teamID, playerID string) (*entity.Team, error) {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.HasPlayer(playerID) {
		return team, nil
	}
	team.PlayerIDs = append(team.PlayerIDs, playerID)
	team.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) RemovePlayer(ctx context.Context, teamID, playerID string) (*entity.Team, error) {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.HasPlayer(playerID) {
		return team, nil
	}
	team.PlayerIDs = team.PlayerIDs.Without(playerID)
	team.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// RecordResult adds one finished game to the team's statistics.
func (s *TeamService) RecordResult(ctx context.Context, teamID string, scored, conceded int) (*entity.Team, error) {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Statistics.Record(scored, conceded)
	team.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) ListItems(ctx context.Context) ([]dto.TeamListItem, error) {
	items, err := s.cache.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached teams: %w", err)
	}
	return items, nil
}

// ExportRoster renders the team's players as an XLSX sheet.
func (s *TeamService) ExportRoster(ctx context.Context, teamID string) (*bytes.Buffer, error) {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	players, err := getAllDocuments(ctx, s.documents, playersCollection, entity.PlayerFromMap)
	if err != nil {
		return nil, err
	}
	players = filter(players, func(p entity.Player) bool { return p.TeamID == team.ID || team.HasPlayer(p.ID) })
	sortBy(players, func(a, b entity.Player) bool { return a.JerseyNumber < b.JerseyNumber })

	return rosterToXLSX(team, players, s.clock)
}

func (s *TeamService) save(ctx context.Context, team *entity.Team) error {
	if err := setDocument(ctx, s.documents, teamsCollection, team.ID, team.ToMap()); err != nil {
		return err
	}
	s.cacheTeam(ctx, team)
	return nil
}

func (s *TeamService) cacheTeam(ctx context.Context, team *entity.Team) {
	if err := s.cache.Upsert(ctx, team); err != nil {
		s.logger.Warnf("failed to cache team %s: %v", team.ID, err)
	}
}

var rosterHeader = []string{"#", "First name", "Last name", "Position", "Date of birth", "Age", "Games", "Goals", "Assists"}

func rosterToXLSX(team *entity.Team, players []entity.Player, clock clockwork.Clock) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Roster"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(sheet, "A1", team.Name)
	_ = f.SetCellValue(sheet, "B1", string(team.Category))
	_ = f.SetCellValue(sheet, "C1", team.Division)

	for i, title := range rosterHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, title)
	}

	now := clock.Now()
	for i, player := range players {
		row := strconv.Itoa(i + 4)
		_ = f.SetCellValue(sheet, "A"+row, player.JerseyNumber)
		_ = f.SetCellValue(sheet, "B"+row, player.FirstName)
		_ = f.SetCellValue(sheet, "C"+row, player.LastName)
		_ = f.SetCellValue(sheet, "D"+row, string(player.Position))
		if !player.DateOfBirth.IsZero() {
			_ = f.SetCellValue(sheet, "E"+row, player.DateOfBirth.Format("2006-01-02"))
			_ = f.SetCellValue(sheet, "F"+row, player.Age(now))
		}
		_ = f.SetCellValue(sheet, "G"+row, player.Stats.GamesPlayed)
		_ = f.SetCellValue(sheet, "H"+row, player.Stats.Goals)
		_ = f.SetCellValue(sheet, "I"+row, player.Stats.Assists)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
