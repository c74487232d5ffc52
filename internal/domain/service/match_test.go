package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

func createMatch(t *testing.T, env *testEnv) (*entity.Match, *entity.Team, *entity.Team) {
	t.Helper()
	home := env.createTeam(t, "Saints")
	away := env.createTeam(t, "Wanderers")
	match, err := env.matches.Create(env.ctx, entity.Match{
		HomeTeamID:   home.ID,
		HomeTeamName: home.Name,
		AwayTeamID:   away.ID,
		AwayTeamName: away.Name,
		ScheduledAt:  testNow.Add(2 * time.Hour),
		Venue:        "Windhoek Astro",
	})
	require.NoError(t, err)
	return match, home, away
}

func TestMatchService_CreateValidatesTeams(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.matches.Create(env.ctx, entity.Match{HomeTeamID: "a", AwayTeamID: "a"})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	_, err = env.matches.Create(env.ctx, entity.Match{HomeTeamID: "a"})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	match, home, _ := createMatch(t, env)
	assert.Equal(t, entity.MatchScheduled, match.Status)

	byTeam, err := env.matches.GetByTeam(env.ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, byTeam, 1)
	assert.Equal(t, match.ID, byTeam[0].ID)
}

func TestMatchService_LiveFlow(t *testing.T) {
	env := newTestEnv(t)
	match, home, away := createMatch(t, env)

	_, err := env.matches.RecordGoal(env.ctx, match.ID, home.ID, "p1", "Ndapewa Shilongo", 5)
	assert.ErrorIs(t, err, errorz.ErrMatchNotLive)

	game, err := env.matches.StartLive(env.ctx, match.ID)
	require.NoError(t, err)
	assert.True(t, game.IsLive)
	assert.Equal(t, 1, game.Period)

	again, err := env.matches.StartLive(env.ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, game.MatchID, again.MatchID)

	_, err = env.matches.RecordGoal(env.ctx, match.ID, home.ID, "p1", "Ndapewa Shilongo", 12)
	require.NoError(t, err)
	_, err = env.matches.RecordGoal(env.ctx, match.ID, home.ID, "p1", "Ndapewa Shilongo", 31)
	require.NoError(t, err)
	_, err = env.matches.NextPeriod(env.ctx, match.ID)
	require.NoError(t, err)
	_, err = env.matches.RecordCard(env.ctx, match.ID, entity.GameEventGreenCard, away.ID, "p7", 40)
	require.NoError(t, err)
	game, err = env.matches.RecordGoal(env.ctx, match.ID, away.ID, "p8", "Maria Amukoto", 52)
	require.NoError(t, err)

	assert.Equal(t, 2, game.HomeScore)
	assert.Equal(t, 1, game.AwayScore)
	assert.Equal(t, 2, game.Period)
	assert.Equal(t, 52, game.ElapsedMinutes)
	assert.Len(t, game.Events, 4)

	_, err = env.matches.RecordGoal(env.ctx, match.ID, "stranger", "p9", "Nobody", 55)
	assert.ErrorIs(t, err, errorz.ErrTeamNotInMatch)

	_, err = env.matches.RecordCard(env.ctx, match.ID, entity.GameEventGoal, home.ID, "p1", 56)
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	live, err := env.matches.Get(env.ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchLive, live.Status)
	assert.Equal(t, 2, live.HomeScore)
	assert.Equal(t, 1, live.AwayScore)
	assert.Equal(t, 1, live.Stats.AwayCards)
	require.Len(t, live.Scorers, 3)

	result, err := env.matches.Complete(env.ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, home.ID, result.WinnerTeamID)
	assert.False(t, result.IsDraw())
	require.Len(t, result.Scorers, 3)
	assert.Equal(t, "Ndapewa Shilongo", result.Scorers[0].PlayerName)

	stored, err := env.matches.GetResult(env.ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.HomeScore)
	assert.Equal(t, 1, stored.AwayScore)

	completed, err := env.matches.Get(env.ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchCompleted, completed.Status)

	homeTeam, err := env.teams.Get(env.ctx, home.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, homeTeam.Statistics.Wins)
	assert.Equal(t, 2, homeTeam.Statistics.GoalsFor)

	awayTeam, err := env.teams.Get(env.ctx, away.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, awayTeam.Statistics.Losses)
	assert.Equal(t, 2, awayTeam.Statistics.GoalsAgainst)

	_, err = env.matches.RecordGoal(env.ctx, match.ID, home.ID, "p1", "Ndapewa Shilongo", 60)
	assert.ErrorIs(t, err, errorz.ErrMatchCompleted)
	_, err = env.matches.StartLive(env.ctx, match.ID)
	assert.ErrorIs(t, err, errorz.ErrMatchCompleted)
}

func TestMatchService_StartCancelled(t *testing.T) {
	env := newTestEnv(t)
	match, _, _ := createMatch(t, env)

	match.Status = entity.MatchCancelled
	_, err := env.matches.Update(env.ctx, match)
	require.NoError(t, err)

	_, err = env.matches.StartLive(env.ctx, match.ID)
	assert.ErrorIs(t, err, errorz.ErrInvalidState)
}

func TestMatchService_Delete(t *testing.T) {
	env := newTestEnv(t)
	match, _, _ := createMatch(t, env)
	_, err := env.matches.StartLive(env.ctx, match.ID)
	require.NoError(t, err)

	require.NoError(t, env.matches.Delete(env.ctx, match.ID))

	_, err = env.matches.Get(env.ctx, match.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
	_, err = env.matches.GetLive(env.ctx, match.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
