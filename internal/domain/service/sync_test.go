package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

func TestSyncService_Sync(t *testing.T) {
	env := newTestEnv(t)

	// Written straight to the remote store so the cache starts empty.
	for _, team := range []entity.Team{
		{ID: "t1", Name: "Saints", IsActive: true},
		{ID: "t2", Name: "Wanderers", IsActive: true},
	} {
		require.NoError(t, env.documents.Set(env.ctx, teamsCollection, team.ID, team.ToMap()))
	}
	player := entity.Player{ID: "p1", FirstName: "Ndapewa", LastName: "Shilongo", TeamID: "t1", IsActive: true}
	require.NoError(t, env.documents.Set(env.ctx, playersCollection, player.ID, player.ToMap()))
	event := entity.Event{ID: "e1", Title: "Indoor Nationals", StartDate: testNow, Status: entity.EventUpcoming}
	require.NoError(t, env.documents.Set(env.ctx, eventsCollection, event.ID, event.ToMap()))

	count, err := env.teamCache.Count(env.ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	stats, err := env.sync.Sync(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncStats{Events: 1, Teams: 2, Players: 1, Users: 0}, stats)

	count, err = env.teamCache.Count(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	items, err := env.players.ListItems(env.ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Saints", items[0].TeamName)

	cached, err := env.events.GetCached(env.ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
}

func TestSyncService_RemoteFailure(t *testing.T) {
	env := newTestEnv(t)
	env.redis.Close()

	_, err := env.sync.Sync(env.ctx)
	assert.Error(t, err)
}
