package documents

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

// Collections these tests write to; the real collection names live in the
// domain service package.
const (
	Teams = "teams"
	News  = "news"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStorage(client, "nhu"), mr
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	storage, mr := newTestStorage(t)

	team := entity.Team{
		ID:        "t1",
		Name:      "Saints",
		Category:  entity.CategoryMen,
		PlayerIDs: entity.StringSlice{"p1", "p2"},
		Statistics: entity.TeamStatistics{
			GamesPlayed: 3,
			Wins:        2,
			Draws:       1,
		},
		IsActive:  true,
		CreatedAt: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	require.NoError(t, storage.Set(ctx, Teams, team.ID, team.ToMap()))
	require.NoError(t, storage.Set(ctx, Teams, "t0", (&entity.Team{ID: "t0", Name: "Eagles"}).ToMap()))

	assert.True(t, mr.Exists("nhu:teams"))

	t.Run("get round trips through the entity", func(t *testing.T) {
		doc, err := storage.Get(ctx, Teams, "t1")
		require.NoError(t, err)

		got, err := entity.TeamFromMap(doc)
		require.NoError(t, err)
		assert.Equal(t, "Saints", got.Name)
		assert.Equal(t, entity.StringSlice{"p1", "p2"}, got.PlayerIDs)
		assert.Equal(t, 7, got.Statistics.Points())
		assert.True(t, got.CreatedAt.Equal(team.CreatedAt))
	})

	t.Run("get all is ordered by id", func(t *testing.T) {
		docs, err := storage.GetAll(ctx, Teams)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "t0", docs[0]["id"])
		assert.Equal(t, "t1", docs[1]["id"])
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := storage.Get(ctx, Teams, "nope")
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		err := storage.Set(ctx, Teams, "", team.ToMap())
		assert.ErrorIs(t, err, errorz.ErrInvalidDocument)
	})

	t.Run("corrupt document", func(t *testing.T) {
		mr.HSet("nhu:news", "n1", "{not json")
		_, err := storage.Get(ctx, News, "n1")
		assert.ErrorIs(t, err, errorz.ErrInvalidDocument)
	})

	t.Run("exists, count and delete", func(t *testing.T) {
		ok, err := storage.Exists(ctx, Teams, "t0")
		require.NoError(t, err)
		assert.True(t, ok)

		n, err := storage.Count(ctx, Teams)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		require.NoError(t, storage.Delete(ctx, Teams, "t0"))
		ok, err = storage.Exists(ctx, Teams, "t0")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
