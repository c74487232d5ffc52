package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

func TestNewsService_PublishFlow(t *testing.T) {
	env := newTestEnv(t)

	draft, err := env.news.Create(env.ctx, entity.News{Title: "Selection camp announced", Category: entity.NewsAnnouncement})
	require.NoError(t, err)
	assert.False(t, draft.IsPublished)
	assert.True(t, draft.PublishedAt.IsZero())
	assert.Empty(t, env.publisher.Messages())

	published, err := env.news.GetAll(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, published)

	drafts, err := env.news.GetDrafts(env.ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	env.clock.Advance(time.Hour)
	news, err := env.news.Publish(env.ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, news.IsPublished)
	assert.True(t, news.PublishedAt.Equal(testNow.Add(time.Hour)))

	messages := env.publisher.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, entity.TopicNews, messages[0].Topic)
	assert.Equal(t, "Selection camp announced", messages[0].Title)
	assert.Equal(t, "https://nhu.test/news/"+draft.ID, messages[0].Link)

	_, err = env.news.Publish(env.ctx, draft.ID)
	require.NoError(t, err)
	assert.Len(t, env.publisher.Messages(), 1)
}

func TestNewsService_Ordering(t *testing.T) {
	env := newTestEnv(t)
	for _, title := range []string{"Season opener", "Indoor results", "Umpire clinic"} {
		_, err := env.news.Create(env.ctx, entity.News{Title: title, IsPublished: true})
		require.NoError(t, err)
		env.clock.Advance(time.Hour)
	}

	news, err := env.news.GetAll(env.ctx)
	require.NoError(t, err)
	require.Len(t, news, 3)
	assert.Equal(t, "Umpire clinic", news[0].Title)
	assert.Equal(t, "Indoor results", news[1].Title)
	assert.Equal(t, "Season opener", news[2].Title)
	assert.Equal(t, entity.NewsGeneral, news[0].Category)
}

func TestNewsService_Filters(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.news.Create(env.ctx, entity.News{
		Title:       "Saints win indoor title",
		Category:    entity.NewsTournament,
		Tags:        entity.StringSlice{"Indoor", "Saints"},
		IsPublished: true,
		IsFeatured:  true,
	})
	require.NoError(t, err)
	_, err = env.news.Create(env.ctx, entity.News{Title: "New umpires certified", Category: entity.NewsGeneral, IsPublished: true})
	require.NoError(t, err)

	featured, err := env.news.GetFeatured(env.ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)

	tournament, err := env.news.GetByCategory(env.ctx, entity.NewsTournament)
	require.NoError(t, err)
	require.Len(t, tournament, 1)

	byTag, err := env.news.Search(env.ctx, "saints")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Saints win indoor title", byTag[0].Title)

	byTitle, err := env.news.Search(env.ctx, "UMPIRES")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
}

func TestNewsService_ViewsAndDelete(t *testing.T) {
	env := newTestEnv(t)
	news, err := env.news.Create(env.ctx, entity.News{Title: "Season opener", IsPublished: true})
	require.NoError(t, err)

	_, err = env.news.IncrementViews(env.ctx, news.ID)
	require.NoError(t, err)
	viewed, err := env.news.IncrementViews(env.ctx, news.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, viewed.ViewCount)

	_, err = env.news.Update(env.ctx, &entity.News{ID: "missing", Title: "Nothing here"})
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	require.NoError(t, env.news.Delete(env.ctx, news.ID))
	_, err = env.news.Get(env.ctx, news.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
