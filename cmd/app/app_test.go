package app

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/adapters/config"
	"github.com/nhu-hockey/nhu-app/internal/adapters/controller/viewmodel"
	"github.com/nhu-hockey/nhu-app/internal/adapters/database/cache"
	"github.com/nhu-hockey/nhu-app/internal/adapters/database/redis"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger"
)

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []entity.PushMessage
}

func (p *recordingPublisher) Publish(_ context.Context, msg entity.PushMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func newTestApp(t *testing.T, pageSize int) (*App, *recordingPublisher) {
	t.Helper()
	require.NoError(t, logger.Init(logger.Config{}))

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	remote, err := redis.New(context.Background(), redis.Options{Host: mr.Host(), Port: port, Namespace: "test"})
	require.NoError(t, err)
	db, err := cache.Open(cache.Options{Path: ":memory:"})
	require.NoError(t, err)

	conns := &config.Connections{Cache: db, Remote: remote}
	t.Cleanup(conns.Close)

	settings := &config.Settings{}
	settings.Settings.Host = "nhu.test"
	settings.Settings.PageSize = pageSize

	pub := &recordingPublisher{}
	a, err := wire(settings, conns, pub, clockwork.NewFakeClockAt(testNow))
	require.NoError(t, err)
	return a, pub
}

func TestApp_ViewModels(t *testing.T) {
	a, pub := newTestApp(t, 2)
	ctx := context.Background()

	user, err := a.Users.Register(ctx, "", "coach@nhu.na", "Maria", "Amukoto")
	require.NoError(t, err)
	user, err = a.Users.SetRole(ctx, user.ID, entity.Coach)
	require.NoError(t, err)

	for _, name := range []string{"Saints", "Wanderers"} {
		_, err = a.Teams.Create(ctx, entity.Team{Name: name, Category: entity.CategoryMen, CreatedBy: user.ID})
		require.NoError(t, err)
	}
	_, err = a.Teams.Create(ctx, entity.Team{Name: "Coastal Raiders", Category: entity.CategoryWomen, CreatedBy: "someone-else"})
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		start := testNow.AddDate(0, 0, 7*i)
		_, err = a.Events.Create(ctx, entity.Event{Title: fmt.Sprintf("League round %d", i), StartDate: start, EndDate: start.Add(4 * time.Hour)})
		require.NoError(t, err)
	}
	assert.NotEmpty(t, pub.messages)

	vms := a.ViewModels(ctx, user)

	vms.Teams.LoadMyTeams()
	vms.Teams.Wait()
	teams := vms.Teams.List.Get()
	assert.Equal(t, viewmodel.StatusSuccess, teams.Status)
	assert.Len(t, teams.Items, 2)

	vms.Events.LoadEvents()
	vms.Events.Wait()
	events := vms.Events.List.Get()
	assert.Len(t, events.Items, 2)
	assert.True(t, events.HasMore)

	vms.Close()

	vms.Teams.LoadTeams()
	vms.Teams.Wait()
	assert.Len(t, vms.Teams.List.Get().Items, 2)
}
