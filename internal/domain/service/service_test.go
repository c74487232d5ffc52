package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/adapters/database/cache"
	"github.com/nhu-hockey/nhu-app/internal/adapters/database/redis/documents"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger"
	qr "github.com/nhu-hockey/nhu-app/pkg/qrcode"
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

func (p *recordingPublisher) Messages() []entity.PushMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.PushMessage(nil), p.messages...)
}

type recordingMailer struct {
	requests []entity.RoleChangeRequest
}

func (m *recordingMailer) SendRoleDecision(request *entity.RoleChangeRequest) error {
	m.requests = append(m.requests, *request)
	return nil
}

type testEnv struct {
	ctx       context.Context
	redis     *miniredis.Miniredis
	documents *documents.Storage
	clock     *clockwork.FakeClock
	publisher *recordingPublisher
	mailer    *recordingMailer

	eventCache        *cache.EventStorage
	teamCache         *cache.TeamStorage
	playerCache       *cache.PlayerStorage
	userCache         *cache.UserStorage
	notificationCache *cache.NotificationStorage

	notify     *NotifyService
	events     *EventService
	teams      *TeamService
	players    *PlayerService
	users      *UserService
	news       *NewsService
	matches    *MatchService
	roleChange *RoleChangeService
	sync       *SyncService
	qr         *QrService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	db, err := cache.Open(cache.Options{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		ctx:       context.Background(),
		redis:     mr,
		documents: documents.NewStorage(client, "test"),
		clock:     clockwork.NewFakeClockAt(testNow),
		publisher: &recordingPublisher{},
		mailer:    &recordingMailer{},

		eventCache:        cache.NewEventStorage(db),
		teamCache:         cache.NewTeamStorage(db),
		playerCache:       cache.NewPlayerStorage(db),
		userCache:         cache.NewUserStorage(db),
		notificationCache: cache.NewNotificationStorage(db),
	}

	log := logger.Nop()
	env.notify = NewNotifyService(log, env.publisher, env.eventCache, env.notificationCache, env.clock, "nhu.test")
	env.events = NewEventService(log, env.documents, env.eventCache, env.notify, env.clock)
	env.teams = NewTeamService(log, env.documents, env.teamCache, env.notify, env.clock)
	env.players = NewPlayerService(log, env.documents, env.playerCache, env.teams, env.clock)
	env.users = NewUserService(log, env.documents, env.userCache, env.clock)
	env.news = NewNewsService(log, env.documents, env.notify, env.clock)
	env.matches = NewMatchService(log, env.documents, env.teams, env.clock)
	env.roleChange = NewRoleChangeService(log, env.documents, env.users, env.mailer, env.clock)
	env.sync = NewSyncService(log, env.events, env.teams, env.players, env.users)
	env.qr = NewQrService(log, env.events, env.teams, env.news, qr.NHU, "nhu.test")
	return env
}

func (e *testEnv) createTeam(t *testing.T, name string) *entity.Team {
	t.Helper()
	team, err := e.teams.Create(e.ctx, entity.Team{Name: name, Category: entity.CategoryMen, CreatedBy: "u-coach"})
	require.NoError(t, err)
	return team
}

func (e *testEnv) createEvent(t *testing.T, title string, start time.Time, maxTeams int) *entity.Event {
	t.Helper()
	event, err := e.events.Create(e.ctx, entity.Event{
		Title:     title,
		Type:      entity.EventTournament,
		StartDate: start,
		EndDate:   start.Add(8 * time.Hour),
		Location:  "Windhoek",
		Venue:     "Ramatex Hall",
		MaxTeams:  maxTeams,
	})
	require.NoError(t, err)
	return event
}

func (e *testEnv) createUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	user, err := e.users.Register(e.ctx, "", email, "Test", "User")
	require.NoError(t, err)
	if role != entity.RolePlayer {
		user, err = e.users.SetRole(e.ctx, user.ID, role)
		require.NoError(t, err)
	}
	return user
}
