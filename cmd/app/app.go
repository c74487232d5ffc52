package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/adapters/config"
	"github.com/nhu-hockey/nhu-app/internal/adapters/database/cache"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/service"
	"github.com/nhu-hockey/nhu-app/pkg/logger"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
	qr "github.com/nhu-hockey/nhu-app/pkg/qrcode"
)

// App holds the opened backends and every domain service built on them.
type App struct {
	Settings *config.Settings
	Conns    *config.Connections
	Logger   *types.Logger
	Clock    clockwork.Clock

	Notify      *service.NotifyService
	Events      *service.EventService
	Teams       *service.TeamService
	Players     *service.PlayerService
	Users       *service.UserService
	News        *service.NewsService
	Matches     *service.MatchService
	RoleChanges *service.RoleChangeService
	Sync        *service.SyncService
	Qr          *service.QrService
}

func New(ctx context.Context, settings *config.Settings) (*App, error) {
	conns, err := config.Connect(ctx, settings)
	if err != nil {
		return nil, err
	}
	a, err := wire(settings, conns, conns.Push, clockwork.NewRealClock())
	if err != nil {
		conns.Close()
		return nil, err
	}
	return a, nil
}

type publisher interface {
	Publish(ctx context.Context, msg entity.PushMessage) error
}

// wire builds every service on top of already opened connections.
func wire(settings *config.Settings, conns *config.Connections, pub publisher, clock clockwork.Clock) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}

	documents := conns.Remote.Documents
	eventCache := cache.NewEventStorage(conns.Cache)

	a := &App{
		Settings: settings,
		Conns:    conns,
		Logger:   appLogger,
		Clock:    clock,
	}
	a.Notify = service.NewNotifyService(
		logger.MustNamed("notify"),
		pub,
		eventCache,
		cache.NewNotificationStorage(conns.Cache),
		clock,
		settings.Settings.Host,
	)
	a.Events = service.NewEventService(logger.MustNamed("events"), documents, eventCache, a.Notify, clock)
	a.Teams = service.NewTeamService(logger.MustNamed("teams"), documents, cache.NewTeamStorage(conns.Cache), a.Notify, clock)
	a.Players = service.NewPlayerService(logger.MustNamed("players"), documents, cache.NewPlayerStorage(conns.Cache), a.Teams, clock)
	a.Users = service.NewUserService(logger.MustNamed("users"), documents, cache.NewUserStorage(conns.Cache), clock)
	a.News = service.NewNewsService(logger.MustNamed("news"), documents, a.Notify, clock)
	a.Matches = service.NewMatchService(logger.MustNamed("matches"), documents, a.Teams, clock)
	a.RoleChanges = service.NewRoleChangeService(logger.MustNamed("roles"), documents, a.Users, conns.Mailer, clock)
	a.Sync = service.NewSyncService(logger.MustNamed("sync"), a.Events, a.Teams, a.Players, a.Users)

	style := qr.NHU
	if settings.Settings.QRLogo != "" {
		style.Logo, err = qr.LoadLogo(settings.Settings.QRLogo)
		if err != nil {
			return nil, fmt.Errorf("failed to load share code logo: %w", err)
		}
	}
	a.Qr = service.NewQrService(logger.MustNamed("qr"), a.Events, a.Teams, a.News, style, settings.Settings.Host)

	return a, nil
}

// Start refreshes the cache, forwards error logs to the alerts topic when enabled
// and runs the reminder scheduler until ctx is done.
func (a *App) Start(ctx context.Context) error {
	if stats, err := a.Sync.Sync(ctx); err != nil {
		a.Logger.Warnf("Initial sync failed, serving from cache: %v", err)
	} else {
		a.Logger.Infof("Initial sync done (events=%d, teams=%d, players=%d, users=%d)", stats.Events, stats.Teams, stats.Players, stats.Users)
	}

	logging := a.Settings.Settings.Logging
	if logging.LogToAlerts {
		logger.SetLogHook(a.Notify.LogHook(logging.Level()))
	}

	if err := a.Notify.StartNotifyScheduler(ctx); err != nil {
		return err
	}

	a.Logger.Info("App started")
	<-ctx.Done()

	a.Logger.Info("App stopping")
	return nil
}

func (a *App) Close() {
	a.Conns.Close()
	logger.Sync()
}
