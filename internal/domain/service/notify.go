package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/deeplink"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/location"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type pushPublisher interface {
	Publish(ctx context.Context, msg entity.PushMessage) error
}

type upcomingEventStorage interface {
	GetUpcoming(ctx context.Context, now, before time.Time) ([]entity.Event, error)
}

type notificationStorage interface {
	Create(ctx context.Context, notification *entity.EventNotification) error
	GetUnnotifiedTeams(ctx context.Context, eventID string, notificationType entity.NotificationType) ([]entity.EventRegistration, error)
}

type NotifyService struct {
	publisher           pushPublisher
	eventStorage        upcomingEventStorage
	notificationStorage notificationStorage

	clock  clockwork.Clock
	host   string
	logger *types.Logger

	cron *cron.Cron
}

func NewNotifyService(
	logger *types.Logger,
	publisher pushPublisher,
	eventStorage upcomingEventStorage,
	notificationStorage notificationStorage,
	clock clockwork.Clock,
	host string,
) *NotifyService {
	return &NotifyService{
		publisher:           publisher,
		eventStorage:        eventStorage,
		notificationStorage: notificationStorage,
		clock:               clock,
		host:                host,
		logger:              logger,
	}
}

// LogHook returns a log hook publishing entries at or above level on the alerts topic
func (s *NotifyService) LogHook(level zapcore.Level) types.LogHook {
	hook := func(log types.Log) {
		if strings.Contains(log.Message, "failed to publish log") {
			return
		}
		err := s.publisher.Publish(context.Background(), entity.PushMessage{
			Topic: entity.TopicAlerts,
			Title: fmt.Sprintf("%s %s", log.Level.CapitalString(), log.LoggerName),
			Body:  log.Message,
			Data:  map[string]string{"caller": log.Caller},
		})
		if err != nil {
			s.logger.Errorf("failed to publish log: %v", err)
		}
	}
	return types.LogHook(hook).AtLeast(level)
}

// NotifyEvent announces a new event on the events topic
func (s *NotifyService) NotifyEvent(ctx context.Context, event *entity.Event) error {
	body := event.StartDate.In(location.Location()).Format("Mon 2 Jan 2006, 15:04")
	if event.Location != "" {
		body += " · " + event.Location
	}
	return s.publisher.Publish(ctx, entity.PushMessage{
		Topic: entity.TopicEvents,
		Title: "New event: " + event.Title,
		Body:  body,
		Link:  deeplink.Link(s.host, deeplink.KindEvent, event.ID),
		Data:  map[string]string{"eventId": event.ID},
	})
}

func (s *NotifyService) NotifyNews(ctx context.Context, news *entity.News) error {
	body := news.Summary
	if body == "" {
		body = string(news.Category)
	}
	return s.publisher.Publish(ctx, entity.PushMessage{
		Topic: entity.TopicNews,
		Title: news.Title,
		Body:  body,
		Link:  deeplink.Link(s.host, deeplink.KindNews, news.ID),
		Data:  map[string]string{"newsId": news.ID, "category": string(news.Category)},
	})
}

func (s *NotifyService) NotifyTeam(ctx context.Context, team *entity.Team, title, body string) error {
	return s.publisher.Publish(ctx, entity.PushMessage{
		Topic: entity.TopicTeams,
		Title: title,
		Body:  body,
		Link:  deeplink.Link(s.host, deeplink.KindTeam, team.ID),
		Data:  map[string]string{"teamId": team.ID},
	})
}

// StartNotifyScheduler checks for upcoming events every minute until ctx is done
func (s *NotifyService) StartNotifyScheduler(ctx context.Context) error {
	s.logger.Info("Starting notify scheduler")
	s.cron = cron.New(cron.WithLocation(location.Location()))
	_, err := s.cron.AddFunc("@every 1m", func() {
		s.CheckAndNotify(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}
	s.cron.Start()

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.logger.Info("Notify scheduler stopped")
	}()
	return nil
}

// CheckAndNotify looks at events starting in the next 25 hours, covering both reminders.
func (s *NotifyService) CheckAndNotify(ctx context.Context) {
	now := s.clock.Now().UTC()
	s.logger.Debugf("Checking for events starting in the next 25 hours")

	events, err := s.eventStorage.GetUpcoming(ctx, now, now.Add(25*time.Hour))
	if err != nil {
		s.logger.Errorf("failed to get upcoming events: %v", err)
		return
	}

	for _, event := range events {
		timeUntilStart := event.StartDate.Sub(now)
		s.logger.Debugf("Event %s starts in %s", event.ID, timeUntilStart)

		if timeUntilStart >= 23*time.Hour && timeUntilStart <= 24*time.Hour {
			s.logger.Infof("Sending day notification for event (event_id=%s)", event.ID)
			s.sendReminders(ctx, event, entity.NotificationTypeDay)
		}
		if timeUntilStart >= 55*time.Minute && timeUntilStart <= 60*time.Minute {
			s.logger.Infof("Sending hour notification for event (event_id=%s)", event.ID)
			s.sendReminders(ctx, event, entity.NotificationTypeHour)
		}
	}
}

// sendReminders notifies the registered teams that have not been reminded yet
func (s *NotifyService) sendReminders(ctx context.Context, event entity.Event, notificationType entity.NotificationType) {
	registrations, err := s.notificationStorage.GetUnnotifiedTeams(ctx, event.ID, notificationType)
	if err != nil {
		s.logger.Errorf("failed to get unnotified teams for event %s: %v", event.ID, err)
		return
	}

	var when string
	switch notificationType {
	case entity.NotificationTypeDay:
		when = "tomorrow"
	case entity.NotificationTypeHour:
		when = "in one hour"
	}

	for _, registration := range registrations {
		s.logger.Infof(
			"Sending %s reminder to team (team_id=%s, event_id=%s)",
			notificationType,
			registration.TeamID,
			event.ID,
		)

		errPublish := s.publisher.Publish(ctx, entity.PushMessage{
			Topic: entity.TopicTeams,
			Title: fmt.Sprintf("%s starts %s", event.Title, when),
			Body:  fmt.Sprintf("%s is registered. Venue: %s", registration.TeamName, event.Venue),
			Link:  deeplink.Link(s.host, deeplink.KindEvent, event.ID),
			Data: map[string]string{
				"eventId": event.ID,
				"teamId":  registration.TeamID,
				"type":    string(notificationType),
			},
		})
		if errPublish != nil {
			s.logger.Errorf("failed to send reminder to team %s: %v", registration.TeamID, errPublish)
			continue
		}

		notification := &entity.EventNotification{
			EventID: event.ID,
			TeamID:  registration.TeamID,
			Type:    notificationType,
		}
		if err = s.notificationStorage.Create(ctx, notification); err != nil {
			s.logger.Errorf("failed to create notification record: %v", err)
		}
	}
}
