package entity

import "time"

type NotificationType string

const (
	NotificationTypeDay  NotificationType = "day"
	NotificationTypeHour NotificationType = "hour"
)

// EventNotification represents a reminder that has been sent to a registered team
type EventNotification struct {
	ID        string           `gorm:"primaryKey"`
	EventID   string           `gorm:"not null;index"`
	TeamID    string           `gorm:"not null"`
	Type      NotificationType `gorm:"not null"`
	CreatedAt time.Time        `gorm:"not null"`
}

// Topic is a push-notification topic devices subscribe to.
type Topic string

const (
	TopicEvents Topic = "events"
	TopicNews   Topic = "news"
	TopicTeams  Topic = "teams"

	// TopicAlerts carries error logs to the operators, devices never subscribe to it.
	TopicAlerts Topic = "alerts"
)

var Topics = []Topic{TopicEvents, TopicNews, TopicTeams}

// Channel is a local notification channel a push message is shown in.
type Channel string

const (
	ChannelEvents  Channel = "events"
	ChannelNews    Channel = "news"
	ChannelTeams   Channel = "teams"
	ChannelGeneral Channel = "general"
)

func (t Topic) Channel() Channel {
	switch t {
	case TopicEvents:
		return ChannelEvents
	case TopicNews:
		return ChannelNews
	case TopicTeams:
		return ChannelTeams
	}
	return ChannelGeneral
}

// PushMessage is the payload published on a topic.
type PushMessage struct {
	Topic   Topic             `json:"topic"`
	Channel Channel           `json:"channel"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Link    string            `json:"link,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
	SentAt  time.Time         `json:"sentAt"`
}
