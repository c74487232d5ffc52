package push

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger"
)

func TestPublisher_Subject(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		topic  entity.Topic
		want   string
	}{
		{name: "no prefix", topic: entity.TopicEvents, want: "events"},
		{name: "prefix", prefix: "nhu.push", topic: entity.TopicNews, want: "nhu.push.news"},
		{name: "alerts", prefix: "nhu.push", topic: entity.TopicAlerts, want: "nhu.push.alerts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Publisher{prefix: tt.prefix, logger: logger.Nop()}
			assert.Equal(t, tt.want, p.Subject(tt.topic))
		})
	}
}

func TestPublisher_PublishCancelled(t *testing.T) {
	p := &Publisher{prefix: "nhu", logger: logger.Nop()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, entity.PushMessage{Topic: entity.TopicEvents, Title: "Indoor Nationals"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTopicChannel(t *testing.T) {
	assert.Equal(t, entity.ChannelEvents, entity.TopicEvents.Channel())
	assert.Equal(t, entity.ChannelNews, entity.TopicNews.Channel())
	assert.Equal(t, entity.ChannelTeams, entity.TopicTeams.Channel())
	assert.Equal(t, entity.ChannelGeneral, entity.TopicAlerts.Channel())
}
