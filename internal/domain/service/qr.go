package service

import (
	"context"
	"fmt"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/deeplink"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
	qr "github.com/nhu-hockey/nhu-app/pkg/qrcode"
)

type qrEventService interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type qrTeamService interface {
	Get(ctx context.Context, id string) (*entity.Team, error)
}

type qrNewsService interface {
	Get(ctx context.Context, id string) (*entity.News, error)
}

// QrService renders share codes that open an event, team or article in the app.
type QrService struct {
	logger *types.Logger

	events qrEventService
	teams  qrTeamService
	news   qrNewsService
	style  qr.Style
	host   string
}

func NewQrService(
	logger *types.Logger,
	events qrEventService,
	teams qrTeamService,
	news qrNewsService,
	style qr.Style,
	host string,
) *QrService {
	return &QrService{
		logger: logger,
		events: events,
		teams:  teams,
		news:   news,
		style:  style,
		host:   host,
	}
}

// ShareCode returns a PNG code for the link to the given item. The item must exist.
func (s *QrService) ShareCode(ctx context.Context, kind deeplink.Kind, id string) ([]byte, error) {
	var err error
	switch kind {
	case deeplink.KindEvent:
		_, err = s.events.Get(ctx, id)
	case deeplink.KindTeam:
		_, err = s.teams.Get(ctx, id)
	case deeplink.KindNews:
		_, err = s.news.Get(ctx, id)
	default:
		return nil, fmt.Errorf("%w: unknown share kind %q", errorz.ErrInvalidInput, kind)
	}
	if err != nil {
		return nil, err
	}

	link := deeplink.Link(s.host, kind, id)
	data, err := qr.Generate(link, s.style)
	if err != nil {
		return nil, fmt.Errorf("failed to generate share code for %s: %w", link, err)
	}
	s.logger.Debugf("Share code generated (link=%s)", link)
	return data, nil
}
