package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type newsNotifier interface {
	NotifyNews(ctx context.Context, news *entity.News) error
}

type NewsService struct {
	logger *types.Logger

	documents DocumentStore
	notifier  newsNotifier
	clock     clockwork.Clock
}

func NewNewsService(logger *types.Logger, documents DocumentStore, notifier newsNotifier, clock clockwork.Clock) *NewsService {
	return &NewsService{
		logger:    logger,
		documents: documents,
		notifier:  notifier,
		clock:     clock,
	}
}

// GetAll returns the published articles, newest first.
func (s *NewsService) GetAll(ctx context.Context) ([]entity.News, error) {
	news, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return filter(news, func(n entity.News) bool { return n.IsPublished }), nil
}

// GetDrafts returns the articles that have not been published yet, newest first.
func (s *NewsService) GetDrafts(ctx context.Context) ([]entity.News, error) {
	news, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return filter(news, func(n entity.News) bool { return !n.IsPublished }), nil
}

func (s *NewsService) Get(ctx context.Context, id string) (*entity.News, error) {
	return getDocument(ctx, s.documents, newsCollection, id, entity.NewsFromMap)
}

// Create stores the article. Articles created as published are announced right away.
func (s *NewsService) Create(ctx context.Context, news entity.News) (*entity.News, error) {
	now := s.clock.Now().UTC()
	if news.ID == "" {
		news.ID = uuid.NewString()
	}
	if news.Category == "" {
		news.Category = entity.NewsGeneral
	}
	if news.Tags == nil {
		news.Tags = entity.StringSlice{}
	}
	news.ViewCount = 0
	news.CreatedAt = now
	news.UpdatedAt = now
	if news.IsPublished {
		news.PublishedAt = now
	}

	if err := setDocument(ctx, s.documents, newsCollection, news.ID, news.ToMap()); err != nil {
		return nil, err
	}
	s.logger.Infof("News created (news_id=%s, published=%t)", news.ID, news.IsPublished)
	if news.IsPublished {
		s.notify(ctx, &news)
	}
	return &news, nil
}

func (s *NewsService) Update(ctx context.Context, news *entity.News) (*entity.News, error) {
	exists, err := s.documents.Exists(ctx, newsCollection, news.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check news %s: %w", news.ID, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to update news %s: %w", news.ID, errorz.ErrNotFound)
	}
	news.UpdatedAt = s.clock.Now().UTC()
	if err = setDocument(ctx, s.documents, newsCollection, news.ID, news.ToMap()); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := deleteDocument(ctx, s.documents, newsCollection, id); err != nil {
		return err
	}
	s.logger.Infof("News deleted (news_id=%s)", id)
	return nil
}

// Publish makes a draft visible and announces it on the news topic.
func (s *NewsService) Publish(ctx context.Context, id string) (*entity.News, error) {
	news, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if news.IsPublished {
		return news, nil
	}
	now := s.clock.Now().UTC()
	news.IsPublished = true
	news.PublishedAt = now
	news.UpdatedAt = now
	if err = setDocument(ctx, s.documents, newsCollection, news.ID, news.ToMap()); err != nil {
		return nil, err
	}
	s.logger.Infof("News published (news_id=%s)", news.ID)
	s.notify(ctx, news)
	return news, nil
}

func (s *NewsService) GetByCategory(ctx context.Context, category entity.NewsCategory) ([]entity.News, error) {
	news, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(news, func(n entity.News) bool { return n.Category == category }), nil
}

func (s *NewsService) GetFeatured(ctx context.Context) ([]entity.News, error) {
	news, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(news, func(n entity.News) bool { return n.IsFeatured }), nil
}

// Search matches published articles by title, summary, content or tag.
func (s *NewsService) Search(ctx context.Context, query string) ([]entity.News, error) {
	news, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(news, func(n entity.News) bool {
		return containsFold(query, n.Title, n.Summary, n.Content) || n.HasTag(query)
	}), nil
}

func (s *NewsService) IncrementViews(ctx context.Context, id string) (*entity.News, error) {
	news, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	news.ViewCount++
	if err = setDocument(ctx, s.documents, newsCollection, news.ID, news.ToMap()); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) all(ctx context.Context) ([]entity.News, error) {
	news, err := getAllDocuments(ctx, s.documents, newsCollection, entity.NewsFromMap)
	if err != nil {
		return nil, err
	}
	sortBy(news, func(a, b entity.News) bool { return newsTime(a).After(newsTime(b)) })
	return news, nil
}

func (s *NewsService) notify(ctx context.Context, news *entity.News) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyNews(ctx, news); err != nil {
		s.logger.Errorf("failed to notify about news %s: %v", news.ID, err)
	}
}

func newsTime(n entity.News) time.Time {
	if n.PublishedAt.IsZero() {
		return n.CreatedAt
	}
	return n.PublishedAt
}
