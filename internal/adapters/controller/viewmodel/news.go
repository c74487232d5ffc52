package viewmodel

import (
	"context"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/validator"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type newsService interface {
	GetAll(ctx context.Context) ([]entity.News, error)
	Get(ctx context.Context, id string) (*entity.News, error)
	Create(ctx context.Context, news entity.News) (*entity.News, error)
	Publish(ctx context.Context, id string) (*entity.News, error)
	GetByCategory(ctx context.Context, category entity.NewsCategory) ([]entity.News, error)
	Search(ctx context.Context, query string) ([]entity.News, error)
	IncrementViews(ctx context.Context, id string) (*entity.News, error)
}

// NewsViewModel backs the news feed and article screens.
type NewsViewModel struct {
	*scope

	session  Session
	news     newsService
	clock    clockwork.Clock
	pageSize int

	mu       sync.Mutex
	category entity.NewsCategory

	Article *Store[ItemState[entity.News]]
	Feed    *Store[ListState[entity.News]]
}

func NewNewsViewModel(
	ctx context.Context,
	logger *types.Logger,
	session Session,
	news newsService,
	clock clockwork.Clock,
	pageSize int,
) *NewsViewModel {
	return &NewsViewModel{
		scope:    newScope(ctx, logger),
		session:  session,
		news:     news,
		clock:    clock,
		pageSize: pageSize,
		Article:  NewStore(ItemState[entity.News]{}),
		Feed:     NewStore(ListState[entity.News]{}),
	}
}

func newsID(n entity.News) string { return n.ID }

// LoadNews shows the first page of the feed, restricted to the current category filter.
func (vm *NewsViewModel) LoadNews() {
	vm.launch(func(ctx context.Context) { vm.loadNews(ctx, false) })
}

func (vm *NewsViewModel) LoadMore() {
	vm.launch(func(ctx context.Context) { vm.loadNews(ctx, true) })
}

// FilterByCategory switches the feed to one category; an empty category shows everything.
func (vm *NewsViewModel) FilterByCategory(category entity.NewsCategory) {
	vm.mu.Lock()
	vm.category = category
	vm.mu.Unlock()
	vm.LoadNews()
}

func (vm *NewsViewModel) loadNews(ctx context.Context, more bool) {
	vm.mu.Lock()
	category := vm.category
	vm.mu.Unlock()

	fetch := vm.news.GetAll
	if category != "" {
		fetch = func(ctx context.Context) ([]entity.News, error) {
			return vm.news.GetByCategory(ctx, category)
		}
	}
	loadPage(ctx, vm.scope, vm.Feed, "load news", fetch, newsID, vm.pageSize, more)
}

func (vm *NewsViewModel) Search(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		vm.LoadNews()
		return
	}
	vm.launch(func(ctx context.Context) {
		listLoading(vm.Feed)
		news, err := vm.news.Search(ctx, query)
		if err != nil {
			listFailed(vm.scope, vm.Feed, "search news", err)
			return
		}
		vm.Feed.Set(ListState[entity.News]{Status: StatusSuccess, Items: news})
	})
}

// LoadArticle opens an article and counts the view.
func (vm *NewsViewModel) LoadArticle(id string) {
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Article)
		article, err := vm.news.IncrementViews(ctx, id)
		itemDone(vm.scope, vm.Article, "load article", article, err, false)
	})
}

// CreateArticle stores the article, published right away when publish is set.
func (vm *NewsViewModel) CreateArticle(form validator.NewsForm, summary string, tags []string, publish bool) {
	if !allowed(vm.scope, vm.session, vm.Article, policy.ActionPublishNews) || !validForm(vm.Article, form, vm.clock.Now()) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Article)
		article, err := vm.news.Create(ctx, entity.News{
			Title:       strings.TrimSpace(form.Title),
			Summary:     strings.TrimSpace(summary),
			Content:     form.Content,
			Category:    entity.NewsCategory(form.Category),
			Tags:        tags,
			AuthorID:    vm.session.UserID,
			AuthorName:  vm.session.Name,
			IsPublished: publish,
		})
		if itemDone(vm.scope, vm.Article, "create article", article, err, true) && publish {
			vm.loadNews(ctx, false)
		}
	})
}

func (vm *NewsViewModel) Publish(id string) {
	if !allowed(vm.scope, vm.session, vm.Article, policy.ActionPublishNews) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Article)
		article, err := vm.news.Publish(ctx, id)
		if itemDone(vm.scope, vm.Article, "publish article", article, err, true) {
			vm.loadNews(ctx, false)
		}
	})
}

func (vm *NewsViewModel) ClearResult() {
	clearResult(vm.Article)
}
