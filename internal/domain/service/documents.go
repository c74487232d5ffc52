package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

// Collections of the remote store.
const (
	usersCollection              = "users"
	teamsCollection              = "teams"
	playersCollection            = "players"
	eventsCollection             = "events"
	matchesCollection            = "matches"
	liveGamesCollection          = "live_games"
	gameResultsCollection        = "game_results"
	newsCollection               = "news"
	roleChangeRequestsCollection = "role_change_requests"
)

// DocumentStore is the remote document store the repositories read and write.
type DocumentStore interface {
	Set(ctx context.Context, collection, id string, doc map[string]interface{}) error
	Get(ctx context.Context, collection, id string) (map[string]interface{}, error)
	GetAll(ctx context.Context, collection string) ([]map[string]interface{}, error)
	Delete(ctx context.Context, collection, id string) error
	Exists(ctx context.Context, collection, id string) (bool, error)
}

type fromMapFunc[T any] func(entity.Document) (*T, error)

func getDocument[T any](ctx context.Context, store DocumentStore, collection, id string, fromMap fromMapFunc[T]) (*T, error) {
	doc, err := store.Get(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	v, err := fromMap(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return v, nil
}

func getAllDocuments[T any](ctx context.Context, store DocumentStore, collection string, fromMap fromMapFunc[T]) ([]T, error) {
	docs, err := store.GetAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := fromMap(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		out = append(out, *v)
	}
	return out, nil
}

func setDocument(ctx context.Context, store DocumentStore, collection, id string, doc entity.Document) error {
	if err := store.Set(ctx, collection, id, doc); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", collection, id, err)
	}
	return nil
}

func deleteDocument(ctx context.Context, store DocumentStore, collection, id string) error {
	exists, err := store.Exists(ctx, collection, id)
	if err != nil {
		return fmt.Errorf("failed to check %s/%s: %w", collection, id, err)
	}
	if !exists {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, errorz.ErrNotFound)
	}
	if err = store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// containsFold reports whether any of fields contains query, ignoring case.
// An empty query matches everything.
func containsFold(query string, fields ...string) bool {
	query = strings.ToLower(query)
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
