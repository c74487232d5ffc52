package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
)

// Storage keeps every collection as one redis hash: field is the document id,
// value is the JSON encoding of the document map.
type Storage struct {
	redis     *redis.Client
	namespace string
}

func NewStorage(client *redis.Client, namespace string) *Storage {
	return &Storage{
		redis:     client,
		namespace: namespace,
	}
}

func (s *Storage) key(collection string) string {
	if s.namespace == "" {
		return collection
	}
	return fmt.Sprintf("%s:%s", s.namespace, collection)
}

// Set writes the whole document, replacing any previous version.
func (s *Storage) Set(ctx context.Context, collection, id string, doc map[string]interface{}) error {
	if id == "" {
		return fmt.Errorf("%w: document id is empty", errorz.ErrInvalidDocument)
	}
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}
	return s.redis.HSet(ctx, s.key(collection), id, docBytes).Err()
}

func (s *Storage) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	docData, err := s.redis.HGet(ctx, s.key(collection), id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, errorz.ErrNotFound)
		}
		return nil, err
	}
	return decode(collection, id, docData)
}

// GetAll returns every document of the collection ordered by id.
func (s *Storage) GetAll(ctx context.Context, collection string) ([]map[string]interface{}, error) {
	all, err := s.redis.HGetAll(ctx, s.key(collection)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]map[string]interface{}, 0, len(all))
	for _, id := range ids {
		doc, errDecode := decode(collection, id, all[id])
		if errDecode != nil {
			return nil, errDecode
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Storage) Delete(ctx context.Context, collection, id string) error {
	return s.redis.HDel(ctx, s.key(collection), id).Err()
}

func (s *Storage) Exists(ctx context.Context, collection, id string) (bool, error) {
	return s.redis.HExists(ctx, s.key(collection), id).Result()
}

func (s *Storage) Count(ctx context.Context, collection string) (int64, error) {
	return s.redis.HLen(ctx, s.key(collection)).Result()
}

func decode(collection, id, data string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", errorz.ErrInvalidDocument, collection, id, err)
	}
	return doc, nil
}
