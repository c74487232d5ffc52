package viewmodel

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_Subscribe(t *testing.T) {
	store := NewStore(ListState[string]{})
	ctx, cancel := context.WithCancel(context.Background())
	updates := store.Subscribe(ctx)

	initial := <-updates
	assert.Equal(t, StatusIdle, initial.Status)

	store.Set(ListState[string]{Status: StatusLoading})
	store.Set(ListState[string]{Status: StatusSuccess, Items: []string{"a"}})

	latest := <-updates
	assert.Equal(t, StatusSuccess, latest.Status)
	assert.Equal(t, []string{"a"}, latest.Items)

	cancel()
	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription was not closed")
	}

	store.Set(ListState[string]{Status: StatusError})
	assert.Equal(t, StatusError, store.Get().Status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
}

func TestNextPage(t *testing.T) {
	all := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		all = append(all, fmt.Sprintf("id-%d", i))
	}
	id := func(s string) string { return s }

	page, hasMore := nextPage(nil, all, id, 2)
	assert.Equal(t, []string{"id-1", "id-2"}, page)
	assert.True(t, hasMore)

	page, hasMore = nextPage(page, all, id, 2)
	assert.Equal(t, []string{"id-1", "id-2", "id-3", "id-4"}, page)
	assert.True(t, hasMore)

	page, hasMore = nextPage(page, all, id, 2)
	assert.Len(t, page, 5)
	assert.False(t, hasMore)

	// A new item at the front of the collection is picked up by the next page.
	page, hasMore = nextPage(page, append([]string{"id-0"}, all...), id, 2)
	assert.Equal(t, "id-0", page[5])
	assert.False(t, hasMore)
}
