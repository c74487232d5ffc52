package viewmodel

// DefaultPageSize is the number of list items shown before "load more".
const DefaultPageSize = 20

// nextPage appends up to size items of fetched whose ID is not in current yet.
// The whole collection is fetched every time; there is no server cursor.
func nextPage[T any](current, fetched []T, id func(T) string, size int) ([]T, bool) {
	if size <= 0 {
		size = DefaultPageSize
	}
	seen := make(map[string]struct{}, len(current))
	for _, item := range current {
		seen[id(item)] = struct{}{}
	}

	out := append([]T(nil), current...)
	added := 0
	hasMore := false
	for _, item := range fetched {
		if _, ok := seen[id(item)]; ok {
			continue
		}
		if added == size {
			hasMore = true
			break
		}
		out = append(out, item)
		added++
	}
	return out, hasMore
}
