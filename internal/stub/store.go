package stub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"navident-console/internal/domain/entity"
)

// collection is an in-memory table for one entity. Records are kept behind a
// RWMutex and always copied on the way in and out, so handlers never share
// pointers with the store.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T

	id         func(*T) string
	setID      func(*T, string)
	created    func(*T) time.Time
	setCreated func(*T, time.Time)
	match      func(*T, string) bool
}

func newCollection[T any](
	id func(*T) string,
	setID func(*T, string),
	created func(*T) time.Time,
	setCreated func(*T, time.Time),
	match func(*T, string) bool,
) *collection[T] {
	return &collection[T]{
		items:      map[string]T{},
		id:         id,
		setID:      setID,
		created:    created,
		setCreated: setCreated,
		match:      match,
	}
}

func (c *collection[T]) Insert(record T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setID(&record, uuid.New().String())
	if c.created(&record).IsZero() {
		c.setCreated(&record, time.Now())
	}
	c.items[c.id(&record)] = record
	return record
}

func (c *collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.items[id]
	return record, ok
}

// Update replaces the stored record, preserving its id and creation time.
func (c *collection[T]) Update(id string, record T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}

	c.setID(&record, id)
	c.setCreated(&record, c.created(&existing))
	c.items[id] = record
	return record, true
}

func (c *collection[T]) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// List returns one page sorted by creation time, newest first unless sortDir
// is "asc".
func (c *collection[T]) List(page, size int, sortDir string) *entity.Page[T] {
	all := c.sorted(sortDir)

	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	total := len(all)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return &entity.Page[T]{
		Content:       all[start:end],
		TotalElements: int64(total),
		TotalPages:    totalPages,
	}
}

// Search returns every record whose match function accepts the query,
// case-insensitively.
func (c *collection[T]) Search(query string) []T {
	query = strings.ToLower(query)
	return c.Filter(func(record *T) bool {
		return c.match(record, query)
	})
}

func (c *collection[T]) Filter(keep func(*T) bool) []T {
	c.mu.RLock()
	out := make([]T, 0, len(c.items))
	for _, record := range c.items {
		if keep(&record) {
			out = append(out, record)
		}
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return c.created(&out[i]).After(c.created(&out[j]))
	})
	return out
}

// Mutate applies fn to every stored record under the write lock.
func (c *collection[T]) Mutate(fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, record := range c.items {
		fn(&record)
		c.items[id] = record
	}
}

func (c *collection[T]) sorted(sortDir string) []T {
	c.mu.RLock()
	all := make([]T, 0, len(c.items))
	for _, record := range c.items {
		all = append(all, record)
	}
	c.mu.RUnlock()

	asc := strings.EqualFold(sortDir, "asc")
	sort.Slice(all, func(i, j int) bool {
		if asc {
			return c.created(&all[i]).Before(c.created(&all[j]))
		}
		return c.created(&all[i]).After(c.created(&all[j]))
	})
	return all
}

// contains is the building block for the per-entity match functions.
func contains(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
