package source

import (
	"context"
	"fmt"
	"time"
)

// Memory defaults mirror a small demo feed.
const (
	DefaultMaxItems = 50
	DefaultLatency  = 2 * time.Second
)

// Memory is a generated in-memory feed. It behaves like a slow API that
// stops returning items once MaxItems have been served.
type Memory struct {
	// MaxItems caps the feed; once an offset reaches it, Fetch returns nothing.
	MaxItems int
	// Latency is how long each Fetch takes.
	Latency time.Duration
	// Sort is applied to each returned window.
	Sorter *Sorter
}

// NewMemory creates a memory feed.
func NewMemory(maxItems int, latency time.Duration) *Memory {
	return &Memory{MaxItems: maxItems, Latency: latency, Sorter: NewSorter()}
}

// Name implements Source.
func (m *Memory) Name() string {
	return fmt.Sprintf("memory(%d)", m.MaxItems)
}

// Fetch implements Source.
func (m *Memory) Fetch(ctx context.Context, q Query) ([]Item, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if m.Latency > 0 {
		timer := time.NewTimer(m.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if q.Offset >= m.MaxItems {
		return []Item{}, nil
	}
	end := min(q.Offset+q.Limit, m.MaxItems)

	if m.Sorter == nil || q.SortField == "" {
		return generate(q.Offset, end, q.Limit), nil
	}

	// The order is global, so the whole feed is sorted before the window is cut.
	all := m.Sorter.Sort(generate(0, m.MaxItems, q.Limit), q.SortField, q.SortOrder)
	window := make([]Item, end-q.Offset)
	copy(window, all[q.Offset:end])
	return window, nil
}

// generate builds the items at positions [from, to) for pages of pageSize.
func generate(from, to, pageSize int) []Item {
	items := make([]Item, 0, to-from)
	for i := from; i < to; i++ {
		page := PageOf(i, pageSize)
		items = append(items, Item{
			ID:       i + 1,
			Page:     page,
			Title:    fmt.Sprintf("Page : %d", page),
			Subtitle: fmt.Sprintf("page element number :- #%d", i%pageSize+1),
		})
	}
	return items
}
