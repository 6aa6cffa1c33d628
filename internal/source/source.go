package source

import (
	"context"
	"errors"
	"fmt"
)

// Common source errors.
var (
	ErrInvalidOffset = errors.New("offset must be non-negative")
	ErrInvalidLimit  = errors.New("limit must be > 0")
)

// Item is one row of a paged list.
type Item struct {
	ID       int    `json:"id"       yaml:"id"`
	Page     int    `json:"page"     yaml:"page"`
	Title    string `json:"title"    yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

// Query selects a window of items.
type Query struct {
	Offset    int
	Limit     int
	SortField string
	SortOrder string
}

// Validate checks the window bounds.
func (q Query) Validate() error {
	if q.Offset < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, q.Offset)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, q.Limit)
	}
	return nil
}

// PageOf returns the 1-based page an offset falls on.
func PageOf(offset, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return offset/pageSize + 1
}

// Source returns windows of items.
type Source interface {
	// Name identifies the source in footers and logs.
	Name() string
	// Fetch returns at most q.Limit items starting at q.Offset.
	Fetch(ctx context.Context, q Query) ([]Item, error)
}
