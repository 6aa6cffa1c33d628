package source

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// Sort parsing errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'title:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Sorter sorts items by a whitelisted field.
type Sorter struct {
	validFields map[string]bool
}

// NewSorter creates a Sorter for the Item fields.
func NewSorter() *Sorter {
	return &Sorter{
		validFields: map[string]bool{
			"id":       true,
			"page":     true,
			"title":    true,
			"subtitle": true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *Sorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *Sorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of items. An unknown field returns items unchanged.
func (s *Sorter) Sort(items []Item, field, order string) []Item {
	if !s.IsValidField(field) {
		return items
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if order == SortOrderDesc {
			i, j = j, i
		}

		switch field {
		case "id":
			return sorted[i].ID < sorted[j].ID
		case "page":
			return sorted[i].Page < sorted[j].Page
		case "title":
			return sorted[i].Title < sorted[j].Title
		case "subtitle":
			return sorted[i].Subtitle < sorted[j].Subtitle
		default:
			return false
		}
	})

	return sorted
}

// ParseSort parses a sort string in the format "field" or "field:order".
// The order defaults to ascending. An empty string means no sorting.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (s *Sorter) ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", SortOrderAsc, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	if !s.IsValidField(field) {
		return "", "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field,
			strings.Join(s.GetValidFields(), ", "))
	}

	return field, order, nil
}
