package pagination

// State is the pagination session owned by a Controller.
type State struct {
	// PageElementCount is the number of items expected per page.
	PageElementCount int `json:"page_element_count" yaml:"page_element_count"`

	// Page is the index of the last successfully completed page.
	Page int `json:"page" yaml:"page"`

	// TotalLoadedItems is the total reported by the most recent load-finish.
	TotalLoadedItems int `json:"total_loaded_items" yaml:"total_loaded_items"`

	// Loading is true between a load-more trigger and its load-finish.
	Loading bool `json:"loading" yaml:"loading"`

	// Enabled is true while further pages may be requested.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// newState returns a fresh session for the given page size.
func newState(pageElementCount int) State {
	return State{
		PageElementCount: pageElementCount,
		Enabled:          true,
	}
}
