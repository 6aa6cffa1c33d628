package pagination

// Session phases reported by Meta.
const (
	PhaseIdle      = "idle"
	PhaseLoading   = "loading"
	PhaseEmpty     = "empty"
	PhaseExhausted = "exhausted"
	PhaseDisabled  = "disabled"
)

// Meta summarises a controller for footers, logs and reports.
type Meta struct {
	SessionID   string `json:"session_id"   yaml:"session_id"`
	CurrentPage int    `json:"current_page" yaml:"current_page"`
	NextPage    int    `json:"next_page"    yaml:"next_page"`
	PageSize    int    `json:"page_size"    yaml:"page_size"`
	TotalItems  int    `json:"total_items"  yaml:"total_items"`
	Loading     bool   `json:"loading"      yaml:"loading"`
	HasNext     bool   `json:"has_next"     yaml:"has_next"`
	Phase       string `json:"phase"        yaml:"phase"`
}

// Meta returns a snapshot of the controller.
func (c *Controller) Meta() Meta {
	return NewMeta(c.state, c.session.String(), c.stopped)
}

// NewMeta derives metadata from a state snapshot. stopped is the phase the
// session ended in and is only consulted once pagination is disabled.
func NewMeta(s State, sessionID, stopped string) Meta {
	return Meta{
		SessionID:   sessionID,
		CurrentPage: s.Page,
		NextPage:    s.Page + 1,
		PageSize:    s.PageElementCount,
		TotalItems:  s.TotalLoadedItems,
		Loading:     s.Loading,
		HasNext:     s.Enabled,
		Phase:       phaseOf(s, stopped),
	}
}

func phaseOf(s State, stopped string) string {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Enabled:
		return PhaseIdle
	case stopped != "":
		return stopped
	default:
		return PhaseDisabled
	}
}
