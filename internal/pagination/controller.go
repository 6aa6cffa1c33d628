package pagination

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Controller bridges scroll-triggered load requests and host-reported results.
// It is the single source of truth for whether pagination is active.
type Controller struct {
	state            State
	callback         PageBindingCallback
	emptyViewEnabled bool
	session          ulid.ULID
	stopped          string
	logger           zerolog.Logger
}

// newController creates a controller with a fresh session.
func newController(pageElementCount int, callback PageBindingCallback, logger zerolog.Logger) *Controller {
	return &Controller{
		state:            newState(pageElementCount),
		callback:         callback,
		emptyViewEnabled: true,
		session:          ulid.Make(),
		logger:           logger,
	}
}

// OnScrollNearEnd requests the next page from the host. It does nothing while
// a load is in progress or pagination is disabled.
func (c *Controller) OnScrollNearEnd() {
	if c.state.Loading || !c.state.Enabled {
		return
	}

	c.state.Loading = true
	next := c.state.Page + 1

	c.logger.Debug().
		Str("session_id", c.session.String()).
		Int("next_page", next).
		Int("total", c.state.TotalLoadedItems).
		Int("page_size", c.state.PageElementCount).
		Msg("requesting next page")

	c.callback.OnLoadNext(next, c.state.TotalLoadedItems, c.state.PageElementCount)
}

// LoadFinished reconciles a completed load. total is the number of items the
// host now holds. A zero total ends the session as empty; a total equal to the
// previous one ends it as exhausted; anything else completes a page.
//
// A total lower than the previous one also completes a page and is stored as
// the new total, so TotalLoadedItems is not monotonic for a host that drops
// items mid-session. Hosts that shrink their list should Reset instead if
// the page count must only track strictly growing totals.
func (c *Controller) LoadFinished(total int) error {
	if total < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeTotal, total)
	}
	if !c.state.Loading {
		return ErrNotLoading
	}

	lv := c.callback.ListView()

	c.state.Loading = false
	lv.SetRefreshIndicator(false)

	log := c.logger.Debug().
		Str("session_id", c.session.String()).
		Int("previous_total", c.state.TotalLoadedItems).
		Int("total", total)

	switch {
	case total == 0:
		c.state.Enabled = false
		c.stopped = PhaseEmpty
		c.callback.OnNoDataFound()
		if c.emptyViewEnabled {
			lv.SetEmptyStateVisible(true)
		}
		log.Msg("no data found")

	case total == c.state.TotalLoadedItems:
		if c.emptyViewEnabled {
			lv.SetEmptyStateVisible(false)
		}
		c.callback.OnAllItemLoaded()
		c.SetEnabled(false)
		c.stopped = PhaseExhausted
		log.Int("page", c.state.Page).Msg("all items loaded")

	default:
		if c.emptyViewEnabled {
			lv.SetEmptyStateVisible(false)
		}
		c.state.Page++
		log.Int("page", c.state.Page).Msg("page loaded")
	}

	// Must stay last: the exhaustion check above compares against the previous total.
	c.state.TotalLoadedItems = total
	return nil
}

// Reset starts a new session with the given page size.
func (c *Controller) Reset(pageElementCount int) error {
	if pageElementCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageElementCount)
	}

	c.state = newState(pageElementCount)
	c.session = ulid.Make()
	c.stopped = ""

	lv := c.callback.ListView()
	lv.NotifyTrailingRowChanged()
	lv.SetEmptyStateVisible(false)

	c.logger.Debug().
		Str("session_id", c.session.String()).
		Int("page_size", pageElementCount).
		Msg("pagination reset")
	return nil
}

// SetEnabled forces pagination on or off and repaints the trailing row.
func (c *Controller) SetEnabled(enabled bool) {
	c.state.Enabled = enabled
	if enabled {
		c.stopped = ""
	} else {
		c.stopped = PhaseDisabled
	}
	c.callback.ListView().NotifyTrailingRowChanged()
}

// CurrentPage returns the index of the last completed page.
func (c *Controller) CurrentPage() int {
	return c.state.Page
}

// IsLoading reports whether a page request is outstanding.
func (c *Controller) IsLoading() bool {
	return c.state.Loading
}

// IsEnabled reports whether further pages may be requested.
func (c *Controller) IsEnabled() bool {
	return c.state.Enabled
}

// TotalLoadedItems returns the total reported by the last load-finish.
func (c *Controller) TotalLoadedItems() int {
	return c.state.TotalLoadedItems
}

// PageElementCount returns the current page size.
func (c *Controller) PageElementCount() int {
	return c.state.PageElementCount
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	return c.state
}

// SessionID identifies the current session. It changes on every Reset, so
// hosts can tag in-flight loads and discard results from an older session.
func (c *Controller) SessionID() ulid.ULID {
	return c.session
}
