package scroll

// DefaultThreshold is the number of items from the end that triggers a load.
const DefaultThreshold = 1

// Target is the read/trigger surface a Detector drives.
type Target interface {
	// IsLoading reports whether a page request is outstanding.
	IsLoading() bool
	// IsEnabled reports whether further pages may be requested.
	IsEnabled() bool
	// OnScrollNearEnd signals that the viewport is near the end of the list.
	OnScrollNearEnd()
}

// Viewport describes the visible window of a list, in item units.
type Viewport struct {
	// TotalItems is the number of data items, excluding any loading row.
	TotalItems int
	// FirstVisible is the index of the first visible item.
	FirstVisible int
	// VisibleCount is the number of items currently visible.
	VisibleCount int
}

// Detector fires its Target when a viewport comes within threshold items of
// the end of the list.
type Detector struct {
	target    Target
	threshold int
}

// NewDetector creates a Detector. A negative threshold is treated as zero.
func NewDetector(target Target, threshold int) *Detector {
	if threshold < 0 {
		threshold = 0
	}
	return &Detector{target: target, threshold: threshold}
}

// Threshold returns the configured trigger distance.
func (d *Detector) Threshold() int {
	return d.threshold
}

// HasMore reports whether the list should keep showing its trailing loading row.
func (d *Detector) HasMore() bool {
	return d.target.IsEnabled()
}

// NearEnd reports whether v is within the trigger distance of the end.
// An empty list is always near its end.
func (d *Detector) NearEnd(v Viewport) bool {
	if v.TotalItems == 0 {
		return true
	}
	return v.TotalItems-v.VisibleCount <= v.FirstVisible+d.threshold
}

// Check evaluates v and signals the target when it is near the end, enabled
// and idle. It returns true when the target was signalled.
func (d *Detector) Check(v Viewport) bool {
	if d.target.IsLoading() || !d.target.IsEnabled() {
		return false
	}
	if !d.NearEnd(v) {
		return false
	}
	d.target.OnScrollNearEnd()
	return true
}
