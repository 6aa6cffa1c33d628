package simulate

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/pagebind/internal/logging"
	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/scroll"
)

// Event kinds recorded by a Recorder.
const (
	EventLoadNext         = "load_next"
	EventNoData           = "no_data"
	EventAllLoaded        = "all_loaded"
	EventEmptyVisible     = "empty_visible"
	EventRefreshIndicator = "refresh_indicator"
	EventRefreshEnabled   = "refresh_enabled"
	EventTrailingRow      = "trailing_row"
	EventLayout           = "layout"
	EventEmptyContent     = "empty_content"
	EventPost             = "post"
	EventDetectorAttached = "detector_attached"
)

// Event is one recorded callback or UI command.
type Event struct {
	Seq    int    `json:"seq"              yaml:"seq"`
	Step   string `json:"step"             yaml:"step"`
	Kind   string `json:"kind"             yaml:"kind"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// LoadRequest is the argument list of one OnLoadNext call.
type LoadRequest struct {
	NextPage    int `json:"next_page"    yaml:"next_page"`
	CurrentLoad int `json:"current_load" yaml:"current_load"`
	PageSize    int `json:"page_size"    yaml:"page_size"`
}

// Recorder implements pagination.PageBindingCallback and pagination.ListView
// without a terminal. It is not safe for concurrent use; give each
// controller its own Recorder.
type Recorder struct {
	events []Event
	step   string

	loads     []LoadRequest
	noData    int
	allLoaded int

	layout       *pagination.Layout
	content      *pagination.EmptyContent
	emptyVisible bool
	refreshing   bool
	refreshOn    bool
	onRefresh    func()
	posted       []func()
	detector     *scroll.Detector
	row          pagination.LoadingRow

	// OnLoad, when set, runs after every recorded OnLoadNext.
	OnLoad func(LoadRequest)

	logger zerolog.Logger
}

// NewRecorder creates an empty Recorder.
func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logging.ComponentLogger(logger, "recorder")}
}

// SetStep labels subsequent events with the step that caused them.
func (r *Recorder) SetStep(step string) {
	r.step = step
}

func (r *Recorder) record(kind, detail string) {
	ev := Event{Seq: len(r.events) + 1, Step: r.step, Kind: kind, Detail: detail}
	r.events = append(r.events, ev)
	r.logger.Debug().
		Int("seq", ev.Seq).
		Str("step", ev.Step).
		Str("kind", ev.Kind).
		Str("detail", ev.Detail).
		Msg("recorded")
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Loads returns every OnLoadNext call in order.
func (r *Recorder) Loads() []LoadRequest {
	out := make([]LoadRequest, len(r.loads))
	copy(out, r.loads)
	return out
}

// LastLoad returns the most recent OnLoadNext call.
func (r *Recorder) LastLoad() (LoadRequest, bool) {
	if len(r.loads) == 0 {
		return LoadRequest{}, false
	}
	return r.loads[len(r.loads)-1], true
}

// EmptyStateVisible reports the last empty-state command.
func (r *Recorder) EmptyStateVisible() bool {
	return r.emptyVisible
}

// Refreshing reports the last refresh indicator command.
func (r *Recorder) Refreshing() bool {
	return r.refreshing
}

// Detector returns the attached scroll detector, if any.
func (r *Recorder) Detector() *scroll.Detector {
	return r.detector
}

// TrailingRowVisible reports whether a list would show the loading row.
func (r *Recorder) TrailingRowVisible() bool {
	return r.row.Enabled && r.detector != nil && r.detector.HasMore()
}

// LayoutPass runs callbacks posted since the last pass.
func (r *Recorder) LayoutPass() {
	for len(r.posted) > 0 {
		fn := r.posted[0]
		r.posted = r.posted[1:]
		fn()
	}
}

// RequestRefresh simulates the user pulling to refresh.
func (r *Recorder) RequestRefresh() bool {
	if !r.refreshOn || r.refreshing {
		return false
	}
	r.SetRefreshIndicator(true)
	if r.onRefresh != nil {
		r.onRefresh()
	}
	return true
}

// The methods below implement pagination.PageBindingCallback.

// OnLoadNext records the load request.
func (r *Recorder) OnLoadNext(nextPage, currentLoadedItemCount, pageElementCount int) {
	req := LoadRequest{NextPage: nextPage, CurrentLoad: currentLoadedItemCount, PageSize: pageElementCount}
	r.loads = append(r.loads, req)
	r.record(EventLoadNext, fmt.Sprintf("page=%d current=%d size=%d", nextPage, currentLoadedItemCount, pageElementCount))
	if r.OnLoad != nil {
		r.OnLoad(req)
	}
}

// OnNoDataFound records the empty result.
func (r *Recorder) OnNoDataFound() {
	r.noData++
	r.record(EventNoData, "")
}

// OnAllItemLoaded records exhaustion.
func (r *Recorder) OnAllItemLoaded() {
	r.allLoaded++
	r.record(EventAllLoaded, "")
}

// ListView returns the Recorder itself.
func (r *Recorder) ListView() pagination.ListView {
	return r
}

// The methods below implement pagination.ListView.

// SetEmptyStateVisible records the empty-state command.
func (r *Recorder) SetEmptyStateVisible(visible bool) {
	r.emptyVisible = visible
	r.record(EventEmptyVisible, fmt.Sprint(visible))
}

// SetRefreshIndicator records the refresh indicator command.
func (r *Recorder) SetRefreshIndicator(active bool) {
	r.refreshing = active
	r.record(EventRefreshIndicator, fmt.Sprint(active))
}

// SetRefreshEnabled records whether refresh is allowed.
func (r *Recorder) SetRefreshEnabled(enabled bool) {
	r.refreshOn = enabled
	r.record(EventRefreshEnabled, fmt.Sprint(enabled))
}

// SetOnRefreshRequested stores the refresh callback.
func (r *Recorder) SetOnRefreshRequested(fn func()) {
	r.onRefresh = fn
}

// NotifyTrailingRowChanged records a trailing row repaint.
func (r *Recorder) NotifyTrailingRowChanged() {
	r.record(EventTrailingRow, fmt.Sprintf("visible=%t", r.TrailingRowVisible()))
}

// HasLayout reports whether a layout was set.
func (r *Recorder) HasLayout() bool {
	return r.layout != nil
}

// SetLayout records the layout.
func (r *Recorder) SetLayout(layout pagination.Layout) {
	r.layout = &layout
	r.record(EventLayout, fmt.Sprintf("columns=%d", layout.Columns))
}

// SetEmptyContent records the empty-state content.
func (r *Recorder) SetEmptyContent(content pagination.EmptyContent) {
	r.content = &content
	r.record(EventEmptyContent, content.Title.Resolve(nil))
}

// Post queues fn for the next LayoutPass.
func (r *Recorder) Post(fn func()) {
	r.posted = append(r.posted, fn)
	r.record(EventPost, "")
}

// AttachScrollDetector records the attachment.
func (r *Recorder) AttachScrollDetector(d *scroll.Detector, row pagination.LoadingRow) {
	r.detector = d
	r.row = row
	r.record(EventDetectorAttached, fmt.Sprintf("threshold=%d span=%d", d.Threshold(), row.Span))
}
