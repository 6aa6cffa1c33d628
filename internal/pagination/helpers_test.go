package pagination_test

import (
	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/scroll"
)

// loadCall records one OnLoadNext dispatch.
type loadCall struct {
	NextPage, Current, PageSize int
}

// fakeList records every UI command the controller issues.
type fakeList struct {
	emptyVisible     bool
	emptyCalls       []bool
	refreshing       bool
	refreshEnabled   bool
	onRefresh        func()
	trailingRepaints int
	layout           *pagination.Layout
	content          *pagination.EmptyContent
	posted           []func()
	detector         *scroll.Detector
	row              pagination.LoadingRow
}

func (f *fakeList) SetEmptyStateVisible(v bool) {
	f.emptyVisible = v
	f.emptyCalls = append(f.emptyCalls, v)
}
func (f *fakeList) SetRefreshIndicator(active bool) { f.refreshing = active }
func (f *fakeList) SetRefreshEnabled(enabled bool) { f.refreshEnabled = enabled }
func (f *fakeList) SetOnRefreshRequested(fn func()) { f.onRefresh = fn }
func (f *fakeList) NotifyTrailingRowChanged() { f.trailingRepaints++ }
func (f *fakeList) HasLayout() bool { return f.layout != nil }
func (f *fakeList) SetLayout(l pagination.Layout) { f.layout = &l }
func (f *fakeList) Post(fn func()) { f.posted = append(f.posted, fn) }
func (f *fakeList) SetEmptyContent(c pagination.EmptyContent) {
	f.content = &c
}
func (f *fakeList) AttachScrollDetector(d *scroll.Detector, row pagination.LoadingRow) {
	f.detector = d
	f.row = row
}

// layoutPass runs posted callbacks, as a real list does after laying out.
func (f *fakeList) layoutPass() {
	posted := f.posted
	f.posted = nil
	for _, fn := range posted {
		fn()
	}
}

// fakeHost implements PageBindingCallback.
type fakeHost struct {
	list      *fakeList
	loads     []loadCall
	noData    int
	allLoaded int
	onLoad    func(call loadCall)
}

func newFakeHost() *fakeHost {
	return &fakeHost{list: &fakeList{}}
}

func (h *fakeHost) OnLoadNext(nextPage, current, pageSize int) {
	call := loadCall{NextPage: nextPage, Current: current, PageSize: pageSize}
	h.loads = append(h.loads, call)
	if h.onLoad != nil {
		h.onLoad(call)
	}
}
func (h *fakeHost) OnNoDataFound() { h.noData++ }
func (h *fakeHost) OnAllItemLoaded() { h.allLoaded++ }
func (h *fakeHost) ListView() pagination.ListView { return h.list }

func (h *fakeHost) lastLoad() loadCall {
	if len(h.loads) == 0 {
		return loadCall{}
	}
	return h.loads[len(h.loads)-1]
}
