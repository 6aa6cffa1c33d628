package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/scroll"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *pagination.Options)
		wantErr error
	}{
		{name: "defaults", mutate: func(*pagination.Options) {}},
		{name: "zero threshold", mutate: func(o *pagination.Options) { o.Threshold = 0 }},
		{
			name:    "zero page size",
			mutate:  func(o *pagination.Options) { o.PageElementCount = 0 },
			wantErr: pagination.ErrInvalidPageSize,
		},
		{
			name:    "negative page size",
			mutate:  func(o *pagination.Options) { o.PageElementCount = -5 },
			wantErr: pagination.ErrInvalidPageSize,
		},
		{
			name:    "negative threshold",
			mutate:  func(o *pagination.Options) { o.Threshold = -1 },
			wantErr: pagination.ErrInvalidThreshold,
		},
		{
			name:    "zero span",
			mutate:  func(o *pagination.Options) { o.LoadingRowSpan = 0 },
			wantErr: pagination.ErrInvalidSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pagination.DefaultOptions(5)
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuilder_FluentSetters(t *testing.T) {
	refreshed := 0
	b := pagination.BuildWith(5, newFakeHost()).
		SetPageElementCount(20).
		SetThreshold(3).
		SetRefreshEnabled(false).
		SetEmptyViewEnabled(false).
		SetLoadingRowEnabled(false).
		SetLoadingRowSpan(2).
		SetOnRefresh(func() { refreshed++ }).
		SetEmptyTitle(pagination.Ref("empty.title")).
		SetEmptyMessage(pagination.Literal("Nothing here")).
		SetEmptyImage(pagination.Literal("∅")).
		SetEmptyTitleColor("205").
		SetEmptyMessageColor("240")

	opts := b.Options()
	assert.Equal(t, 20, opts.PageElementCount)
	assert.Equal(t, 3, opts.Threshold)
	assert.False(t, opts.RefreshEnabled)
	assert.False(t, opts.EmptyViewEnabled)
	assert.False(t, opts.LoadingRowEnabled)
	assert.Equal(t, 2, opts.LoadingRowSpan)
	assert.Equal(t, "empty.title", opts.Empty.Title.Ref)
	assert.Equal(t, "Nothing here", opts.Empty.Message.Literal)
	assert.Equal(t, "∅", opts.Empty.Image.Literal)
	assert.Equal(t, "205", opts.Empty.TitleColor)
	assert.Equal(t, "240", opts.Empty.MessageColor)

	opts.OnRefresh()
	assert.Equal(t, 1, refreshed)
}

func TestBuilder_BuildWiresListView(t *testing.T) {
	host := newFakeHost()
	refreshed := false

	ctrl, err := pagination.BuildWith(5, host).
		SetRefreshEnabled(true).
		SetOnRefresh(func() { refreshed = true }).
		SetEmptyTitle(pagination.Literal("No data")).
		Build()
	require.NoError(t, err)
	require.NotNil(t, ctrl)

	l := host.list
	assert.True(t, l.refreshEnabled)
	require.NotNil(t, l.onRefresh)
	l.onRefresh()
	assert.True(t, refreshed)

	require.NotNil(t, l.content)
	assert.Equal(t, "No data", l.content.Title.Literal)

	require.NotNil(t, l.layout, "a default layout is assigned")
	assert.Equal(t, pagination.LinearLayout(), *l.layout)
	assert.False(t, l.emptyVisible)

	assert.Nil(t, l.detector, "detector attaches after the layout pass")
	l.layoutPass()
	require.NotNil(t, l.detector)
	assert.Equal(t, pagination.DefaultThreshold, l.detector.Threshold())
	assert.True(t, l.row.Enabled)
}

func TestBuilder_KeepsExistingLayout(t *testing.T) {
	host := newFakeHost()
	grid := pagination.GridLayout(3)
	host.list.layout = &grid

	_, err := pagination.BuildWith(5, host).Build()
	require.NoError(t, err)

	assert.Equal(t, 3, host.list.layout.Columns)
}

func TestBuilder_BuildErrors(t *testing.T) {
	t.Run("invalid page size", func(t *testing.T) {
		host := newFakeHost()
		_, err := pagination.BuildWith(0, host).Build()
		require.ErrorIs(t, err, pagination.ErrInvalidPageSize)
		assert.Nil(t, host.list.layout, "nothing is bound on failure")
	})

	t.Run("nil callback", func(t *testing.T) {
		_, err := pagination.BuildWith(5, nil).Build()
		require.ErrorIs(t, err, pagination.ErrNilCallback)
	})

	t.Run("nil list view", func(t *testing.T) {
		_, err := pagination.BuildWith(5, nilListHost{}).Build()
		require.ErrorIs(t, err, pagination.ErrNilListView)
	})
}

func TestBuilder_BuildTwiceIsIndependent(t *testing.T) {
	host := newFakeHost()
	b := pagination.BuildWith(5, host)

	first, err := b.Build()
	require.NoError(t, err)
	b.SetPageElementCount(50)
	second, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 5, first.PageElementCount())
	assert.Equal(t, 50, second.PageElementCount())
	assert.NotEqual(t, first.SessionID(), second.SessionID())

	first.OnScrollNearEnd()
	assert.True(t, first.IsLoading())
	assert.False(t, second.IsLoading())
}

func TestBuilder_LoadingRowRenderer(t *testing.T) {
	host := newFakeHost()
	ctrl, err := pagination.BuildWith(5, host).
		SetLoadingRowRenderer(func(next int) string {
			return "Loading Page : " + string(rune('0'+next))
		}).
		Build()
	require.NoError(t, err)
	host.list.layoutPass()

	require.NotNil(t, host.list.row.Render)
	assert.Equal(t, "Loading Page : 1", host.list.row.Render())

	ctrl.OnScrollNearEnd()
	require.NoError(t, ctrl.LoadFinished(5))
	assert.Equal(t, "Loading Page : 2", host.list.row.Render())
}

func TestBuilder_DefaultLoadingRowText(t *testing.T) {
	_, host := newBound(t, 5)

	require.NotNil(t, host.list.row.Render)
	assert.Equal(t, "Loading page 1…", host.list.row.Render())
}

func TestBuilder_DetectorDrivesController(t *testing.T) {
	ctrl, host := newBound(t, 5)
	d := host.list.detector

	assert.True(t, d.Check(scroll.Viewport{}))
	assert.True(t, ctrl.IsLoading())
	assert.False(t, d.Check(scroll.Viewport{}), "suppressed while loading")

	require.NoError(t, ctrl.LoadFinished(0))
	assert.False(t, d.Check(scroll.Viewport{}), "suppressed once empty")
	assert.Len(t, host.loads, 1)
}

func TestText_Resolve(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == "known" {
			return "resolved", true
		}
		return "", false
	}

	assert.Equal(t, "plain", pagination.Literal("plain").Resolve(lookup))
	assert.Equal(t, "resolved", pagination.Ref("known").Resolve(lookup))
	assert.Empty(t, pagination.Ref("missing").Resolve(lookup))
	assert.Equal(t, "fallback", pagination.Text{Ref: "missing", Literal: "fallback"}.Resolve(lookup))
	assert.True(t, pagination.Text{}.IsZero())
}

func TestGridLayout(t *testing.T) {
	assert.Equal(t, 1, pagination.GridLayout(0).Columns)
	assert.True(t, pagination.GridLayout(2).IsGrid())
	assert.False(t, pagination.LinearLayout().IsGrid())
}

type nilListHost struct{}

func (nilListHost) OnLoadNext(int, int, int) {}
func (nilListHost) OnNoDataFound() {}
func (nilListHost) OnAllItemLoaded() {}
func (nilListHost) ListView() pagination.ListView { return nil }
