package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagebind/internal/pagination"
)

func newBound(t *testing.T, pageSize int) (*pagination.Controller, *fakeHost) {
	t.Helper()
	host := newFakeHost()
	ctrl, err := pagination.BuildWith(pageSize, host).Build()
	require.NoError(t, err)
	host.list.layoutPass()
	return ctrl, host
}

func TestController_InitialState(t *testing.T) {
	ctrl, _ := newBound(t, 5)

	assert.Equal(t, pagination.State{PageElementCount: 5, Enabled: true}, ctrl.State())
	assert.Equal(t, 0, ctrl.CurrentPage())
	assert.False(t, ctrl.IsLoading())
	assert.True(t, ctrl.IsEnabled())
}

func TestController_StrictlyIncreasingTotalsAdvancePage(t *testing.T) {
	ctrl, host := newBound(t, 5)

	for i, total := range []int{5, 10, 15, 17, 40} {
		ctrl.OnScrollNearEnd()
		require.True(t, ctrl.IsLoading())
		require.NoError(t, ctrl.LoadFinished(total))

		assert.Equal(t, i+1, ctrl.CurrentPage())
		assert.Equal(t, total, ctrl.TotalLoadedItems())
		assert.True(t, ctrl.IsEnabled())
		assert.False(t, ctrl.IsLoading())
	}
	assert.Len(t, host.loads, 5)
	assert.Zero(t, host.allLoaded)
	assert.Zero(t, host.noData)
}

func TestController_OnLoadNextArguments(t *testing.T) {
	ctrl, host := newBound(t, 7)

	ctrl.OnScrollNearEnd()
	assert.Equal(t, loadCall{NextPage: 1, Current: 0, PageSize: 7}, host.lastLoad())
	require.NoError(t, ctrl.LoadFinished(7))

	ctrl.OnScrollNearEnd()
	assert.Equal(t, loadCall{NextPage: 2, Current: 7, PageSize: 7}, host.lastLoad())
}

func TestController_ZeroTotalIsEmpty(t *testing.T) {
	ctrl, host := newBound(t, 5)

	ctrl.OnScrollNearEnd()
	require.NoError(t, ctrl.LoadFinished(0))

	assert.False(t, ctrl.IsEnabled())
	assert.Equal(t, 1, host.noData)
	assert.True(t, host.list.emptyVisible)
	assert.Equal(t, pagination.PhaseEmpty, ctrl.Meta().Phase)

	ctrl.OnScrollNearEnd()
	assert.Len(t, host.loads, 1, "disabled controller must not dispatch")
}

func TestController_UnchangedTotalIsExhausted(t *testing.T) {
	ctrl, host := newBound(t, 5)

	ctrl.OnScrollNearEnd()
	require.NoError(t, ctrl.LoadFinished(5))
	repaints := host.list.trailingRepaints

	ctrl.OnScrollNearEnd()
	require.NoError(t, ctrl.LoadFinished(5))

	assert.Equal(t, 1, host.allLoaded)
	assert.False(t, ctrl.IsEnabled())
	assert.Equal(t, 1, ctrl.CurrentPage())
	assert.Greater(t, host.list.trailingRepaints, repaints, "loading row must be repainted")
	assert.False(t, host.list.emptyVisible)
	assert.Equal(t, pagination.PhaseExhausted, ctrl.Meta().Phase)
}

func TestController_ShrinkingTotalAdvancesPage(t *testing.T) {
	// Only an equal total signals exhaustion; a host that drops items is still paging.
	ctrl, host := newBound(t, 5)

	ctrl.OnScrollNearEnd()
	require.NoError(t, ctrl.LoadFinished(10))
	ctrl.OnScrollNearEnd()
	require.NoError(t, ctrl.LoadFinished(8))

	assert.Equal(t, 2, ctrl.CurrentPage())
	assert.Equal(t, 8, ctrl.TotalLoadedItems())
	assert.Zero(t, host.allLoaded)
}

func TestController_RefreshIndicatorStopsOnEveryFinish(t *testing.T) {
	for _, total := range []int{0, 5} {
		ctrl, host := newBound(t, 5)
		host.list.refreshing = true

		ctrl.OnScrollNearEnd()
		require.NoError(t, ctrl.LoadFinished(total))

		assert.False(t, host.list.refreshing, "total %d", total)
	}
}

func TestController_OnScrollNearEndGuards(t *testing.T) {
	t.Run("while loading", func(t *testing.T) {
		ctrl, host := newBound(t, 5)
		ctrl.OnScrollNearEnd()
		ctrl.OnScrollNearEnd()
		assert.Len(t, host.loads, 1)
	})

	t.Run("while disabled", func(t *testing.T) {
		ctrl, host := newBound(t, 5)
		ctrl.SetEnabled(false)
		ctrl.OnScrollNearEnd()
		assert.Empty(t, host.loads)
		assert.False(t, ctrl.IsLoading())
	})
}

func TestController_ContractViolations(t *testing.T) {
	t.Run("finish while idle", func(t *testing.T) {
		ctrl, _ := newBound(t, 5)
		before := ctrl.State()

		err := ctrl.LoadFinished(5)

		require.ErrorIs(t, err, pagination.ErrNotLoading)
		assert.Equal(t, before, ctrl.State())
	})

	t.Run("negative total", func(t *testing.T) {
		ctrl, _ := newBound(t, 5)
		ctrl.OnScrollNearEnd()
		before := ctrl.State()

		err := ctrl.LoadFinished(-1)

		require.ErrorIs(t, err, pagination.ErrNegativeTotal)
		assert.Equal(t, before, ctrl.State())
	})

	t.Run("reset with non-positive page size", func(t *testing.T) {
		ctrl, _ := newBound(t, 5)
		for _, k := range []int{0, -3} {
			before := ctrl.State()
			err := ctrl.Reset(k)
			require.ErrorIs(t, err, pagination.ErrInvalidPageSize)
			assert.Equal(t, before, ctrl.State())
		}
	})
}

func TestController_ResetRestoresInitialState(t *testing.T) {
	setups := map[string]func(c *pagination.Controller){
		"fresh": func(*pagination.Controller) {},
		"loading": func(c *pagination.Controller) {
			c.OnScrollNearEnd()
		},
		"empty": func(c *pagination.Controller) {
			c.OnScrollNearEnd()
			_ = c.LoadFinished(0)
		},
		"mid session": func(c *pagination.Controller) {
			c.OnScrollNearEnd()
			_ = c.LoadFinished(5)
			c.OnScrollNearEnd()
			_ = c.LoadFinished(10)
		},
		"disabled": func(c *pagination.Controller) {
			c.SetEnabled(false)
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			ctrl, host := newBound(t, 5)
			setup(ctrl)
			oldSession := ctrl.SessionID()

			require.NoError(t, ctrl.Reset(12))

			assert.Equal(t, pagination.State{PageElementCount: 12, Enabled: true}, ctrl.State())
			assert.False(t, host.list.emptyVisible)
			assert.NotEqual(t, oldSession, ctrl.SessionID())
			assert.Equal(t, pagination.PhaseIdle, ctrl.Meta().Phase)
		})
	}
}

func TestController_SetEnabledIdempotent(t *testing.T) {
	once, onceHost := newBound(t, 5)
	twice, twiceHost := newBound(t, 5)

	once.SetEnabled(false)
	twice.SetEnabled(false)
	twice.SetEnabled(false)

	assert.Equal(t, once.State(), twice.State())
	assert.Equal(t, onceHost.list.emptyVisible, twiceHost.list.emptyVisible)
	assert.Equal(t, once.Meta().Phase, twice.Meta().Phase)
	assert.False(t, twiceHost.list.row.Enabled && twiceHost.list.detector.HasMore())
}

func TestController_SynchronousHostFinish(t *testing.T) {
	// A host may answer from inside OnLoadNext.
	host := newFakeHost()
	ctrl, err := pagination.BuildWith(5, host).Build()
	require.NoError(t, err)
	host.onLoad = func(loadCall) {
		require.NoError(t, ctrl.LoadFinished(0))
	}

	ctrl.OnScrollNearEnd()

	assert.False(t, ctrl.IsLoading())
	assert.False(t, ctrl.IsEnabled())
	assert.Equal(t, 1, host.noData)
}

func TestController_EmptyViewDisabled(t *testing.T) {
	host := newFakeHost()
	ctrl, err := pagination.BuildWith(5, host).SetEmptyViewEnabled(false).Build()
	require.NoError(t, err)
	host.list.emptyCalls = nil

	ctrl.OnScrollNearEnd()
	require.NoError(t, ctrl.LoadFinished(0))

	assert.Empty(t, host.list.emptyCalls)
	assert.Equal(t, 1, host.noData)
	assert.Nil(t, host.list.content)
}

func TestScenarios(t *testing.T) {
	ctrl, host := newBound(t, 5)

	// A
	ctrl.OnScrollNearEnd()
	assert.Equal(t, loadCall{NextPage: 1, Current: 0, PageSize: 5}, host.lastLoad())
	require.NoError(t, ctrl.LoadFinished(5))
	assert.Equal(t, 1, ctrl.CurrentPage())
	assert.False(t, ctrl.IsLoading())
	assert.False(t, host.list.emptyVisible)

	// B
	ctrl.OnScrollNearEnd()
	assert.Equal(t, loadCall{NextPage: 2, Current: 5, PageSize: 5}, host.lastLoad())
	require.NoError(t, ctrl.LoadFinished(5))
	assert.Equal(t, 1, host.allLoaded)
	assert.False(t, ctrl.IsEnabled())
	assert.Equal(t, 1, ctrl.CurrentPage())

	// D
	require.NoError(t, ctrl.Reset(10))
	assert.Equal(t, 0, ctrl.CurrentPage())
	assert.Equal(t, 0, ctrl.TotalLoadedItems())
	assert.True(t, ctrl.IsEnabled())
	assert.False(t, host.list.emptyVisible)
	ctrl.OnScrollNearEnd()
	assert.Equal(t, loadCall{NextPage: 1, Current: 0, PageSize: 10}, host.lastLoad())
}

func TestScenarioC(t *testing.T) {
	ctrl, host := newBound(t, 5)

	ctrl.OnScrollNearEnd()
	assert.Equal(t, loadCall{NextPage: 1, Current: 0, PageSize: 5}, host.lastLoad())
	require.NoError(t, ctrl.LoadFinished(0))

	assert.Equal(t, 1, host.noData)
	assert.False(t, ctrl.IsEnabled())
	assert.True(t, host.list.emptyVisible)
}
