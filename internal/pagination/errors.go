package pagination

import "errors"

// Contract violations. These indicate a programming error in the host and
// leave the controller state unchanged.
var (
	ErrNotLoading       = errors.New("load finished reported while no load is in progress")
	ErrNegativeTotal    = errors.New("total item count must be non-negative")
	ErrInvalidPageSize  = errors.New("page element count must be > 0")
	ErrInvalidThreshold = errors.New("threshold must be >= 0")
	ErrInvalidSpan      = errors.New("loading row span must be >= 1")
	ErrNilCallback      = errors.New("page binding callback cannot be nil")
	ErrNilListView      = errors.New("page binding callback returned a nil list view")
)
