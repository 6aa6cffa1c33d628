package simulate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/pagebind/internal/pagination"
)

// EventError records a step the controller rejected.
const EventError = "error"

// DefaultVisibleCount is the viewport size used by scroll steps.
const DefaultVisibleCount = 5

// Expectation is a named check run after a scenario's last step.
type Expectation struct {
	Name  string
	Check func(ctrl *pagination.Controller, rec *Recorder) error
}

// Scenario is a script run against a fresh controller.
type Scenario struct {
	Name        string
	Description string
	PageSize    int
	Steps       []Step
	Expect      []Expectation

	// Options overrides the default options for PageSize when set.
	Options *pagination.Options
}

// CheckResult is the outcome of one Expectation.
type CheckResult struct {
	Name   string `json:"name"             yaml:"name"`
	Passed bool   `json:"passed"           yaml:"passed"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Report is the outcome of running a Scenario.
type Report struct {
	Name        string          `json:"name"                  yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Script      string          `json:"script"                yaml:"script"`
	Events      []Event         `json:"events"                yaml:"events"`
	Meta        pagination.Meta `json:"meta"                  yaml:"meta"`
	Checks      []CheckResult   `json:"checks,omitempty"      yaml:"checks,omitempty"`
	Passed      bool            `json:"passed"                yaml:"passed"`
}

// Run binds a controller to a new Recorder and applies the scenario's steps.
// Steps the controller rejects are recorded as error events; Run only fails
// on an invalid scenario or a cancelled context.
func Run(ctx context.Context, sc Scenario, logger zerolog.Logger) (Report, error) {
	rec := NewRecorder(logger)

	opts := pagination.DefaultOptions(sc.PageSize)
	if sc.Options != nil {
		opts = *sc.Options
	}

	var ctrl *pagination.Controller
	if opts.OnRefresh == nil {
		// Behave like a host: a refresh starts over with the current page size.
		opts.OnRefresh = func() {
			if ctrl != nil {
				_ = ctrl.Reset(ctrl.PageElementCount())
			}
		}
	}

	rec.SetStep("build")
	ctrl, err := pagination.BuildWith(opts.PageElementCount, rec).
		WithOptions(opts).
		SetLogger(logger).
		Build()
	if err != nil {
		return Report{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	for _, step := range sc.Steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Report{}, ctxErr
		}
		if stepErr := Apply(ctrl, rec, step, DefaultVisibleCount); stepErr != nil {
			rec.record(EventError, stepErr.Error())
		}
	}

	report := Report{
		Name:        sc.Name,
		Description: sc.Description,
		Script:      FormatScript(sc.Steps),
		Events:      rec.Events(),
		Meta:        ctrl.Meta(),
		Passed:      true,
	}
	for _, exp := range sc.Expect {
		res := CheckResult{Name: exp.Name, Passed: true}
		if checkErr := exp.Check(ctrl, rec); checkErr != nil {
			res.Passed = false
			res.Detail = checkErr.Error()
			report.Passed = false
		}
		report.Checks = append(report.Checks, res)
	}
	return report, nil
}

// RunAll runs each scenario on its own controller concurrently and returns
// the reports in input order.
func RunAll(ctx context.Context, scenarios []Scenario, logger zerolog.Logger) ([]Report, error) {
	reports := make([]Report, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			r, err := Run(gctx, sc, logger.With().Str("scenario", sc.Name).Logger())
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Find returns the built-in scenario with the given name.
func Find(name string) (Scenario, bool) {
	for _, sc := range Scenarios() {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Scenarios returns the built-in end-to-end scenarios.
func Scenarios() []Scenario {
	a := []Step{{Op: OpLayout}, {Op: OpScroll}, {Op: OpFinish, Arg: 5}}
	b := append(append([]Step{}, a...), Step{Op: OpNear}, Step{Op: OpFinish, Arg: 5})
	c := []Step{{Op: OpLayout}, {Op: OpNear}, {Op: OpFinish, Arg: 0}}
	d := append(append([]Step{}, b...), Step{Op: OpReset, Arg: 10}, Step{Op: OpNear})

	return []Scenario{
		{
			Name:        "A",
			Description: "first page loads into an empty list",
			PageSize:    5,
			Steps:       a,
			Expect: []Expectation{
				expectLoad(0, LoadRequest{NextPage: 1, CurrentLoad: 0, PageSize: 5}),
				expectPage(1),
				expectLoading(false),
				expectEmptyVisible(false),
			},
		},
		{
			Name:        "B",
			Description: "a load without new items ends pagination",
			PageSize:    5,
			Steps:       b,
			Expect: []Expectation{
				expectLoad(1, LoadRequest{NextPage: 2, CurrentLoad: 5, PageSize: 5}),
				expectCount(EventAllLoaded, 1),
				expectEnabled(false),
				expectPage(1),
			},
		},
		{
			Name:        "C",
			Description: "an empty first page shows the empty state",
			PageSize:    5,
			Steps:       c,
			Expect: []Expectation{
				expectLoad(0, LoadRequest{NextPage: 1, CurrentLoad: 0, PageSize: 5}),
				expectCount(EventNoData, 1),
				expectEnabled(false),
				expectEmptyVisible(true),
			},
		},
		{
			Name:        "D",
			Description: "reset after exhaustion starts a new session",
			PageSize:    5,
			Steps:       d,
			Expect: []Expectation{
				expectPage(0),
				expectTotal(0),
				expectEnabled(true),
				expectEmptyVisible(false),
				expectLoad(2, LoadRequest{NextPage: 1, CurrentLoad: 0, PageSize: 10}),
			},
		},
	}
}

func expectLoad(index int, want LoadRequest) Expectation {
	return Expectation{
		Name: fmt.Sprintf("load #%d is page=%d current=%d size=%d", index+1, want.NextPage, want.CurrentLoad, want.PageSize),
		Check: func(_ *pagination.Controller, rec *Recorder) error {
			loads := rec.Loads()
			if index >= len(loads) {
				return fmt.Errorf("only %d loads requested", len(loads))
			}
			if loads[index] != want {
				return fmt.Errorf("got %+v", loads[index])
			}
			return nil
		},
	}
}

func expectPage(want int) Expectation {
	return Expectation{
		Name: fmt.Sprintf("page is %d", want),
		Check: func(ctrl *pagination.Controller, _ *Recorder) error {
			if got := ctrl.CurrentPage(); got != want {
				return fmt.Errorf("got %d", got)
			}
			return nil
		},
	}
}

func expectTotal(want int) Expectation {
	return Expectation{
		Name: fmt.Sprintf("total is %d", want),
		Check: func(ctrl *pagination.Controller, _ *Recorder) error {
			if got := ctrl.TotalLoadedItems(); got != want {
				return fmt.Errorf("got %d", got)
			}
			return nil
		},
	}
}

func expectLoading(want bool) Expectation {
	return Expectation{
		Name: fmt.Sprintf("loading is %t", want),
		Check: func(ctrl *pagination.Controller, _ *Recorder) error {
			if got := ctrl.IsLoading(); got != want {
				return fmt.Errorf("got %t", got)
			}
			return nil
		},
	}
}

func expectEnabled(want bool) Expectation {
	return Expectation{
		Name: fmt.Sprintf("enabled is %t", want),
		Check: func(ctrl *pagination.Controller, _ *Recorder) error {
			if got := ctrl.IsEnabled(); got != want {
				return fmt.Errorf("got %t", got)
			}
			return nil
		},
	}
}

func expectEmptyVisible(want bool) Expectation {
	return Expectation{
		Name: fmt.Sprintf("empty state visible is %t", want),
		Check: func(_ *pagination.Controller, rec *Recorder) error {
			if got := rec.EmptyStateVisible(); got != want {
				return fmt.Errorf("got %t", got)
			}
			return nil
		},
	}
}

func expectCount(kind string, want int) Expectation {
	return Expectation{
		Name: fmt.Sprintf("%s fired %d time(s)", kind, want),
		Check: func(_ *pagination.Controller, rec *Recorder) error {
			if got := rec.Count(kind); got != want {
				return fmt.Errorf("got %d", got)
			}
			return nil
		},
	}
}
