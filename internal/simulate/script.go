package simulate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/scroll"
)

// Step operations.
const (
	OpLayout  = "layout"
	OpScroll  = "scroll"
	OpNear    = "near"
	OpFinish  = "finish"
	OpReset   = "reset"
	OpEnable  = "enable"
	OpDisable = "disable"
	OpRefresh = "refresh"
)

// Script parse errors.
var (
	ErrUnknownOp  = errors.New("unknown step")
	ErrMissingArg = errors.New("step requires an argument")
	ErrBadArg     = errors.New("invalid step argument")
)

// Step is one scripted action against a bound controller.
type Step struct {
	Op  string `json:"op"            yaml:"op"`
	Arg int    `json:"arg,omitempty" yaml:"arg,omitempty"`
}

// String returns the step in script syntax.
func (s Step) String() string {
	switch s.Op {
	case OpFinish, OpReset:
		return fmt.Sprintf("%s:%d", s.Op, s.Arg)
	default:
		return s.Op
	}
}

// ParseScript parses steps separated by commas or whitespace, such as
// "layout, scroll, finish:5, near, finish:5".
func ParseScript(script string) ([]Step, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == ';'
	})

	steps := make([]Step, 0, len(fields))
	for _, f := range fields {
		step, err := parseStep(f)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(s string) (Step, error) {
	op, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")

	switch op {
	case OpLayout, OpScroll, OpNear, OpEnable, OpDisable, OpRefresh:
		if hasArg {
			return Step{}, fmt.Errorf("%w: %q takes no argument", ErrBadArg, s)
		}
		return Step{Op: op}, nil
	case OpFinish, OpReset:
		if !hasArg || arg == "" {
			return Step{}, fmt.Errorf("%w: %q", ErrMissingArg, s)
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Step{}, fmt.Errorf("%w: %q", ErrBadArg, s)
		}
		return Step{Op: op, Arg: n}, nil
	default:
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownOp, s)
	}
}

// FormatScript joins steps back into script syntax.
func FormatScript(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// Apply runs one step against ctrl and its Recorder. Scrolling presents a
// viewport showing the last visibleCount items of the current total.
func Apply(ctrl *pagination.Controller, rec *Recorder, step Step, visibleCount int) error {
	rec.SetStep(step.String())

	switch step.Op {
	case OpLayout:
		rec.LayoutPass()
	case OpScroll:
		if d := rec.Detector(); d != nil {
			total := ctrl.TotalLoadedItems()
			visible := min(visibleCount, total)
			d.Check(scroll.Viewport{
				TotalItems:   total,
				FirstVisible: total - visible,
				VisibleCount: visible,
			})
		}
	case OpNear:
		ctrl.OnScrollNearEnd()
	case OpFinish:
		return ctrl.LoadFinished(step.Arg)
	case OpReset:
		return ctrl.Reset(step.Arg)
	case OpEnable:
		ctrl.SetEnabled(true)
	case OpDisable:
		ctrl.SetEnabled(false)
	case OpRefresh:
		rec.RequestRefresh()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
	return nil
}
