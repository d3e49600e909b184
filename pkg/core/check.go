package core

import (
	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/toolbar"
)

// CheckResult summarises the warnings of one build
type CheckResult struct {
	Layout         *toolbar.Layout
	Warnings       []toolbar.Warning
	MissingTargets int
	Conflicts      int
	Invalid        int
}

// Check rebuilds the layout and classifies its warnings
func (a *App) Check() (*CheckResult, error) {
	layout, err := a.Rebuild()
	if err != nil {
		return nil, err
	}

	res := &CheckResult{Layout: layout, Warnings: a.Warnings()}
	for _, w := range res.Warnings {
		switch w.Code {
		case errors.ErrMissingTarget:
			res.MissingTargets++
		case errors.ErrItemConflict:
			res.Conflicts++
		default:
			res.Invalid++
		}
	}
	return res, nil
}

// Err reports whether the check failed. Missing targets and malformed items
// always fail; conflicts fail only when strict.
func (r *CheckResult) Err(strict bool) error {
	switch {
	case r.MissingTargets > 0:
		return errors.Newf(errors.ErrMissingTarget, "%d item(s) target unknown toolbars", r.MissingTargets).
			WithDetail("count", r.MissingTargets)
	case r.Invalid > 0:
		return errors.Newf(errors.ErrInvalidInput, "%d item(s) are malformed", r.Invalid).
			WithDetail("count", r.Invalid)
	case strict && r.Conflicts > 0:
		return errors.Newf(errors.ErrItemConflict, "%d slot conflict(s)", r.Conflicts).
			WithDetail("count", r.Conflicts)
	}
	return nil
}
