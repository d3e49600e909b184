package toolbar

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/rs/zerolog"
)

// Warning is a non-fatal signal raised while building a layout
type Warning struct {
	// Code is errors.ErrMissingTarget, errors.ErrItemConflict or
	// errors.ErrInvalidInput
	Code errors.ErrorCode

	// Toolbar is the toolbar the descriptor targeted
	Toolbar types.ToolbarKey

	// Kept is the descriptor that occupies the slot after a conflict.
	// Zero for missing targets.
	Kept types.ItemDescriptor

	// Discarded is the descriptor that was dropped
	Discarded types.ItemDescriptor

	// Message is a human-readable description
	Message string
}

// Err converts the warning into a structured error
func (w Warning) Err() *errors.ToolbarsError {
	err := errors.New(w.Code, w.Message).
		WithDetail("toolbar", string(w.Toolbar)).
		WithDetail("discarded", w.Discarded.ID)
	if w.Code == errors.ErrItemConflict {
		err = err.WithDetail("kept", w.Kept.ID)
	}
	return err
}

// String implements fmt.Stringer
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

func missingTarget(d types.ItemDescriptor) Warning {
	return Warning{
		Code:      errors.ErrMissingTarget,
		Toolbar:   d.Toolbar,
		Discarded: d,
		Message:   fmt.Sprintf("item %s targets unknown toolbar %q", d.ID, d.Toolbar),
	}
}

func malformed(d types.ItemDescriptor) Warning {
	return Warning{
		Code:      errors.ErrInvalidInput,
		Toolbar:   d.Toolbar,
		Discarded: d,
		Message:   fmt.Sprintf("item %q has an empty id or invalid alignment %q", d.ID, d.Alignment),
	}
}

func conflict(kept, discarded types.ItemDescriptor) Warning {
	var msg string
	if discarded.Fallback {
		msg = fmt.Sprintf("fallback item %s yields %s slot %d to %s",
			discarded, discarded.Alignment, discarded.Index, kept.ID)
	} else {
		msg = fmt.Sprintf("item %s replaces %s in %s slot %d",
			kept, discarded, kept.Alignment, kept.Index)
	}
	return Warning{
		Code:      errors.ErrItemConflict,
		Toolbar:   kept.Toolbar,
		Kept:      kept,
		Discarded: discarded,
		Message:   msg,
	}
}

// WarningSink receives non-fatal build signals
type WarningSink interface {
	Warn(w Warning)
}

// WarningSinkFunc adapts a function to WarningSink
type WarningSinkFunc func(w Warning)

// Warn calls f(w)
func (f WarningSinkFunc) Warn(w Warning) { f(w) }

// Discard drops every warning
var Discard WarningSink = WarningSinkFunc(func(Warning) {})

// LogSink writes warnings to a zerolog logger at warn level
type LogSink struct {
	Logger zerolog.Logger
}

// Warn implements WarningSink
func (s LogSink) Warn(w Warning) {
	evt := s.Logger.Warn().
		Str("code", string(w.Code)).
		Str("toolbar", string(w.Toolbar)).
		Str("discarded", w.Discarded.ID)
	if w.Discarded.Origin != "" {
		evt = evt.Str("origin", w.Discarded.Origin)
	}
	if w.Code == errors.ErrItemConflict {
		evt = evt.Str("kept", w.Kept.ID).
			Bool("fallback", w.Discarded.Fallback)
	}
	evt.Msg(w.Message)
}

// Collector records warnings in the order they were raised
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn implements WarningSink
func (c *Collector) Warn(w Warning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, w)
}

// Warnings returns a copy of the recorded warnings
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Count returns how many warnings with the given code were recorded
func (c *Collector) Count(code errors.ErrorCode) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.warnings {
		if w.Code == code {
			n++
		}
	}
	return n
}

// Reset drops all recorded warnings
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = nil
}

// MultiSink fans a warning out to several sinks in order
type MultiSink []WarningSink

// Warn implements WarningSink
func (m MultiSink) Warn(w Warning) {
	for _, s := range m {
		if s != nil {
			s.Warn(w)
		}
	}
}
