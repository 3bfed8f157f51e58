package status

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// 📊 FileStatus is the recorded outcome of one file in a batch
type FileStatus int

const (
	StatusNone    FileStatus = iota // not processed in this run
	StatusSuccess                   // task succeeded
	StatusFail                      // task failed, batch aborted
)

// String returns the text stored in the status column
func (s FileStatus) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFail:
		return "Fail"
	default:
		return ""
	}
}

// ParseFileStatus reads a status column value
func ParseFileStatus(s string) FileStatus {
	switch s {
	case "Success":
		return StatusSuccess
	case "Fail":
		return StatusFail
	default:
		return StatusNone
	}
}

// ⏱️ ProgressState is the run state of one batch
type ProgressState struct {
	Total int       // number of items in the batch
	Start time.Time // when the batch started
	Index int       // 1-based index of the current item, 0 before the first
}

// NewProgress starts a fresh progress state
func NewProgress(total int, start time.Time) ProgressState {
	return ProgressState{Total: total, Start: start}
}

// At returns a copy of the state positioned at index
func (p ProgressState) At(index int) ProgressState {
	p.Index = index
	return p
}

// Completed returns the number of items finished before the current one
func (p ProgressState) Completed() int {
	if p.Index <= 1 {
		return 0
	}
	return p.Index - 1
}

// 🔮 Remaining projects the time left linearly from the items completed so far
func (p ProgressState) Remaining(now time.Time) (time.Duration, bool) {
	completed := p.Completed()
	if completed == 0 {
		return 0, false
	}
	elapsed := now.Sub(p.Start)
	remaining := p.Total - completed
	return elapsed / time.Duration(completed) * time.Duration(remaining), true
}

// 📈 StatusReporter reports batch progress
type StatusReporter interface {
	StartOperation(ctx context.Context, state ProgressState)
	UpdateProgress(ctx context.Context, state ProgressState, name string)
	FinishOperation(ctx context.Context, state ProgressState)
}

// 🔧 Manager reports progress through zerolog
type Manager struct {
	formatter FileFormatter
	now       func() time.Time
}

var _ StatusReporter = (*Manager)(nil)

// 🏭 New creates a new status manager
func New(formatter FileFormatter) *Manager {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Manager{
		formatter: formatter,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for ETA projection
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) StartOperation(ctx context.Context, state ProgressState) {
	zerolog.Ctx(ctx).Info().
		Int("total", state.Total).
		Time("start", state.Start).
		Msg(m.formatter.FormatProgress(state.At(0), "", m.now()))
}

func (m *Manager) UpdateProgress(ctx context.Context, state ProgressState, name string) {
	ev := zerolog.Ctx(ctx).Info().
		Int("index", state.Index).
		Int("total", state.Total).
		Str("file", name)
	if remaining, ok := state.Remaining(m.now()); ok {
		ev = ev.Dur("eta", remaining)
	}
	ev.Msg(m.formatter.FormatProgress(state, name, m.now()))
}

func (m *Manager) FinishOperation(ctx context.Context, state ProgressState) {
	zerolog.Ctx(ctx).Info().
		Int("total", state.Total).
		Dur("elapsed", m.now().Sub(state.Start)).
		Msg(m.formatter.FormatFinished(state, m.now()))
}
