// Package deferred schedules delayed Bubble Tea messages that can be
// invalidated before they fire.
//
// Every task carries the scheduler cycle it was issued in plus a per-kind
// sequence number. Starting a new cycle invalidates everything pending, and
// scheduling a task of the same kind supersedes the previous one. The update
// loop passes each arriving Msg to Accept and drops it when stale.
package deferred

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind distinguishes independent task streams.
type Kind string

const (
	KindFocus Kind = "focus"
	KindReset Kind = "reset"
)

// Msg is delivered when a scheduled task's delay elapses.
type Msg struct {
	Kind   Kind
	Target string // task argument, e.g. the field to focus
	cycle  uint64
	seq    uint64
}

// Scheduler issues and validates deferred tasks. The zero value is ready to use.
type Scheduler struct {
	cycle uint64
	seqs  map[Kind]uint64

	// tick is swapped in tests to fire without waiting
	tick func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
}

// New creates a scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Begin starts a new cycle, invalidating every pending task.
func (s *Scheduler) Begin() {
	s.cycle++
}

// Cycle returns the current cycle number.
func (s *Scheduler) Cycle() uint64 {
	return s.cycle
}

// Schedule returns a command that delivers a Msg after d. Any earlier task
// of the same kind is superseded.
func (s *Scheduler) Schedule(kind Kind, target string, d time.Duration) tea.Cmd {
	if s.seqs == nil {
		s.seqs = make(map[Kind]uint64)
	}
	s.seqs[kind]++
	msg := Msg{Kind: kind, Target: target, cycle: s.cycle, seq: s.seqs[kind]}

	tick := s.tick
	if tick == nil {
		tick = tea.Tick
	}
	return tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Cancel supersedes any pending task of the given kind.
func (s *Scheduler) Cancel(kind Kind) {
	if s.seqs == nil {
		s.seqs = make(map[Kind]uint64)
	}
	s.seqs[kind]++
}

// Accept reports whether msg is still current. Stale messages must be ignored.
func (s *Scheduler) Accept(msg Msg) bool {
	return msg.cycle == s.cycle && msg.seq == s.seqs[msg.Kind]
}

// Immediate makes Schedule fire without delay. Intended for tests.
func (s *Scheduler) Immediate() *Scheduler {
	s.tick = func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return fn(time.Now()) }
	}
	return s
}
