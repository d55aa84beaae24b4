// Package fetch tracks one asynchronous request lifecycle per named slot.
//
// A Slot is owned by a Bubble Tea model and only touched from Update. Start
// moves the slot to loading and returns a command that performs the load off
// the event loop; the command's Result is applied with Commit. Each Start
// bumps the slot token, so a Result produced by an earlier Start no longer
// matches and Commit drops it.
package fetch

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Status is the lifecycle phase of a slot.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the observable {status, value, error} triple of a slot.
// Value is only meaningful when Status is StatusSuccess; Err only when
// Status is StatusError.
type State[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Loading reports whether a request is in flight.
func (s State[T]) Loading() bool { return s.Status == StatusLoading }

// ErrorMessage returns the error text, or "" outside the error state.
func (s State[T]) ErrorMessage() string {
	if s.Status != StatusError || s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Loader performs the actual request.
type Loader[T any] func(ctx context.Context) (T, error)

// Result is the message a Start command resolves to.
type Result[T any] struct {
	Slot  string
	Token uint64
	Value T
	Err   error
}

// Slot holds the state of one request lifecycle.
type Slot[T any] struct {
	name   string
	token  uint64
	state  State[T]
	cancel context.CancelFunc
	closed bool
}

// NewSlot returns an idle slot. name tags the Results it produces so that
// several slots of the same type can share one model.
func NewSlot[T any](name string) Slot[T] {
	return Slot[T]{name: name}
}

// Name returns the slot name.
func (s *Slot[T]) Name() string { return s.name }

// State returns the current state.
func (s *Slot[T]) State() State[T] { return s.state }

// Token returns the token of the most recent Start.
func (s *Slot[T]) Token() uint64 { return s.token }

// Start supersedes any in-flight request, sets the slot to loading and
// returns the command that runs load. The previous request's context is
// cancelled. Start on a closed slot returns nil and leaves the state alone.
func (s *Slot[T]) Start(ctx context.Context, load Loader[T]) tea.Cmd {
	if s.closed || load == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.stop()
	s.token++
	s.state = State[T]{Status: StatusLoading}

	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	name, token := s.name, s.token

	return func() (msg tea.Msg) {
		res := Result[T]{Slot: name, Token: token}
		defer func() {
			if r := recover(); r != nil {
				var zero T
				res.Value = zero
				res.Err = fmt.Errorf("%s fetch panicked: %v", name, r)
				msg = res
			}
		}()
		res.Value, res.Err = load(reqCtx)
		return res
	}
}

// Commit applies res if it belongs to this slot's current request. It
// returns true when the state changed.
func (s *Slot[T]) Commit(res Result[T]) bool {
	if s.closed || res.Slot != s.name || res.Token != s.token || s.state.Status != StatusLoading {
		return false
	}
	s.stop()
	if res.Err != nil {
		s.state = State[T]{Status: StatusError, Err: res.Err}
		return true
	}
	s.state = State[T]{Status: StatusSuccess, Value: res.Value}
	return true
}

// Reset drops any in-flight request and returns the slot to idle.
func (s *Slot[T]) Reset() {
	s.stop()
	s.token++
	s.state = State[T]{}
}

// Close resets the slot and refuses every later Start and Commit.
func (s *Slot[T]) Close() {
	s.Reset()
	s.closed = true
}

// Closed reports whether Close was called.
func (s *Slot[T]) Closed() bool { return s.closed }

func (s *Slot[T]) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
