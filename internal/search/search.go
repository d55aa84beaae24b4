// Package search debounces the text typed into the search box.
//
// The raw query follows every keystroke. The debounced query only moves once
// the raw query has been stable for the configured delay. Each edit arms a
// tea.Tick tagged with a sequence number; only the tick carrying the latest
// sequence settles, so a burst of edits yields exactly one SettledMsg that
// counts.
package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period before a query settles.
const DefaultDelay = 500 * time.Millisecond

// SettledMsg is delivered when a countdown elapses. It only takes effect if
// Seq is still current; see Controller.Settle.
type SettledMsg struct {
	Query string
	Seq   uint64
}

// Controller owns the raw and debounced query.
type Controller struct {
	raw       string
	debounced string
	delay     time.Duration
	seq       uint64
	pending   bool
	closed    bool
}

// New returns a controller with empty queries. A non-positive delay selects
// DefaultDelay.
func New(delay time.Duration) Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return Controller{delay: delay}
}

// Query returns the raw text.
func (c *Controller) Query() string { return c.raw }

// Debounced returns the last settled text.
func (c *Controller) Debounced() string { return c.debounced }

// Delay returns the quiet period.
func (c *Controller) Delay() time.Duration { return c.delay }

// Pending reports whether a countdown is armed.
func (c *Controller) Pending() bool { return c.pending }

// SetQuery records text and restarts the countdown. Repeating the current
// text does nothing.
func (c *Controller) SetQuery(text string) tea.Cmd {
	if c.closed || text == c.raw {
		return nil
	}
	c.raw = text
	return c.arm()
}

// Schedule arms a countdown for the current text.
func (c *Controller) Schedule() tea.Cmd {
	if c.closed {
		return nil
	}
	return c.arm()
}

// Reset clears the text and arms a countdown, so the default listing is
// requested again even if the debounced query was already empty.
func (c *Controller) Reset() tea.Cmd {
	if c.closed {
		return nil
	}
	c.raw = ""
	return c.arm()
}

// Settle applies msg if it is the latest countdown. The caller must start a
// list request when Settle returns true.
func (c *Controller) Settle(msg SettledMsg) bool {
	if c.closed || !c.pending || msg.Seq != c.seq {
		return false
	}
	c.pending = false
	c.debounced = msg.Query
	return true
}

// Close disarms the pending countdown. A closed controller never settles.
func (c *Controller) Close() {
	c.closed = true
	c.pending = false
	c.seq++
}

func (c *Controller) arm() tea.Cmd {
	c.seq++
	c.pending = true
	seq, query := c.seq, c.raw
	return tea.Tick(c.delay, func(time.Time) tea.Msg {
		return SettledMsg{Query: query, Seq: seq}
	})
}
