// Package browse holds the list/detail navigation state.
//
// A single selected id drives everything: with no selection the list is
// shown, with one the detail panel is shown and exactly one detail request
// for that id is in flight or resolved. Selecting another id supersedes the
// previous request, so the panel never shows a record for an id that is no
// longer selected.
package browse

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gametrackr/internal/fetch"
	"github.com/five82/gametrackr/internal/rawg"
)

// Catalog is the part of the RAWG client the browser depends on.
type Catalog interface {
	Configured() bool
	ListGames(ctx context.Context, query rawg.ListQuery) ([]rawg.GameSummary, error)
	GameDetail(ctx context.Context, id int64) (*rawg.GameDetail, error)
}

// View is the region shown in the main area.
type View int

const (
	ViewList View = iota
	ViewDetail
)

func (v View) String() string {
	if v == ViewDetail {
		return "detail"
	}
	return "list"
}

// DetailSlot names the slot whose results Machine.Update consumes.
const DetailSlot = "detail"

// DetailResult is the message a detail fetch resolves to.
type DetailResult = fetch.Result[*rawg.GameDetail]

// Machine is the navigation state. Like the rest of the model it is only
// mutated from the Bubble Tea update loop.
type Machine struct {
	ctx      context.Context
	catalog  Catalog
	selected int64
	hasSel   bool
	expanded bool
	detail   fetch.Slot[*rawg.GameDetail]
	version  uint64
}

// New returns a machine in list view. ctx bounds every detail request.
func New(ctx context.Context, catalog Catalog) Machine {
	if ctx == nil {
		ctx = context.Background()
	}
	return Machine{
		ctx:     ctx,
		catalog: catalog,
		detail:  fetch.NewSlot[*rawg.GameDetail](DetailSlot),
	}
}

// View derives the visible region from the selection.
func (m *Machine) View() View {
	if m.hasSel {
		return ViewDetail
	}
	return ViewList
}

// Selected returns the selected id.
func (m *Machine) Selected() (int64, bool) {
	return m.selected, m.hasSel
}

// Select switches to the detail view for id and requests its record.
// Re-selecting the current id does nothing. Without a configured catalog the
// view still switches but the detail stays idle.
func (m *Machine) Select(id int64) tea.Cmd {
	if m.hasSel && m.selected == id {
		return nil
	}
	m.selected = id
	m.hasSel = true
	m.expanded = false

	if m.catalog == nil || !m.catalog.Configured() {
		m.detail.Reset()
		return nil
	}
	catalog := m.catalog
	return m.detail.Start(m.ctx, func(ctx context.Context) (*rawg.GameDetail, error) {
		return catalog.GameDetail(ctx, id)
	})
}

// Back returns to the list view and forgets the detail state.
func (m *Machine) Back() {
	m.selected = 0
	m.hasSel = false
	m.expanded = false
	m.detail.Reset()
}

// Detail returns the detail request state.
func (m *Machine) Detail() fetch.State[*rawg.GameDetail] {
	return m.detail.State()
}

// ToggleDescription flips the description between clamped and full.
func (m *Machine) ToggleDescription() {
	m.expanded = !m.expanded
}

// DescriptionExpanded reports whether the full description is shown.
func (m *Machine) DescriptionExpanded() bool {
	return m.expanded
}

// Version increments each time a detail result is committed.
func (m *Machine) Version() uint64 {
	return m.version
}

// Update consumes detail results. It returns true when the detail state
// changed.
func (m *Machine) Update(msg tea.Msg) bool {
	res, ok := msg.(DetailResult)
	if !ok {
		return false
	}
	if !m.detail.Commit(res) {
		return false
	}
	m.version++
	return true
}

// Close cancels any in-flight detail request and ignores later results.
func (m *Machine) Close() {
	m.detail.Close()
}
