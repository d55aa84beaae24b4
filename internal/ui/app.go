package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/gametrackr/internal/browse"
	"github.com/five82/gametrackr/internal/fetch"
	"github.com/five82/gametrackr/internal/prefs"
	"github.com/five82/gametrackr/internal/rawg"
	"github.com/five82/gametrackr/internal/search"
	"github.com/five82/gametrackr/internal/session"
)

// listSlot names the slot holding the grid's summaries.
const listSlot = "list"

// listResult is the message a list fetch resolves to.
type listResult = fetch.Result[[]rawg.GameSummary]

// Options configures the UI.
type Options struct {
	Context    context.Context
	Catalog    browse.Catalog
	Session    *session.Session
	Logger     *zap.Logger
	ThemeName  string
	Columns    int
	PrefsPath  string
	ConfigPath string
	Debounce   time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	catalog    browse.Catalog
	session    *session.Session
	logger     *zap.Logger
	prefsPath  string
	configPath string
	columns    int // 0 = derive from width

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool
	notice   string

	// Search and list
	input  textinput.Model
	query  search.Controller
	list   fetch.Slot[[]rawg.GameSummary]
	cursor int

	// Detail
	browser           browse.Machine
	detailViewport    viewport.Model
	lastDetailVersion uint64
	spinner           spinner.Model

	// startup arms the first countdown so the default listing loads after
	// one quiet period, like any other query.
	startup tea.Cmd
	closed  bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	ti := textinput.New()
	ti.Placeholder = "SEARCH DATABASE..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Brand))

	m := Model{
		ctx:        ctx,
		catalog:    opts.Catalog,
		session:    opts.Session,
		logger:     logger,
		prefsPath:  prefsPath,
		configPath: opts.ConfigPath,
		columns:    opts.Columns,
		theme:      theme,
		keys:       DefaultKeyMap(),
		input:      ti,
		query:      search.New(opts.Debounce),
		list:       fetch.NewSlot[[]rawg.GameSummary](listSlot),
		browser:    browse.New(ctx, opts.Catalog),
		spinner:    sp,
	}
	m.applyInputStyles()
	m.startup = m.query.Schedule()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.startup,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
		}
		m.ready = true
		m.resize()
		m.updateDetailViewport()
		return m, nil

	case search.SettledMsg:
		if !m.query.Settle(msg) {
			return m, nil
		}
		return m, m.startList()

	case listResult:
		return m.handleListResult(msg)

	case browse.DetailResult:
		return m.handleDetailResult(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.browser.Detail().Loading() {
			m.updateDetailViewport()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.closed {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.SignOut):
		return m, m.signOut()

	case key.Matches(msg, m.keys.Home):
		return m, m.goHome()
	}

	if m.browser.View() == browse.ViewDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey routes keys in the list view. Anything that isn't a grid
// binding is typed into the search box.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	games := m.games()
	cols := m.gridColumns()

	switch {
	case key.Matches(msg, m.keys.Open):
		if m.cursor >= 0 && m.cursor < len(games) {
			return m, m.selectGame(games[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		return m, m.goHome()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols, len(games))
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols, len(games))
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, len(games))
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, len(games))
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(games) > 0 {
			m.cursor = len(games) - 1
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.query.SetQuery(m.input.Value()))
	return m, tea.Batch(cmds...)
}

// handleDetailKey routes keys in the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ToggleDescription):
		m.browser.ToggleDescription()
		m.updateDetailViewport()
		return m, nil
	}

	// Scroll keys reach the viewport through keyMap.viewportKeys.
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta, count int) {
	if count == 0 {
		m.cursor = 0
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= count {
		return
	}
	m.cursor = next
}

// startList requests the listing for the settled query. Without an API key
// the list stays idle.
func (m *Model) startList() tea.Cmd {
	if m.catalog == nil || !m.catalog.Configured() {
		m.list.Reset()
		return nil
	}
	catalog := m.catalog
	q := rawg.ListQuery{Search: m.query.Debounced()}
	m.logger.Debug("list fetch", zap.String("search", q.Search))
	return m.list.Start(m.ctx, func(ctx context.Context) ([]rawg.GameSummary, error) {
		return catalog.ListGames(ctx, q)
	})
}

func (m Model) handleListResult(msg listResult) (tea.Model, tea.Cmd) {
	if !m.list.Commit(msg) {
		return m, nil
	}
	st := m.list.State()
	if st.Status == fetch.StatusError {
		m.logger.Warn("list fetch failed",
			zap.String("search", m.query.Debounced()),
			zap.Error(st.Err))
	}
	m.cursor = 0
	return m, nil
}

func (m Model) handleDetailResult(msg browse.DetailResult) (tea.Model, tea.Cmd) {
	if !m.browser.Update(msg) {
		return m, nil
	}
	st := m.browser.Detail()
	if st.Status == fetch.StatusError {
		id, _ := m.browser.Selected()
		m.logger.Warn("detail fetch failed", zap.Int64("id", id), zap.Error(st.Err))
	}
	m.updateDetailViewport()
	return m, nil
}

func (m *Model) selectGame(id int64) tea.Cmd {
	m.input.Blur()
	cmd := m.browser.Select(id)
	m.updateDetailViewport()
	return cmd
}

func (m *Model) back() {
	m.browser.Back()
	m.updateDetailViewport()
}

// goHome leaves the detail view and clears the search text.
func (m *Model) goHome() tea.Cmd {
	m.back()
	m.input.SetValue("")
	return tea.Batch(m.input.Focus(), m.query.SetQuery(""))
}

// signOut clears the session and puts the browser back in its initial state.
func (m *Model) signOut() tea.Cmd {
	if m.session != nil {
		if err := m.session.SignOut(); err != nil {
			m.logger.Warn("sign out failed", zap.Error(err))
			m.notice = "Sign out failed: " + err.Error()
			return nil
		}
		m.logger.Info("signed out")
	}
	m.notice = "Signed out"
	m.back()
	m.list.Reset()
	m.cursor = 0
	m.input.SetValue("")
	return tea.Batch(m.input.Focus(), m.query.Reset())
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Brand))
	m.applyInputStyles()
	m.updateDetailViewport()
	if m.prefsPath != "" {
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Columns: m.columns}); err != nil {
			m.logger.Warn("save prefs failed", zap.Error(err))
		}
	}
}

func (m *Model) applyInputStyles() {
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Brand))
	m.input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Bold(true)
	m.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
}

// teardown stops the countdown and drops in-flight requests.
func (m *Model) teardown() {
	m.query.Close()
	m.list.Close()
	m.browser.Close()
	m.closed = true
}

func (m Model) games() []rawg.GameSummary {
	st := m.list.State()
	if st.Status != fetch.StatusSuccess {
		return nil
	}
	return st.Value
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area for the current view.
func (m Model) renderContent() string {
	height := m.contentHeight()
	if m.browser.View() == browse.ViewDetail {
		return m.renderDetail(height)
	}
	return m.renderList(height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
