package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gametrackr/internal/browse"
	"github.com/five82/gametrackr/internal/fetch"
	"github.com/five82/gametrackr/internal/prefs"
	"github.com/five82/gametrackr/internal/rawg"
	"github.com/five82/gametrackr/internal/search"
	"github.com/five82/gametrackr/internal/session"
)

const testDebounce = 10 * time.Millisecond

// fakeRAWG serves the two catalog endpoints and records list queries.
type fakeRAWG struct {
	mu          sync.Mutex
	listQueries []url.Values
	detailHits  int
	listStatus  int
}

func (f *fakeRAWG) handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/games":
		f.mu.Lock()
		f.listQueries = append(f.listQueries, r.URL.Query())
		status := f.listStatus
		f.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		if r.URL.Query().Get("search") == "zelda" {
			_ = json.NewEncoder(w).Encode(rawg.ListResponse{Results: []rawg.GameSummary{
				{ID: 42, Name: "The Legend of Zelda", BackgroundImage: "https://media.example/zelda.jpg"},
			}})
			return
		}
		_ = json.NewEncoder(w).Encode(rawg.ListResponse{Results: []rawg.GameSummary{
			{ID: 1, Name: "Trending One"},
			{ID: 2, Name: "Trending Two"},
		}})
	case r.URL.Path == "/games/42":
		f.mu.Lock()
		f.detailHits++
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(rawg.GameDetail{
			ID:          42,
			Name:        "The Legend of Zelda",
			Description: "<p>Great <b>game</b>.</p>",
			Rating:      4.5,
			Released:    "1986-02-21",
			Platforms:   []rawg.PlatformEntry{{Platform: rawg.Platform{Name: "NES"}}},
		})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeRAWG) queries() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.listQueries...)
}

func newTestModel(t *testing.T, apiKey string, sess *session.Session) (Model, *fakeRAWG) {
	t.Helper()
	fake := &fakeRAWG{}
	server := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(server.Close)

	client, err := rawg.NewClient(server.URL, apiKey, rawg.WithRateLimit(0, 0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	m := New(Options{
		Catalog:   client,
		Session:   sess,
		Debounce:  testDebounce,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, fake
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := updateCmd(t, m, msg)
	return next
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

// awaitMsg runs cmd (expanding batches) and returns the first message of
// type T. Unrelated commands such as cursor blinks keep running in the
// background and are ignored.
func awaitMsg[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	out := make(chan tea.Msg, 64)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			select {
			case out <- msg:
			default:
			}
		}()
	}
	run(cmd)

	deadline := time.After(3 * time.Second)
	for {
		select {
		case msg := <-out:
			if v, ok := msg.(T); ok {
				return v
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

// settleList drives one countdown through to a committed list result.
func settleList(t *testing.T, m Model, countdown tea.Cmd) Model {
	t.Helper()
	m, fetchCmd := updateCmd(t, m, awaitMsg[search.SettledMsg](t, countdown))
	return update(t, m, awaitMsg[listResult](t, fetchCmd))
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	return updateCmd(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestModel_SearchSelectAndReadDescription(t *testing.T) {
	m, fake := newTestModel(t, "test-key", nil)

	// Default listing after the first quiet period.
	m = settleList(t, m, m.startup)
	if got := len(m.games()); got != 2 {
		t.Fatalf("trending games = %d, want 2", got)
	}
	if first := fake.queries()[0]; first.Get("ordering") != "-relevance" || first.Has("search") {
		t.Fatalf("default listing query = %v, want ordering=-relevance without search", first)
	}
	if !strings.Contains(m.View(), "TRENDING TITLES") {
		t.Fatalf("view missing trending title:\n%s", m.View())
	}

	m, cmd := typeText(t, m, "zelda")
	if m.query.Query() != "zelda" {
		t.Fatalf("raw query = %q, want zelda", m.query.Query())
	}
	m = settleList(t, m, cmd)

	queries := fake.queries()
	last := queries[len(queries)-1]
	if last.Get("search") != "zelda" || last.Get("page_size") != "12" || last.Get("key") != "test-key" {
		t.Fatalf("search query = %v, want search=zelda page_size=12 key=test-key", last)
	}
	games := m.games()
	if len(games) != 1 || games[0].ID != 42 {
		t.Fatalf("games = %+v, want [id 42]", games)
	}
	if !strings.Contains(m.View(), `SEARCH RESULTS FOR "ZELDA"`) {
		t.Fatalf("view missing search title:\n%s", m.View())
	}

	m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.browser.View() != browse.ViewDetail {
		t.Fatalf("view = %v, want detail", m.browser.View())
	}
	if !m.browser.Detail().Loading() {
		t.Fatalf("detail status = %v, want loading", m.browser.Detail().Status)
	}
	m = update(t, m, awaitMsg[browse.DetailResult](t, cmd))

	st := m.browser.Detail()
	if st.Status != fetch.StatusSuccess || st.Value.PlainDescription() != "Great game." {
		t.Fatalf("detail = %+v, want success with description %q", st, "Great game.")
	}
	view := m.View()
	for _, want := range []string{"Great game.", "NES", "FEB 21, 1986"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q:\n%s", want, view)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.browser.View() != browse.ViewList {
		t.Fatalf("view after esc = %v, want list", m.browser.View())
	}
	if m.query.Query() != "zelda" {
		t.Fatalf("back cleared the query: %q", m.query.Query())
	}
}

func assertDefaultListing(t *testing.T, m Model, fake *fakeRAWG) {
	t.Helper()
	queries := fake.queries()
	last := queries[len(queries)-1]
	if last.Get("ordering") != "-relevance" || last.Has("search") {
		t.Fatalf("last list query = %v, want ordering=-relevance without search", last)
	}
	if got := len(m.games()); got != 2 {
		t.Fatalf("games = %d, want the 2 trending titles", got)
	}
}

func TestModel_HomeClearsSearchAndReloadsDefault(t *testing.T) {
	t.Run("from detail", func(t *testing.T) {
		m, fake := newTestModel(t, "test-key", nil)
		m = settleList(t, m, m.startup)
		m, cmd := typeText(t, m, "zelda")
		m = settleList(t, m, cmd)

		m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m = update(t, m, awaitMsg[browse.DetailResult](t, cmd))
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
		if !m.browser.DescriptionExpanded() {
			t.Fatalf("description not expanded")
		}

		m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
		if m.browser.View() != browse.ViewList {
			t.Fatalf("view = %v, want list", m.browser.View())
		}
		if m.input.Value() != "" || m.query.Query() != "" {
			t.Fatalf("search not cleared: input=%q query=%q", m.input.Value(), m.query.Query())
		}
		if m.browser.DescriptionExpanded() {
			t.Fatalf("description still expanded after going home")
		}

		m = settleList(t, m, cmd)
		assertDefaultListing(t, m, fake)
	})

	t.Run("esc in list", func(t *testing.T) {
		m, fake := newTestModel(t, "test-key", nil)
		m = settleList(t, m, m.startup)
		m, cmd := typeText(t, m, "zelda")
		m = settleList(t, m, cmd)

		m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.browser.View() != browse.ViewList {
			t.Fatalf("view = %v, want list", m.browser.View())
		}
		if m.input.Value() != "" || m.query.Query() != "" {
			t.Fatalf("search not cleared: input=%q query=%q", m.input.Value(), m.query.Query())
		}

		m = settleList(t, m, cmd)
		assertDefaultListing(t, m, fake)
		if len(fake.queries()) != 3 {
			t.Fatalf("list requests = %d, want 3 (default, zelda, default)", len(fake.queries()))
		}
	})
}

func TestModel_DetailScrollKeysMatchHelp(t *testing.T) {
	m, _ := newTestModel(t, "test-key", nil)
	km := m.detailViewport.KeyMap

	cases := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, km.PageDown},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, km.PageUp},
		{"ctrl+d", tea.KeyMsg{Type: tea.KeyCtrlD}, km.HalfPageDown},
		{"ctrl+u", tea.KeyMsg{Type: tea.KeyCtrlU}, km.HalfPageUp},
		{"j", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, km.Down},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, km.Up},
	}
	for _, tc := range cases {
		if !key.Matches(tc.msg, tc.binding) {
			t.Fatalf("%s does not reach its viewport binding", tc.name)
		}
	}
	if key.Matches(tea.KeyMsg{Type: tea.KeyCtrlD}, km.PageDown) {
		t.Fatalf("ctrl+d scrolls a full page")
	}
	if km.Left.Enabled() || km.Right.Enabled() {
		t.Fatalf("horizontal scrolling should be disabled")
	}
}

func TestModel_StaleCountdownDoesNotFetch(t *testing.T) {
	m, fake := newTestModel(t, "test-key", nil)
	m = settleList(t, m, m.startup)

	m, first := typeText(t, m, "hal")
	m, second := typeText(t, m, "o")

	m, cmd := updateCmd(t, m, awaitMsg[search.SettledMsg](t, first))
	if cmd != nil {
		t.Fatalf("stale countdown started a request")
	}
	m = settleList(t, m, second)

	queries := fake.queries()
	if len(queries) != 2 {
		t.Fatalf("list requests = %d, want 2 (default + halo)", len(queries))
	}
	if got := queries[1].Get("search"); got != "halo" {
		t.Fatalf("search = %q, want halo", got)
	}
	if m.query.Debounced() != "halo" {
		t.Fatalf("debounced = %q, want halo", m.query.Debounced())
	}
}

func TestModel_UnconfiguredStaysIdle(t *testing.T) {
	m, fake := newTestModel(t, "", nil)

	m, cmd := updateCmd(t, m, awaitMsg[search.SettledMsg](t, m.startup))
	if cmd != nil {
		t.Fatalf("settled countdown started a request without an API key")
	}
	if m.list.State().Status != fetch.StatusIdle {
		t.Fatalf("list status = %v, want idle", m.list.State().Status)
	}
	if !strings.Contains(m.View(), "RAWG API key not configured.") {
		t.Fatalf("view missing configuration hint:\n%s", m.View())
	}
	if len(fake.queries()) != 0 {
		t.Fatalf("server saw %d list requests, want 0", len(fake.queries()))
	}
}

func TestModel_ListErrorIsShown(t *testing.T) {
	m, fake := newTestModel(t, "test-key", nil)
	fake.mu.Lock()
	fake.listStatus = http.StatusInternalServerError
	fake.mu.Unlock()

	m = settleList(t, m, m.startup)
	if m.list.State().Status != fetch.StatusError {
		t.Fatalf("list status = %v, want error", m.list.State().Status)
	}
	view := m.View()
	if !strings.Contains(view, "Database offline.") || !strings.Contains(view, "HTTP 500 Internal Server Error") {
		t.Fatalf("view missing list error:\n%s", view)
	}
}

func TestModel_DetailErrorIsShown(t *testing.T) {
	m, _ := newTestModel(t, "test-key", nil)

	cmd := m.selectGame(404)
	m = update(t, m, awaitMsg[browse.DetailResult](t, cmd))
	if m.browser.Detail().Status != fetch.StatusError {
		t.Fatalf("detail status = %v, want error", m.browser.Detail().Status)
	}
	if view := m.View(); !strings.Contains(view, "Details not found.") {
		t.Fatalf("view missing detail error:\n%s", view)
	}
}

func TestModel_SignOutResetsState(t *testing.T) {
	sess, err := session.Open(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	if err := sess.SignIn("tok", session.User{Username: "link"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	m, _ := newTestModel(t, "test-key", sess)
	m = settleList(t, m, m.startup)
	if !strings.Contains(m.View(), "link") {
		t.Fatalf("navbar missing username:\n%s", m.View())
	}

	m, cmd := typeText(t, m, "zelda")
	m = settleList(t, m, cmd)
	m, _ = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if sess.SignedIn() {
		t.Fatalf("session still signed in")
	}
	if m.browser.View() != browse.ViewList {
		t.Fatalf("view = %v, want list", m.browser.View())
	}
	if m.input.Value() != "" || m.query.Query() != "" {
		t.Fatalf("search not cleared: input=%q query=%q", m.input.Value(), m.query.Query())
	}
	if m.list.State().Status != fetch.StatusIdle || !m.query.Pending() {
		t.Fatalf("list not reset: status=%v pending=%v", m.list.State().Status, m.query.Pending())
	}
	if !strings.Contains(m.View(), "Sign In") {
		t.Fatalf("navbar missing sign-in hint:\n%s", m.View())
	}

	// The re-armed countdown reloads the default listing.
	m = settleList(t, m, cmd)
	if got := len(m.games()); got != 2 {
		t.Fatalf("games after sign out = %d, want 2", got)
	}
}

func TestModel_QuitDropsLateResults(t *testing.T) {
	m, _ := newTestModel(t, "test-key", nil)

	m, fetchCmd := updateCmd(t, m, awaitMsg[search.SettledMsg](t, m.startup))
	m, quit := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if quit == nil {
		t.Fatalf("ctrl+c returned nil command")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}

	res := awaitMsg[listResult](t, fetchCmd)
	m = update(t, m, res)
	if m.list.State().Status == fetch.StatusSuccess {
		t.Fatalf("list result committed after quit")
	}
}

func TestModel_GridCursorMovesWithinBounds(t *testing.T) {
	m, _ := newTestModel(t, "test-key", nil)
	m = settleList(t, m, m.startup)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 1 {
		t.Fatalf("cursor moved past the last tile: %d", m.cursor)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Fatalf("cursor moved to a missing row: %d", m.cursor)
	}
}

func TestModel_CycleThemePersistsPrefs(t *testing.T) {
	m, _ := newTestModel(t, "test-key", nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q, want Nightfox", m.theme.Name)
	}
	saved, _ := prefs.Load(m.prefsPath)
	if saved.Theme != "Nightfox" {
		t.Fatalf("saved theme = %q, want Nightfox", saved.Theme)
	}
	if !strings.Contains(m.View(), "Nightfox") {
		t.Fatalf("command bar missing theme name:\n%s", m.View())
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, "test-key", nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown:\n%s", m.View())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.showHelp {
		t.Fatalf("any key should close the help overlay")
	}
	if m.input.Value() != "" {
		t.Fatalf("closing key was typed into the search box: %q", m.input.Value())
	}
}
