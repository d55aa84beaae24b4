package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gametrackr/internal/browse"
	"github.com/five82/gametrackr/internal/fetch"
)

// renderHeader renders the navbar: logo on the left, account on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	logo := bg.Render("▞", styles.BrandText) + bg.Spaces(1) +
		bg.Render("GAME", styles.Logo) + bg.Render("TRACKR", styles.BrandText)

	var account string
	if m.session != nil && m.session.SignedIn() {
		name := truncate(m.session.Snapshot().DisplayName(), 24)
		account = bg.Render("●", styles.SuccessText) + bg.Spaces(1) +
			bg.Render(name, styles.Text) + bg.Spaces(2) +
			bg.Render("ctrl+o", styles.AccentText) + bg.Sep(":") +
			bg.Render("Sign out", styles.MutedText)
	} else {
		account = bg.Render("Sign In", styles.BrandText) + bg.Spaces(1) +
			bg.Render("gametrackr login", styles.FaintText)
	}

	inner := maxInt(m.width-2, 0)
	gap := inner - lipgloss.Width(logo) - lipgloss.Width(account)
	if gap < 1 {
		return styles.Header.Width(m.width).Render(truncate(logo, inner))
	}
	return styles.Header.Width(m.width).Render(logo + bg.Spaces(gap) + account)
}

// renderCommandBar renders key:description hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.browser.View() {
	case browse.ViewDetail:
		toggle := "Full Summary"
		if m.browser.DescriptionExpanded() {
			toggle = "View Less"
		}
		commands = []cmd{
			{"esc", "Back"},
			{"space", toggle},
			{"j/k", "Scroll"},
			{"ctrl+l", "Home"},
			{"f1", "Help"},
		}
	default:
		commands = []cmd{
			{"enter", "Open"},
			{"↑↓", "Move"},
			{"tab", "Next"},
			{"esc", "Clear"},
			{"f1", "Help"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("ctrl+t", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(truncate(strings.Join(segments, sep), maxInt(m.width-2, 0)))
}

// renderFooter shows the latest notice, or the request status.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var text string
	switch {
	case m.notice != "":
		text = bg.Render(m.notice, styles.InfoText)
	case m.catalog == nil || !m.catalog.Configured():
		text = bg.Render("offline: no API key", styles.WarningText)
	case m.query.Pending():
		text = bg.Render("waiting for input to settle", styles.FaintText)
	default:
		st := m.list.State()
		switch st.Status {
		case fetch.StatusLoading:
			text = bg.Render("loading titles", styles.FaintText)
		case fetch.StatusSuccess:
			text = bg.Render(pluralize(len(st.Value), "title"), styles.FaintText)
		case fetch.StatusError:
			text = bg.Render("last request failed", styles.DangerText)
		}
	}
	return styles.Footer.Width(m.width).Render(truncate(text, maxInt(m.width-2, 0)))
}
