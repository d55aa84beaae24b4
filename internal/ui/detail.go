package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/gametrackr/internal/fetch"
	"github.com/five82/gametrackr/internal/rawg"
)

// updateDetailViewport refreshes the detail content. The viewport scrolls
// back to the top once per resolved request.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.detailContent(m.detailViewport.Width - 2))
	if v := m.browser.Version(); v != m.lastDetailVersion {
		m.lastDetailVersion = v
		m.detailViewport.GotoTop()
	}
}

// detailContent renders the body of the detail panel for width cells.
func (m Model) detailContent(width int) string {
	styles := m.theme.Styles()
	st := m.browser.Detail()

	switch st.Status {
	case fetch.StatusIdle:
		if m.catalog == nil || !m.catalog.Configured() {
			return styles.WarningText.Render("RAWG API key not configured.") + "\n\n" +
				styles.FaintText.Render("esc to return to the list")
		}
		return ""

	case fetch.StatusLoading:
		return m.spinner.View() + " " + styles.MutedText.Render("Loading details...")

	case fetch.StatusError:
		return styles.DangerText.Render("Details not found.") + "\n" +
			styles.MutedText.Render(rawg.Describe(st.Err)) + "\n\n" +
			styles.FaintText.Render("esc to return to the list")
	}

	d := st.Value
	if d == nil {
		return styles.DangerText.Render("Details not found.")
	}

	var b strings.Builder

	b.WriteString(styles.Heading.Render(wordwrap.String(strings.ToUpper(d.Name), width)))
	b.WriteString("\n\n")

	meta := []string{
		styles.BrandText.Render(fmt.Sprintf("★ %.2f", d.Rating)),
		styles.MutedText.Render("RELEASED: " + releaseLabel(d)),
	}
	b.WriteString(strings.Join(meta, "   "))
	b.WriteString("\n")

	if names := d.PlatformNames(); len(names) > 0 {
		b.WriteString(styles.Text.Render(wordwrap.String("PLATFORMS: "+strings.Join(names, " / "), width)))
		b.WriteString("\n")
	}
	if img := d.HeroImage(); img != "" {
		b.WriteString(styles.FaintText.Render(truncate("ARTWORK: "+img, width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", minInt(width, 60))))
	b.WriteString("\n\n")

	lines, clamped := descriptionLines(d.PlainDescription(), width, m.browser.DescriptionExpanded())
	if len(lines) == 0 {
		b.WriteString(styles.FaintText.Render("No summary available."))
		return b.String()
	}
	for _, line := range lines {
		b.WriteString(styles.MutedText.Render(line))
		b.WriteString("\n")
	}

	if clamped || m.browser.DescriptionExpanded() {
		label := "VIEW FULL SUMMARY"
		if m.browser.DescriptionExpanded() {
			label = "VIEW LESS"
		}
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render("space") + " " +
			styles.BrandText.Underline(true).Render(label))
	}
	return b.String()
}

// descriptionLines wraps text to width and clamps it unless expanded.
// clamped reports whether lines were cut.
func descriptionLines(text string, width int, expanded bool) (lines []string, clamped bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	lines = strings.Split(wordwrap.String(text, maxInt(width, 10)), "\n")
	if expanded || len(lines) <= DescriptionClampLines {
		return lines, false
	}
	lines = lines[:DescriptionClampLines]
	last := strings.TrimRight(lines[len(lines)-1], " ")
	if ansi.StringWidth(last)+1 > width {
		last = ansi.Truncate(last, maxInt(width-1, 0), "")
	}
	lines[len(lines)-1] = last + ellipsis
	return lines, true
}

func releaseLabel(d *rawg.GameDetail) string {
	if t, ok := d.ReleaseDate(); ok {
		return strings.ToUpper(t.Format("Jan 2, 2006"))
	}
	return "TBA"
}

// renderDetail renders the detail panel inside a titled box.
func (m Model) renderDetail(height int) string {
	title := "DETAILS"
	if st := m.browser.Detail(); st.Status == fetch.StatusSuccess && st.Value != nil {
		title = strings.ToUpper(st.Value.Name)
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, height)
}

// renderTitledBox draws a frame with the title embedded in the top border:
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := maxInt(width-2, 4)
	title = truncate(title, maxInt(innerWidth-4, 1))
	titleLen := ansi.StringWidth(title)
	leftPad := maxInt((innerWidth-titleLen-2)/2, 0)
	rightPad := maxInt(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Padding(0, 1).
		Background(lipgloss.Color(m.theme.SurfaceAlt))

	contentLines := strings.Split(content, "\n")
	boxHeight := maxInt(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
