package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gametrackr/internal/config"
	"github.com/five82/gametrackr/internal/fetch"
	"github.com/five82/gametrackr/internal/rawg"
)

// renderList renders the landing view: search box, section title and grid.
func (m Model) renderList(height int) string {
	styles := m.theme.Styles()
	var blocks []string

	if height >= LayoutTaglineHeight {
		tagline := styles.Heading.Render("TRACK ") + styles.BrandText.Render("EVERYTHING")
		blocks = append(blocks, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tagline), "")
	}

	blocks = append(blocks, m.renderSearchBox(), m.renderSectionTitle(), "")

	used := lipgloss.Height(strings.Join(blocks, "\n"))
	blocks = append(blocks, m.renderListBody(maxInt(height-used, tileHeight)))

	return lipgloss.NewStyle().
		Height(height).
		MaxHeight(height).
		Render(strings.Join(blocks, "\n"))
}

func (m Model) renderSearchBox() string {
	border := m.theme.Border
	if m.input.Focused() {
		border = m.theme.BorderFocus
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Render(m.input.View())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}

// sectionTitle follows the raw search text, not the settled one.
func (m Model) sectionTitle() string {
	if q := strings.TrimSpace(m.query.Query()); q != "" {
		return fmt.Sprintf("Search Results for %q", q)
	}
	return "Trending Titles"
}

func (m Model) renderSectionTitle() string {
	styles := m.theme.Styles()
	title := styles.BrandText.Render("──") + " " +
		styles.Heading.Render(strings.ToUpper(m.sectionTitle()))
	return " " + truncate(title, maxInt(m.width-2, 0))
}

// renderListBody renders whatever the list slot currently holds.
func (m Model) renderListBody(height int) string {
	styles := m.theme.Styles()

	if m.catalog == nil || !m.catalog.Configured() {
		path := m.configPath
		if path == "" {
			path = config.DefaultPath()
		}
		return indent(strings.Join([]string{
			styles.WarningText.Render("RAWG API key not configured."),
			styles.MutedText.Render("Set " + config.APIKeyEnv + " or api_key in " + path + " to browse the catalog."),
		}, "\n"))
	}

	st := m.list.State()
	switch {
	case st.Status == fetch.StatusLoading,
		st.Status == fetch.StatusIdle && m.query.Pending():
		return m.renderSkeleton(height)

	case st.Status == fetch.StatusError:
		return indent(strings.Join([]string{
			styles.DangerText.Render("Database offline."),
			styles.MutedText.Render(rawg.Describe(st.Err)),
		}, "\n"))

	case st.Status == fetch.StatusSuccess && len(st.Value) == 0:
		return indent(styles.MutedText.Render("No games found."))

	case st.Status == fetch.StatusSuccess:
		return m.renderGrid(st.Value, height)
	}
	return ""
}

// tileWidth is the outer width of one tile.
func (m Model) tileWidth() int {
	cols := m.gridColumns()
	avail := maxInt(m.width-2, cols*8)
	return maxInt((avail-(cols-1)*tileGap)/cols, 8)
}

func (m Model) renderGrid(games []rawg.GameSummary, height int) string {
	cols := m.gridColumns()
	width := m.tileWidth()

	tiles := make([]string, len(games))
	for i, g := range games {
		tiles[i] = m.renderTile(g, width, i == m.cursor)
	}
	rows := layoutRows(tiles, cols)

	visible := maxInt(height/tileHeight, 1)
	first := 0
	if row := m.cursor / cols; row >= visible {
		first = row - visible + 1
	}
	last := minInt(first+visible, len(rows))
	return indent(strings.Join(rows[first:last], "\n"))
}

func (m Model) renderTile(g rawg.GameSummary, width int, selected bool) string {
	styles := m.theme.Styles()
	inner := maxInt(width-4, 1) // border + padding

	border := m.theme.Border
	nameStyle := styles.Heading
	if selected {
		border = m.theme.BorderFocus
		nameStyle = styles.BrandText
	}

	name := truncate(strings.ToUpper(strings.TrimSpace(g.Name)), inner)
	meta := fmt.Sprintf("#%d", g.ID)
	if strings.TrimSpace(g.BackgroundImage) == "" {
		meta += "  no artwork"
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(width - 2).
		Render(nameStyle.Render(name) + "\n" + styles.FaintText.Render(truncate(meta, inner)))
}

// renderSkeleton draws placeholder tiles while a listing is loading.
func (m Model) renderSkeleton(height int) string {
	cols := m.gridColumns()
	width := m.tileWidth()
	inner := maxInt(width-4, 1)

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderMuted)).
		Foreground(lipgloss.Color(m.theme.Faint)).
		Padding(0, 1).
		Width(width - 2)
	fill := strings.Repeat("░", inner)
	short := strings.Repeat("░", maxInt(inner/3, 1))

	tiles := make([]string, SkeletonTiles)
	for i := range tiles {
		tiles[i] = style.Render(fill + "\n" + short)
	}
	rows := layoutRows(tiles, cols)
	visible := minInt(maxInt(height/tileHeight, 1), len(rows))
	return indent(strings.Join(rows[:visible], "\n"))
}

// layoutRows joins tiles into rows of cols tiles.
func layoutRows(tiles []string, cols int) []string {
	gap := strings.Repeat(" ", tileGap)
	var rows []string
	for start := 0; start < len(tiles); start += cols {
		end := minInt(start+cols, len(tiles))
		parts := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				parts = append(parts, gap)
			}
			parts = append(parts, tiles[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return rows
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = " " + line
	}
	return strings.Join(lines, "\n")
}
