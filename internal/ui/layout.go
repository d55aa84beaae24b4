package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutWideWidth is the width at which the grid switches to 4 columns.
	LayoutWideWidth = 100

	// LayoutTaglineHeight is the minimum height to show the tagline above
	// the search box.
	LayoutTaglineHeight = 28
)

// Grid and detail sizing.
const (
	// SkeletonTiles is the number of placeholder tiles shown while loading.
	SkeletonTiles = 8

	// tileHeight is two content lines plus the border.
	tileHeight = 4
	tileGap    = 2

	// DescriptionClampLines is how many description lines show until the
	// summary is expanded.
	DescriptionClampLines = 6

	// chrome is the navbar, command bar and footer.
	chrome = 3
)

// gridColumns returns 2 or 4, honoring a pinned preference.
func (m Model) gridColumns() int {
	if m.columns == 2 || m.columns == 4 {
		return m.columns
	}
	if m.width >= LayoutWideWidth {
		return 4
	}
	return 2
}

func (m Model) contentHeight() int {
	return maxInt(m.height-chrome, 4)
}

// detailSize is the viewport size inside the titled detail box.
func (m Model) detailSize() (width, height int) {
	return maxInt(m.width-4, 10), maxInt(m.contentHeight()-2, 1)
}

func (m *Model) initDetailViewport() {
	w, h := m.detailSize()
	m.detailViewport = viewport.New(w, h)
	m.detailViewport.KeyMap = m.keys.viewportKeys()
}

func (m *Model) resize() {
	w, h := m.detailSize()
	m.detailViewport.Width = w
	m.detailViewport.Height = h
	m.input.Width = clampInt(m.width-12, 10, 64)
}
