package ui

import (
	"strconv"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// truncate shortens s to at most limit display cells. ANSI sequences are
// preserved and do not count toward the limit.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= limit {
		return s
	}
	return ansi.Truncate(s, limit, ellipsis)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pluralize formats n with noun, adding an "s" unless n is 1.
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
