// Package htmltext converts the HTML fragments returned by the catalog API
// into plain text suitable for a terminal.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements whose content is never shown.
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
}

// Elements that start a new paragraph.
var blocks = map[string]bool{
	"p":          true,
	"div":        true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"ul":         true,
	"ol":         true,
	"li":         true,
	"blockquote": true,
	"pre":        true,
	"table":      true,
	"tr":         true,
}

// Strip removes every markup tag from fragment and returns its text. Entities
// are decoded, block elements become paragraph breaks, <br> becomes a line
// break and runs of whitespace inside a line collapse to one space.
func Strip(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	depth := 0 // nesting inside skipped elements

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way we keep what was read.
			return normalize(b.String())

		case html.TextToken:
			if depth == 0 {
				b.Write(z.Text())
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case skipped[tag]:
				if tt == html.StartTagToken {
					depth++
				}
			case depth > 0:
			case tag == "br":
				b.WriteByte('\n')
			case blocks[tag]:
				b.WriteString("\n\n")
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case skipped[tag]:
				if depth > 0 {
					depth--
				}
			case depth > 0:
			case blocks[tag]:
				b.WriteString("\n\n")
			}
		}
	}
}

// normalize collapses intra-line whitespace, squeezes blank-line runs to a
// single paragraph break and trims the result.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true // suppresses leading blank lines
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
				blank = true
			}
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
