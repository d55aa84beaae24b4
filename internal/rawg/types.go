package rawg

import (
	"strings"
	"time"

	"github.com/five82/gametrackr/internal/htmltext"
)

const releaseDateLayout = "2006-01-02"

// ListResponse mirrors the payload returned by /games.
type ListResponse struct {
	Count   int           `json:"count"`
	Results []GameSummary `json:"results"`
}

// GameSummary is the minimal record needed to render a grid tile.
type GameSummary struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	BackgroundImage string `json:"background_image"`
}

// GameDetail mirrors the payload returned by /games/{id}.
type GameDetail struct {
	ID                        int64           `json:"id"`
	Name                      string          `json:"name"`
	BackgroundImage           string          `json:"background_image"`
	BackgroundImageAdditional string          `json:"background_image_additional"`
	Description               string          `json:"description"` // HTML
	Rating                    float64         `json:"rating"`
	Released                  string          `json:"released"`
	Platforms                 []PlatformEntry `json:"platforms"`
}

// PlatformEntry wraps a platform reference as the API nests it.
type PlatformEntry struct {
	Platform Platform `json:"platform"`
}

// Platform identifies a gaming platform.
type Platform struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PlatformNames returns the platform names in API order, skipping blanks.
func (d GameDetail) PlatformNames() []string {
	names := make([]string, 0, len(d.Platforms))
	for _, p := range d.Platforms {
		if name := strings.TrimSpace(p.Platform.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ReleaseDate parses Released. The boolean is false when the date is missing
// or malformed.
func (d GameDetail) ReleaseDate() (time.Time, bool) {
	value := strings.TrimSpace(d.Released)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PlainDescription returns Description with all markup removed.
func (d GameDetail) PlainDescription() string {
	return htmltext.Strip(d.Description)
}

// HeroImage prefers the additional background image, as the detail banner does.
func (d GameDetail) HeroImage() string {
	if img := strings.TrimSpace(d.BackgroundImageAdditional); img != "" {
		return img
	}
	return d.BackgroundImage
}
