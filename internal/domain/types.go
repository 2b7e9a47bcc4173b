package domain

import "time"

// Style is the editorial category of an outfit.
type Style string

const (
	StyleConservative Style = "conservative"
	StyleClean        Style = "clean"
	StyleBusiness     Style = "business"
	StyleElegant      Style = "elegant"
	StyleHot          Style = "hot"
)

// Setting is the photographic backdrop of an outfit.
type Setting string

const (
	SettingStudioGrey     Setting = "studio-grey"
	SettingLuxuryInterior Setting = "luxury-interior"
)

const (
	MinRating  = 1
	MaxRating  = 5
	MinHotness = 1
	MaxHotness = 5
)

// Image is one entry of the static catalog. Hotness is an editorial attribute and
// has nothing to do with the ratings visitors give.
type Image struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Src     string   `json:"src"`
	Style   Style    `json:"style"`
	Setting Setting  `json:"setting"`
	Hotness int      `json:"hotness"`
	Tags    []string `json:"tags"`
}

type StyleInfo struct {
	Style   Style  `json:"style"`
	Label   string `json:"label"`
	LabelDE string `json:"labelDe"`
	Color   string `json:"color"`
}

type SettingInfo struct {
	Setting Setting `json:"setting"`
	Label   string  `json:"label"`
}

type Comment struct {
	ID         string    `json:"id"`
	ImageID    string    `json:"imageId"`
	Author     string    `json:"author"`
	Text       string    `json:"text"`
	OutfitLink string    `json:"outfitLink,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ValidRating reports whether v is an accepted star value.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// ImageStats aggregates one image across every stored session.
type ImageStats struct {
	ImageID  string
	Ratings  int
	Average  float64
	Comments int
}

// Summary is the cross-session overview shown on the admin page.
type Summary struct {
	Sessions int
	Ratings  int
	Comments int
	Images   []ImageStats
}
