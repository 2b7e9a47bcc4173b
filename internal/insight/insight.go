// Package insight turns a visitor's rating profile into a short description of
// their taste.
package insight

import (
	"context"
	"fmt"
	"strings"
)

// StyleScore is how one style fared in a profile.
type StyleScore struct {
	Label       string
	HighRatings int
	TotalRated  int
}

// Profile is the input of a Summarizer. Styles are ordered by preference.
type Profile struct {
	Lang         string
	TotalRatings int
	TopRated     []string
	Styles       []StyleScore
}

type Summarizer interface {
	Summarize(ctx context.Context, p Profile) (string, error)
}

// Prompt renders p as instructions for a language model.
func Prompt(p Profile) string {
	var b strings.Builder
	lang := "German"
	if p.Lang == "en" {
		lang = "English"
	}
	fmt.Fprintf(&b, "A visitor of an outfit lookbook rated %d outfits.\n", p.TotalRatings)
	if len(p.TopRated) > 0 {
		fmt.Fprintf(&b, "Their favourites: %s.\n", strings.Join(p.TopRated, ", "))
	}
	for _, s := range p.Styles {
		fmt.Fprintf(&b, "Style %s: %d of %d rated 4 stars or more.\n", s.Label, s.HighRatings, s.TotalRated)
	}
	fmt.Fprintf(&b, "Describe their taste in two friendly sentences in %s. Respond with plain text only.", lang)
	return b.String()
}
