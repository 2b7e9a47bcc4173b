package insight

import (
	"context"

	"github.com/vbonduro/lookbook/internal/i18n"
)

// StaticSummarizer builds the description from the profile alone.
type StaticSummarizer struct{}

func NewStaticSummarizer() *StaticSummarizer {
	return &StaticSummarizer{}
}

func (StaticSummarizer) Summarize(_ context.Context, p Profile) (string, error) {
	l := i18n.ForLang(p.Lang)

	if len(p.Styles) > 0 && p.Styles[0].HighRatings > 0 {
		top := p.Styles[0]
		text := l.T("insight.favourite", top.Label, top.HighRatings, top.TotalRated)
		if len(p.TopRated) > 0 {
			text += " " + l.T("insight.top", p.TopRated[0])
		}
		return text, nil
	}
	if len(p.TopRated) > 0 {
		return l.T("insight.top", p.TopRated[0]), nil
	}
	return l.T("insight.none"), nil
}
