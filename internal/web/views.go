package web

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vbonduro/lookbook/internal/domain"
	"github.com/vbonduro/lookbook/internal/gallery"
	"github.com/vbonduro/lookbook/internal/i18n"
	"github.com/vbonduro/lookbook/internal/service"
)

// Template data. Every view carries the Localizer so nested templates can
// print copy without reaching back to the root.

type galleryView struct {
	L             *i18n.Localizer
	Page          *service.GalleryPage
	Setting       string
	Hotness       string
	HotnessLevels []int
	OtherLang     string
	ActiveNav     string
}

type cardView struct {
	L    *i18n.Localizer
	Card service.Card
}

func newCardView(l *i18n.Localizer, c service.Card) cardView {
	return cardView{L: l, Card: c}
}

type commentsView struct {
	L        *i18n.Localizer
	ImageID  string
	Comments []domain.Comment
}

func newCommentsView(l *i18n.Localizer, imageID string, comments []domain.Comment) commentsView {
	return commentsView{L: l, ImageID: imageID, Comments: comments}
}

type analyticsView struct {
	L    *i18n.Localizer
	A    *gallery.Analytics
	Mode string
}

func newAnalyticsView(l *i18n.Localizer, a gallery.Analytics) analyticsView {
	return analyticsView{L: l, A: &a, Mode: string(gallery.ChartByRating)}
}

type insightView struct {
	L      *i18n.Localizer
	Text   string
	Locked bool
	Failed bool
}

type adminView struct {
	L         *i18n.Localizer
	Summary   *service.AdminSummary
	OtherLang string
	ActiveNav string
}

func otherLang(l *i18n.Localizer) string {
	if l.Lang() == "de" {
		return "en"
	}
	return "de"
}

func newGalleryView(l *i18n.Localizer, page *service.GalleryPage) galleryView {
	return galleryView{
		L:             l,
		Page:          page,
		Setting:       page.Filter.SettingValue(),
		Hotness:       page.Filter.HotnessValue(),
		HotnessLevels: seq(domain.MaxHotness),
		OtherLang:     otherLang(l),
		ActiveNav:     "gallery",
	}
}

// commentTime prints a relative time in English and a plain date otherwise,
// since humanize only speaks English.
func commentTime(l *i18n.Localizer, t time.Time) string {
	if l.Lang() == "en" {
		return humanize.Time(t)
	}
	return t.Local().Format("02.01.2006 15:04")
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}
