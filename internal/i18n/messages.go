package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type entry struct {
	key, de, en string
}

var messages = []entry{
	// Layout
	{"app.title", "Lookbook", "Lookbook"},
	{"app.tagline", "Bewerte Outfits und entdecke deinen Stil.", "Rate outfits and discover your style."},
	{"nav.gallery", "Galerie", "Gallery"},
	{"nav.language", "English", "Deutsch"},

	// Gallery
	{"gallery.heading", "Outfit-Galerie", "Outfit gallery"},
	{"filter.all", "Alle", "All"},
	{"filter.setting", "Setting", "Setting"},
	{"filter.hotness", "Hotness", "Hotness"},
	{"filter.reset", "Filter zurücksetzen", "Reset filters"},
	{"gallery.empty", "Keine Outfits für diese Filter.", "No outfits match these filters."},
	{"gallery.progress", "%d von %d bewertet", "%d of %d rated"},
	{"gallery.all_rated", "Alle Outfits bewertet!", "All outfits rated!"},
	{"card.rated", "Bewertet", "Rated"},
	{"card.rating", "Deine Bewertung", "Your rating"},
	{"card.rate", "Mit %d Sternen bewerten", "Rate %d stars"},

	// Comments
	{"comments.heading", "Kommentare (%d)", "Comments (%d)"},
	{"comments.none", "Noch keine Kommentare.", "No comments yet."},
	{"comments.author", "Name", "Name"},
	{"comments.text", "Kommentar", "Comment"},
	{"comments.link", "Outfit-Link (optional)", "Outfit link (optional)"},
	{"comments.submit", "Senden", "Post"},
	{"comments.outfit", "Zum Outfit", "View outfit"},

	// Analytics
	{"analytics.heading", "Deine Auswertung", "Your insights"},
	{"analytics.locked", "Bewerte ein Outfit, um deine Auswertung zu sehen.", "Rate an outfit to unlock your insights."},
	{"analytics.remaining", "Noch %d Bewertung(en) bis zu den Details", "%d more rating(s) until the details"},
	{"analytics.top", "Top bewertet", "Top rated"},
	{"analytics.styles", "Stil-Vorlieben", "Style preferences"},
	{"analytics.high", "%d von %d hoch bewertet", "%d of %d rated highly"},
	{"analytics.chart.rating", "Bewertungsverteilung", "Rating distribution"},
	{"analytics.chart.style", "Nach Stil", "By style"},

	// Insight
	{"insight.heading", "Dein Stil", "Your style"},
	{"insight.load", "Stil-Analyse anzeigen", "Show style analysis"},
	{"insight.favourite", "Du magst vor allem %s: %d von %d Outfits hast du hoch bewertet.", "You mostly like %s: you rated %d of %d outfits highly."},
	{"insight.top", "Dein Favorit ist „%s“.", "Your favourite is \"%s\"."},
	{"insight.none", "Noch keine klare Vorliebe erkennbar.", "No clear preference yet."},
	{"insight.failed", "Die Stil-Analyse ist gerade nicht verfügbar.", "The style analysis is unavailable right now."},

	// Admin
	{"admin.heading", "Admin", "Admin"},
	{"admin.sessions", "Sitzungen", "Sessions"},
	{"admin.live", "Aktive Sitzungen", "Live sessions"},
	{"admin.ratings", "Bewertungen", "Ratings"},
	{"admin.comments", "Kommentare", "Comments"},
	{"admin.image", "Outfit", "Outfit"},
	{"admin.average", "Schnitt", "Average"},
	{"admin.empty", "Noch keine Daten.", "No data yet."},
}

func init() {
	for _, m := range messages {
		message.SetString(language.German, m.key, m.de)
		message.SetString(language.English, m.key, m.en)
	}
}
