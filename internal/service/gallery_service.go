package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vbonduro/lookbook/internal/domain"
	"github.com/vbonduro/lookbook/internal/gallery"
	"github.com/vbonduro/lookbook/internal/i18n"
	"github.com/vbonduro/lookbook/internal/insight"
	"github.com/vbonduro/lookbook/internal/live"
	"github.com/vbonduro/lookbook/internal/tilt"
)

var (
	ErrImageNotFound  = errors.New("image not found")
	ErrInsightsLocked = errors.New("not enough ratings for an insight")
)

// VisibleTags is how many tags a card shows before collapsing the rest.
const VisibleTags = 3

// imageCatalog is the subset of catalog.Catalog that GalleryService requires.
type imageCatalog interface {
	Images() []domain.Image
	Image(id string) (domain.Image, bool)
	Styles() []domain.StyleInfo
	Style(s domain.Style) domain.StyleInfo
	Settings() []domain.SettingInfo
}

// sessionRegistry is the subset of gallery.Registry that GalleryService requires.
type sessionRegistry interface {
	Get(ctx context.Context, id string) (*gallery.Session, error)
	Save(ctx context.Context, s *gallery.Session) error
	Len() int
}

// summaryRepository is the subset of store.SessionStore used by the admin page.
type summaryRepository interface {
	Summary(ctx context.Context) (*domain.Summary, error)
}

// Publisher delivers live updates to the open pages of a session.
type Publisher interface {
	Publish(sessionID, msgType string, data any) error
}

type GalleryService struct {
	catalog    imageCatalog
	sessions   sessionRegistry
	summaries  summaryRepository
	publisher  Publisher
	summarizer insight.Summarizer
	fallback   insight.Summarizer
	logger     *slog.Logger
}

func NewGalleryService(
	catalog imageCatalog,
	sessions sessionRegistry,
	summaries summaryRepository,
	publisher Publisher,
	summarizer insight.Summarizer,
	logger *slog.Logger,
) *GalleryService {
	if summarizer == nil {
		summarizer = insight.NewStaticSummarizer()
	}
	return &GalleryService{
		catalog:    catalog,
		sessions:   sessions,
		summaries:  summaries,
		publisher:  publisher,
		summarizer: summarizer,
		fallback:   insight.NewStaticSummarizer(),
		logger:     logger,
	}
}

// Card is one image of the grid together with the session's view of it.
type Card struct {
	Image       domain.Image
	Style       domain.StyleInfo
	Rated       bool
	Rating      int
	Comments    []domain.Comment
	VisibleTags []string
	HiddenTags  int
}

// GalleryPage is everything the gallery page renders.
type GalleryPage struct {
	SessionID string
	Filter    gallery.Filter
	Cards     []Card
	Counts    gallery.Counts
	Settings  []domain.SettingInfo
	Analytics gallery.Analytics
	Pointer   tilt.Source
}

func (s *GalleryService) card(img domain.Image, snap gallery.Snapshot) Card {
	c := Card{
		Image:    img,
		Style:    s.catalog.Style(img.Style),
		Comments: snap.CommentsFor(img.ID),
	}
	c.Rating, c.Rated = snap.Rating(img.ID)
	c.VisibleTags = img.Tags
	if len(img.Tags) > VisibleTags {
		c.VisibleTags = img.Tags[:VisibleTags]
		c.HiddenTags = len(img.Tags) - VisibleTags
	}
	return c
}

func (s *GalleryService) session(ctx context.Context, sessionID string) (*gallery.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

// Page builds the gallery for sessionID. Counts always cover the whole catalog
// while the cards follow the filter.
func (s *GalleryService) Page(ctx context.Context, sessionID string, f gallery.Filter, caps tilt.Capabilities) (*GalleryPage, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	images := s.catalog.Images()

	visible := f.Apply(images)
	cards := make([]Card, 0, len(visible))
	for _, img := range visible {
		cards = append(cards, s.card(img, snap))
	}

	return &GalleryPage{
		SessionID: sessionID,
		Filter:    f,
		Cards:     cards,
		Counts:    gallery.CountImages(images),
		Settings:  s.catalog.Settings(),
		Analytics: gallery.Compute(s.catalog, snap, gallery.ChartByRating),
		Pointer:   sess.PointerSource(caps),
	}, nil
}

// Image looks up a catalog image.
func (s *GalleryService) Image(id string) (domain.Image, error) {
	img, ok := s.catalog.Image(id)
	if !ok {
		return domain.Image{}, ErrImageNotFound
	}
	return img, nil
}

// Card returns the current card of imageID for sessionID.
func (s *GalleryService) Card(ctx context.Context, sessionID, imageID string) (*Card, error) {
	img, ok := s.catalog.Image(imageID)
	if !ok {
		return nil, ErrImageNotFound
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c := s.card(img, sess.Snapshot())
	return &c, nil
}

// RateResult reports the outcome of a rating attempt.
type RateResult struct {
	Accepted  bool
	Card      Card
	Analytics gallery.Analytics
}

// Rate records value for imageID. An out-of-range value or a second rating of
// the same image is not an error: it is reported as not accepted and the
// session is left unchanged.
func (s *GalleryService) Rate(ctx context.Context, sessionID, imageID string, value int) (*RateResult, error) {
	img, ok := s.catalog.Image(imageID)
	if !ok {
		return nil, ErrImageNotFound
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	accepted := sess.Rate(imageID, value)
	snap := sess.Snapshot()
	res := &RateResult{
		Accepted:  accepted,
		Card:      s.card(img, snap),
		Analytics: gallery.Compute(s.catalog, snap, gallery.ChartByRating),
	}
	if !accepted {
		s.logger.Debug("rating ignored", "session_id", sessionID, "image_id", imageID)
		return res, nil
	}

	s.logger.Info("image rated", "session_id", sessionID, "image_id", imageID, "value", value)
	s.persist(ctx, sess)
	s.publish(sessionID, live.MsgAnalyticsUpdate, res.Analytics)
	return res, nil
}

// AddComment appends a comment to imageID and reports whether it was accepted.
// Blank text or author is rejected without error; an unusable outfit link is
// dropped.
func (s *GalleryService) AddComment(ctx context.Context, sessionID, imageID, text, author, outfitLink string) (*domain.Comment, bool, error) {
	if _, ok := s.catalog.Image(imageID); !ok {
		return nil, false, ErrImageNotFound
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	c, ok := sess.AddComment(imageID, text, author, outfitLink)
	if !ok {
		s.logger.Debug("comment ignored", "session_id", sessionID, "image_id", imageID)
		return nil, false, nil
	}

	s.logger.Info("comment added", "session_id", sessionID, "image_id", imageID, "comment_id", c.ID)
	s.persist(ctx, sess)
	s.publish(sessionID, live.MsgCommentAdded, c)
	return &c, true, nil
}

// Comments lists the comments on imageID, oldest first.
func (s *GalleryService) Comments(ctx context.Context, sessionID, imageID string) ([]domain.Comment, error) {
	if _, ok := s.catalog.Image(imageID); !ok {
		return nil, ErrImageNotFound
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot().CommentsFor(imageID), nil
}

// Analytics computes the analytics of sessionID with the chart in mode.
func (s *GalleryService) Analytics(ctx context.Context, sessionID string, mode gallery.ChartMode) (*gallery.Analytics, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	a := gallery.Compute(s.catalog, sess.Snapshot(), mode)
	return &a, nil
}

// SessionState is the full state of a session, for the JSON API.
type SessionState struct {
	SessionID string            `json:"sessionId"`
	Ratings   map[string]int    `json:"ratings"`
	Comments  []domain.Comment  `json:"comments"`
	Analytics gallery.Analytics `json:"analytics"`
}

func (s *GalleryService) State(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	st := snap.State()
	comments := st.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}
	return &SessionState{
		SessionID: sessionID,
		Ratings:   st.Ratings,
		Comments:  comments,
		Analytics: gallery.Compute(s.catalog, snap, gallery.ChartByRating),
	}, nil
}

// Insight describes the taste of sessionID in lang. It needs the same number
// of ratings as the detail panels. When the configured summarizer fails the
// static one answers instead.
func (s *GalleryService) Insight(ctx context.Context, sessionID, lang string) (string, error) {
	a, err := s.Analytics(ctx, sessionID, gallery.ChartByRating)
	if err != nil {
		return "", err
	}
	if !a.InsightsReady {
		return "", ErrInsightsLocked
	}

	l := i18n.ForLang(lang)
	p := insight.Profile{Lang: l.Lang(), TotalRatings: a.TotalRatings}
	for _, r := range a.TopRated {
		p.TopRated = append(p.TopRated, r.Title)
	}
	for _, st := range a.StyleBreakdown {
		p.Styles = append(p.Styles, insight.StyleScore{
			Label:       l.StyleLabel(st.StyleInfo),
			HighRatings: st.HighRatings,
			TotalRated:  st.TotalRated,
		})
	}

	text, err := s.summarizer.Summarize(ctx, p)
	if err == nil {
		return text, nil
	}
	s.logger.Warn("insight summarizer failed, using static text", "session_id", sessionID, "error", err)
	return s.fallback.Summarize(ctx, p)
}

// ImageSummary is one row of the admin table.
type ImageSummary struct {
	domain.ImageStats
	Title string
}

// AdminSummary is the cross-session overview of the admin page.
type AdminSummary struct {
	Sessions     int
	LiveSessions int
	Ratings      int
	Comments     int
	Images       []ImageSummary
}

func (s *GalleryService) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	sum, err := s.summaries.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sessions: %w", err)
	}

	out := &AdminSummary{
		Sessions:     sum.Sessions,
		LiveSessions: s.sessions.Len(),
		Ratings:      sum.Ratings,
		Comments:     sum.Comments,
	}
	for _, is := range sum.Images {
		title := is.ImageID
		if img, ok := s.catalog.Image(is.ImageID); ok {
			title = img.Title
		}
		out.Images = append(out.Images, ImageSummary{ImageStats: is, Title: title})
	}
	return out, nil
}

// persist writes the session through. A failure is logged only: the session
// stays in memory and the sweeper saves it again before eviction.
func (s *GalleryService) persist(ctx context.Context, sess *gallery.Session) {
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("failed to persist session", "session_id", sess.ID(), "error", err)
	}
}

func (s *GalleryService) publish(sessionID, msgType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(sessionID, msgType, data); err != nil {
		s.logger.Error("failed to publish live update", "session_id", sessionID, "type", msgType, "error", err)
	}
}
