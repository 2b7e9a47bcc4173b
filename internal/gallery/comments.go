package gallery

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/lookbook/internal/domain"
)

// CommentStore is an append-only list of comments. Insertion order is kept and
// ListFor returns oldest first.
type CommentStore struct {
	comments []domain.Comment
	now      func() time.Time
	newID    func() string
}

func NewCommentStore() *CommentStore {
	return &CommentStore{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Add appends a comment for imageID. It reports false, leaving the store
// unchanged, when text or author is blank after trimming. An outfit link that is
// not an absolute http(s) URL is dropped; the comment itself is still kept.
func (s *CommentStore) Add(imageID, text, author, outfitLink string) (domain.Comment, bool) {
	text = strings.TrimSpace(text)
	author = strings.TrimSpace(author)
	if imageID == "" || text == "" || author == "" {
		return domain.Comment{}, false
	}

	c := domain.Comment{
		ID:         s.newID(),
		ImageID:    imageID,
		Author:     author,
		Text:       text,
		OutfitLink: normalizeLink(outfitLink),
		CreatedAt:  s.now().UTC(),
	}
	s.comments = append(s.comments, c)
	return c, true
}

// ListFor returns the comments of imageID, oldest first.
func (s *CommentStore) ListFor(imageID string) []domain.Comment {
	var out []domain.Comment
	for _, c := range s.comments {
		if c.ImageID == imageID {
			out = append(out, c)
		}
	}
	return out
}

func (s *CommentStore) Len() int {
	return len(s.comments)
}

// All returns a copy of every comment in append order.
func (s *CommentStore) All() []domain.Comment {
	return append([]domain.Comment(nil), s.comments...)
}

// restore appends previously persisted comments verbatim.
func (s *CommentStore) restore(comments []domain.Comment) {
	s.comments = append(s.comments, comments...)
}

func normalizeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
