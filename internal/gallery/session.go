package gallery

import (
	"sync"
	"time"

	"github.com/vbonduro/lookbook/internal/domain"
	"github.com/vbonduro/lookbook/internal/tilt"
)

// State is the persisted part of a session.
type State struct {
	Ratings  map[string]int
	Comments []domain.Comment
}

// Session owns the rating and comment stores of one visitor. All mutation goes
// through its methods; readers get a Snapshot.
type Session struct {
	id string

	mu       sync.Mutex
	ratings  *RatingStore
	comments *CommentStore
	pointer  tilt.Source
	lastSeen time.Time
}

func NewSession(id string) *Session {
	return &Session{
		id:       id,
		ratings:  NewRatingStore(),
		comments: NewCommentStore(),
		lastSeen: time.Now(),
	}
}

// restoreSession rebuilds a session from persisted state. Ratings go through
// Rate so invalid rows from storage are dropped rather than trusted.
func restoreSession(id string, st State) *Session {
	s := NewSession(id)
	for imageID, v := range st.Ratings {
		s.ratings.Rate(imageID, v)
	}
	s.comments.restore(st.Comments)
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Rate records a rating and reports whether it was accepted.
func (s *Session) Rate(imageID string, value int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings.Rate(imageID, value)
}

// AddComment appends a comment and reports whether it was accepted.
func (s *Session) AddComment(imageID, text, author, outfitLink string) (domain.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comments.Add(imageID, text, author, outfitLink)
}

// PointerSource returns the tilt source of the session, choosing it from caps on
// the first call. Later calls ignore caps.
func (s *Session) PointerSource(caps tilt.Capabilities) tilt.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pointer == nil {
		s.pointer = tilt.Select(caps)
	}
	return s.pointer
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SessionID: s.id,
		ratings:   s.ratings.All(),
		comments:  s.comments.All(),
	}
}

// Snapshot is an immutable view of a session at one point in time.
type Snapshot struct {
	SessionID string
	ratings   map[string]int
	comments  []domain.Comment
}

// NewSnapshot builds a snapshot from plain collections, copying them.
func NewSnapshot(ratings map[string]int, comments []domain.Comment) Snapshot {
	r := make(map[string]int, len(ratings))
	for k, v := range ratings {
		r[k] = v
	}
	return Snapshot{ratings: r, comments: append([]domain.Comment(nil), comments...)}
}

func (s Snapshot) IsRated(imageID string) bool {
	_, ok := s.ratings[imageID]
	return ok
}

func (s Snapshot) Rating(imageID string) (int, bool) {
	v, ok := s.ratings[imageID]
	return v, ok
}

func (s Snapshot) TotalRatings() int {
	return len(s.ratings)
}

// CommentsFor returns the comments of imageID, oldest first.
func (s Snapshot) CommentsFor(imageID string) []domain.Comment {
	var out []domain.Comment
	for _, c := range s.comments {
		if c.ImageID == imageID {
			out = append(out, c)
		}
	}
	return out
}

// State returns copies of the collections for persistence or serialization.
func (s Snapshot) State() State {
	r := make(map[string]int, len(s.ratings))
	for k, v := range s.ratings {
		r[k] = v
	}
	return State{Ratings: r, Comments: append([]domain.Comment(nil), s.comments...)}
}
