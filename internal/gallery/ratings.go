package gallery

import "github.com/vbonduro/lookbook/internal/domain"

// RatingStore maps image ids to star ratings. A rating is written once and never
// changes afterwards.
type RatingStore struct {
	ratings map[string]int
}

func NewRatingStore() *RatingStore {
	return &RatingStore{ratings: make(map[string]int)}
}

// Rate records value for imageID and reports whether it was accepted. Values
// outside 1..5, empty ids and already rated images are rejected without touching
// the store.
func (s *RatingStore) Rate(imageID string, value int) bool {
	if imageID == "" || !domain.ValidRating(value) {
		return false
	}
	if _, rated := s.ratings[imageID]; rated {
		return false
	}
	s.ratings[imageID] = value
	return true
}

func (s *RatingStore) IsRated(imageID string) bool {
	_, ok := s.ratings[imageID]
	return ok
}

func (s *RatingStore) Get(imageID string) (int, bool) {
	v, ok := s.ratings[imageID]
	return v, ok
}

func (s *RatingStore) Len() int {
	return len(s.ratings)
}

// All returns a copy of the ratings.
func (s *RatingStore) All() map[string]int {
	out := make(map[string]int, len(s.ratings))
	for k, v := range s.ratings {
		out[k] = v
	}
	return out
}
