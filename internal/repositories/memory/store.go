// Package memory is the transient Store: plain maps guarded by one RWMutex.
// Writers are serialized, readers run concurrently, and every value handed
// out is a copy so callers can never mutate stored state.
package memory

import (
	"sort"
	"sync"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/errors"
)

type set map[uint]struct{}

func (s set) sorted() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type Store struct {
	mu sync.RWMutex

	userSeq Sequence
	filmSeq Sequence

	users      map[uint]models.User
	films      map[uint]models.Film
	filmGenres map[uint]set
	likes      map[uint]set              // film id -> user ids
	friends    map[uint]map[uint]string // user id -> friend id -> status

	genres  map[uint]models.Genre
	ratings map[uint]models.Rating
}

var _ repositories.Store = (*Store)(nil)

type Option func(*Store)

func WithUserSequence(seq Sequence) Option {
	return func(s *Store) { s.userSeq = seq }
}

func WithFilmSequence(seq Sequence) Option {
	return func(s *Store) { s.filmSeq = seq }
}

// WithReferenceData replaces the default genre and rating catalogues.
func WithReferenceData(genres []models.Genre, ratings []models.Rating) Option {
	return func(s *Store) {
		s.genres = make(map[uint]models.Genre, len(genres))
		for _, g := range genres {
			s.genres[g.ID] = g
		}
		s.ratings = make(map[uint]models.Rating, len(ratings))
		for _, r := range ratings {
			s.ratings[r.ID] = r
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		userSeq:    NewCounter(),
		filmSeq:    NewCounter(),
		users:      make(map[uint]models.User),
		films:      make(map[uint]models.Film),
		filmGenres: make(map[uint]set),
		likes:      make(map[uint]set),
		friends:    make(map[uint]map[uint]string),
	}
	WithReferenceData(models.DefaultGenres, models.DefaultRatings)(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) requireUser(id uint) error {
	if _, ok := s.users[id]; !ok {
		return errors.Newf(errors.ErrCodeNotFound, "user %d not found", id)
	}
	return nil
}

func (s *Store) requireFilm(id uint) error {
	if _, ok := s.films[id]; !ok {
		return errors.Newf(errors.ErrCodeNotFound, "film %d not found", id)
	}
	return nil
}

func (s *Store) requireRating(id uint) error {
	if _, ok := s.ratings[id]; !ok {
		return errors.Newf(errors.ErrCodeNotFound, "rating %d not found", id)
	}
	return nil
}

func (s *Store) requireGenres(ids []uint) error {
	for _, id := range ids {
		if _, ok := s.genres[id]; !ok {
			return errors.Newf(errors.ErrCodeNotFound, "genre %d not found", id)
		}
	}
	return nil
}
