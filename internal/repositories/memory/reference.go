package memory

import (
	"sort"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

// Reference data is immutable after NewStore, so these reads take no lock.

func (s *Store) GetGenre(id uint) (*models.Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeNotFound, "genre %d not found", id)
	}
	return &g, nil
}

func (s *Store) ListGenres() ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (s *Store) GetRating(id uint) (*models.Rating, error) {
	r, ok := s.ratings[id]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeNotFound, "rating %d not found", id)
	}
	return &r, nil
}

func (s *Store) ListRatings() ([]models.Rating, error) {
	ratings := make([]models.Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		ratings = append(ratings, r)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })
	return ratings, nil
}
