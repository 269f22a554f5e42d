package services

import (
	"strings"
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/errors"
)

type ReferenceService struct {
	refs repositories.ReferenceStore
}

func NewReferenceService(refs repositories.ReferenceStore) *ReferenceService {
	return &ReferenceService{refs: refs}
}

func (s *ReferenceService) GetGenre(id uint) (*models.Genre, error) {
	start := time.Now()
	genre, err := s.refs.GetGenre(id)
	observe("get_genre", start, err, "genre_id", id)
	return genre, err
}

func (s *ReferenceService) ListGenres() ([]models.Genre, error) {
	start := time.Now()
	genres, err := s.refs.ListGenres()
	observe("list_genres", start, err)
	return genres, err
}

func (s *ReferenceService) GetRating(id uint) (*models.Rating, error) {
	start := time.Now()
	rating, err := s.refs.GetRating(id)
	observe("get_rating", start, err, "rating_id", id)
	return rating, err
}

func (s *ReferenceService) ListRatings() ([]models.Rating, error) {
	start := time.Now()
	ratings, err := s.refs.ListRatings()
	observe("list_ratings", start, err)
	return ratings, err
}

// RatingByName looks a rating up by its exact name, e.g. "PG-13".
func (s *ReferenceService) RatingByName(name string) (*models.Rating, error) {
	ratings, err := s.ListRatings()
	if err != nil {
		return nil, err
	}
	for i := range ratings {
		if ratings[i].Name == name {
			return &ratings[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrCodeNotFound, "rating %q not found", name)
}

// GenreByName looks a genre up by name, ignoring case.
func (s *ReferenceService) GenreByName(name string) (*models.Genre, error) {
	genres, err := s.ListGenres()
	if err != nil {
		return nil, err
	}
	for i := range genres {
		if strings.EqualFold(genres[i].Name, name) {
			return &genres[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrCodeNotFound, "genre %q not found", name)
}
