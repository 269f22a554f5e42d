package services

import (
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/security"
	"github.com/mroshb/filmorate/pkg/logger"
)

const DefaultPopularCount = 10

type FilmService struct {
	films          repositories.FilmStore
	likes          repositories.LikeStore
	popularDefault int
}

// NewFilmService falls back to DefaultPopularCount when popularDefault is not positive.
func NewFilmService(films repositories.FilmStore, likes repositories.LikeStore, popularDefault int) *FilmService {
	if popularDefault <= 0 {
		popularDefault = DefaultPopularCount
	}
	return &FilmService{
		films:          films,
		likes:          likes,
		popularDefault: popularDefault,
	}
}

func (s *FilmService) CreateFilm(film *models.Film) (*models.Film, error) {
	start := time.Now()
	created, err := s.films.CreateFilm(cleanFilm(film))
	observe("create_film", start, err, "name", film.Name)
	if err != nil {
		return nil, err
	}

	logger.Info("Film created", "film_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *FilmService) UpdateFilm(film *models.Film) (*models.Film, error) {
	start := time.Now()
	updated, err := s.films.UpdateFilm(cleanFilm(film))
	observe("update_film", start, err, "film_id", film.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Film updated", "film_id", updated.ID)
	return updated, nil
}

func (s *FilmService) GetFilm(id uint) (*models.Film, error) {
	start := time.Now()
	film, err := s.films.GetFilm(id)
	observe("get_film", start, err, "film_id", id)
	return film, err
}

func (s *FilmService) DeleteFilm(id uint) error {
	start := time.Now()
	err := s.films.DeleteFilm(id)
	observe("delete_film", start, err, "film_id", id)
	if err != nil {
		return err
	}

	logger.Info("Film deleted", "film_id", id)
	return nil
}

func (s *FilmService) ListFilms() ([]models.Film, error) {
	start := time.Now()
	films, err := s.films.ListFilms()
	observe("list_films", start, err)
	return films, err
}

func (s *FilmService) AddLike(filmID, userID uint) error {
	start := time.Now()
	err := s.likes.AddLike(filmID, userID)
	observe("add_like", start, err, "film_id", filmID, "user_id", userID)
	if err != nil {
		return err
	}

	logger.Info("Like added", "film_id", filmID, "user_id", userID)
	return nil
}

func (s *FilmService) RemoveLike(filmID, userID uint) error {
	start := time.Now()
	err := s.likes.RemoveLike(filmID, userID)
	observe("remove_like", start, err, "film_id", filmID, "user_id", userID)
	if err != nil {
		return err
	}

	logger.Info("Like removed", "film_id", filmID, "user_id", userID)
	return nil
}

// PopularFilms returns the most liked films. A nil count means the configured default.
func (s *FilmService) PopularFilms(count *int) ([]models.Film, error) {
	limit := s.popularDefault
	if count != nil {
		limit = *count
	}

	start := time.Now()
	films, err := s.likes.PopularFilms(limit)
	observe("popular_films", start, err, "count", limit)
	return films, err
}

// cleanFilm returns a copy with markup stripped from the free-text fields.
func cleanFilm(film *models.Film) *models.Film {
	f := *film
	f.Name = security.CleanText(f.Name)
	f.Description = security.CleanText(f.Description)
	return &f
}
