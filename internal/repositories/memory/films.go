package memory

import (
	"sort"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

func (s *Store) CreateFilm(film *models.Film) (*models.Film, error) {
	f := *film
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireRating(f.RatingID); err != nil {
		return nil, err
	}
	genreIDs := f.GenreIDs()
	if err := s.requireGenres(genreIDs); err != nil {
		return nil, err
	}

	f.ID = s.filmSeq.Next()
	if _, taken := s.films[f.ID]; taken {
		return nil, errors.Newf(errors.ErrCodeInternalError, "film id %d already assigned", f.ID)
	}
	s.putFilm(f, genreIDs)
	s.likes[f.ID] = set{}

	composed := s.composeFilm(f.ID)
	return &composed, nil
}

func (s *Store) UpdateFilm(film *models.Film) (*models.Film, error) {
	f := *film
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(f.ID); err != nil {
		return nil, err
	}
	if err := s.requireRating(f.RatingID); err != nil {
		return nil, err
	}
	genreIDs := f.GenreIDs()
	if err := s.requireGenres(genreIDs); err != nil {
		return nil, err
	}

	s.putFilm(f, genreIDs)

	composed := s.composeFilm(f.ID)
	return &composed, nil
}

func (s *Store) GetFilm(id uint) (*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireFilm(id); err != nil {
		return nil, err
	}
	f := s.composeFilm(id)
	return &f, nil
}

func (s *Store) DeleteFilm(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(id); err != nil {
		return err
	}

	delete(s.likes, id)
	delete(s.filmGenres, id)
	delete(s.films, id)
	return nil
}

func (s *Store) ListFilms() ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return s.composeFilms(ids), nil
}

// putFilm stores the scalar fields and swaps in a fresh genre-link set.
func (s *Store) putFilm(f models.Film, genreIDs []uint) {
	f.Rating = models.Rating{}
	f.Genres = nil
	f.Likes = nil
	s.films[f.ID] = f

	links := make(set, len(genreIDs))
	for _, id := range genreIDs {
		links[id] = struct{}{}
	}
	s.filmGenres[f.ID] = links
}

// composeFilm joins the stored film with its rating, genres and likes. Callers hold the lock.
func (s *Store) composeFilm(id uint) models.Film {
	f := s.films[id]
	f.Rating = s.ratings[f.RatingID]

	genreIDs := s.filmGenres[id].sorted()
	f.Genres = make([]models.Genre, len(genreIDs))
	for i, gid := range genreIDs {
		f.Genres[i] = s.genres[gid]
	}

	f.Likes = s.likes[id].sorted()
	return f
}

func (s *Store) composeFilms(ids []uint) []models.Film {
	films := make([]models.Film, len(ids))
	for i, id := range ids {
		films[i] = s.composeFilm(id)
	}
	return films
}
