package memory

import (
	"sort"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

func (s *Store) AddLike(filmID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(filmID); err != nil {
		return err
	}
	if err := s.requireUser(userID); err != nil {
		return err
	}

	if s.likes[filmID] == nil {
		s.likes[filmID] = set{}
	}
	s.likes[filmID][userID] = struct{}{}
	return nil
}

func (s *Store) RemoveLike(filmID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(filmID); err != nil {
		return err
	}
	if err := s.requireUser(userID); err != nil {
		return err
	}

	delete(s.likes[filmID], userID)
	return nil
}

func (s *Store) PopularFilms(limit int) ([]models.Film, error) {
	if limit <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidArgument, "count must be positive, got %d", limit)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		li, lj := len(s.likes[ids[i]]), len(s.likes[ids[j]])
		if li != lj {
			return li > lj
		}
		return ids[i] < ids[j]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	return s.composeFilms(ids), nil
}
