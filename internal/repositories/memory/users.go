package memory

import (
	"sort"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

func (s *Store) CreateUser(user *models.User) (*models.User, error) {
	u := *user
	u.Normalize()
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.userSeq.Next()
	if _, taken := s.users[u.ID]; taken {
		return nil, errors.Newf(errors.ErrCodeInternalError, "user id %d already assigned", u.ID)
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *Store) UpdateUser(user *models.User) (*models.User, error) {
	u := *user
	u.Normalize()
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(u.ID); err != nil {
		return nil, err
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeNotFound, "user %d not found", id)
	}
	return &u, nil
}

// DeleteUser drops the user's edges in both directions and its likes before the user itself.
func (s *Store) DeleteUser(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(id); err != nil {
		return err
	}

	delete(s.friends, id)
	for _, edges := range s.friends {
		delete(edges, id)
	}
	for _, users := range s.likes {
		delete(users, id)
	}
	delete(s.users, id)
	return nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) usersByID(ids []uint) []models.User {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users
}
