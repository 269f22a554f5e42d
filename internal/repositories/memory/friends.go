package memory

import (
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

func (s *Store) AddFriend(userID, friendID uint) error {
	if userID == friendID {
		return errors.New(errors.ErrCodeValidation, "user cannot befriend themselves")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return err
	}
	if err := s.requireUser(friendID); err != nil {
		return err
	}

	if _, ok := s.friends[userID][friendID]; ok {
		return nil
	}

	status := models.FriendshipStatusPending
	if _, ok := s.friends[friendID][userID]; ok {
		status = models.FriendshipStatusConfirmed
		s.friends[friendID][userID] = status
	}

	if s.friends[userID] == nil {
		s.friends[userID] = make(map[uint]string)
	}
	s.friends[userID][friendID] = status
	return nil
}

func (s *Store) RemoveFriend(userID, friendID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return err
	}
	if err := s.requireUser(friendID); err != nil {
		return err
	}

	delete(s.friends[userID], friendID)
	delete(s.friends[friendID], userID)
	return nil
}

func (s *Store) FriendIDs(userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.friendSet(userID).sorted(), nil
}

func (s *Store) Friends(userID uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.usersByID(s.friendSet(userID).sorted()), nil
}

func (s *Store) MutualFriends(userID, otherID uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(otherID); err != nil {
		return nil, err
	}

	mine, theirs := s.friendSet(userID), s.friendSet(otherID)
	common := set{}
	for id := range mine {
		if _, ok := theirs[id]; ok {
			common[id] = struct{}{}
		}
	}
	return s.usersByID(common.sorted()), nil
}

func (s *Store) FriendshipStatus(userID, friendID uint) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireUser(userID); err != nil {
		return "", false, err
	}
	if err := s.requireUser(friendID); err != nil {
		return "", false, err
	}

	status, ok := s.friends[userID][friendID]
	return status, ok, nil
}

func (s *Store) friendSet(userID uint) set {
	ids := make(set, len(s.friends[userID]))
	for id := range s.friends[userID] {
		ids[id] = struct{}{}
	}
	return ids
}
