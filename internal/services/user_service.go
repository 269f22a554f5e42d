package services

import (
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/logger"
)

type UserService struct {
	users   repositories.UserStore
	friends repositories.FriendStore
}

func NewUserService(users repositories.UserStore, friends repositories.FriendStore) *UserService {
	return &UserService{
		users:   users,
		friends: friends,
	}
}

func (s *UserService) CreateUser(user *models.User) (*models.User, error) {
	start := time.Now()
	created, err := s.users.CreateUser(user)
	observe("create_user", start, err, "login", user.Login)
	if err != nil {
		return nil, err
	}

	logger.Info("User created", "user_id", created.ID, "login", created.Login)
	return created, nil
}

func (s *UserService) UpdateUser(user *models.User) (*models.User, error) {
	start := time.Now()
	updated, err := s.users.UpdateUser(user)
	observe("update_user", start, err, "user_id", user.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("User updated", "user_id", updated.ID)
	return updated, nil
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	start := time.Now()
	user, err := s.users.GetUser(id)
	observe("get_user", start, err, "user_id", id)
	return user, err
}

func (s *UserService) DeleteUser(id uint) error {
	start := time.Now()
	err := s.users.DeleteUser(id)
	observe("delete_user", start, err, "user_id", id)
	if err != nil {
		return err
	}

	logger.Info("User deleted", "user_id", id)
	return nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	start := time.Now()
	users, err := s.users.ListUsers()
	observe("list_users", start, err)
	return users, err
}

// AddFriend sends a friend request from userID to friendID, confirming it when friendID asked first
func (s *UserService) AddFriend(userID, friendID uint) error {
	start := time.Now()
	err := s.friends.AddFriend(userID, friendID)
	observe("add_friend", start, err, "user_id", userID, "friend_id", friendID)
	if err != nil {
		return err
	}

	logger.Info("Friend added", "user_id", userID, "friend_id", friendID)
	return nil
}

func (s *UserService) RemoveFriend(userID, friendID uint) error {
	start := time.Now()
	err := s.friends.RemoveFriend(userID, friendID)
	observe("remove_friend", start, err, "user_id", userID, "friend_id", friendID)
	if err != nil {
		return err
	}

	logger.Info("Friend removed", "user_id", userID, "friend_id", friendID)
	return nil
}

func (s *UserService) FriendIDs(userID uint) ([]uint, error) {
	start := time.Now()
	ids, err := s.friends.FriendIDs(userID)
	observe("friend_ids", start, err, "user_id", userID)
	return ids, err
}

func (s *UserService) Friends(userID uint) ([]models.User, error) {
	start := time.Now()
	friends, err := s.friends.Friends(userID)
	observe("friends", start, err, "user_id", userID)
	return friends, err
}

func (s *UserService) CommonFriends(userID, otherID uint) ([]models.User, error) {
	start := time.Now()
	friends, err := s.friends.MutualFriends(userID, otherID)
	observe("mutual_friends", start, err, "user_id", userID, "other_id", otherID)
	return friends, err
}
