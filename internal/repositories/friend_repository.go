package repositories

import (
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// AddFriend sends a friend request, confirming both edges when the other user asked first
func (r *FriendRepository) AddFriend(userID, friendID uint) error {
	if userID == friendID {
		return errors.New(errors.ErrCodeValidation, "user cannot befriend themselves")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx, userID, friendID); err != nil {
			return err
		}

		var edges []models.Friendship
		result := tx.Where(
			"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID,
		).Find(&edges)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check existing friendship")
		}

		var reverse *models.Friendship
		for i := range edges {
			if edges[i].UserID == userID {
				// Already requested.
				return nil
			}
			reverse = &edges[i]
		}

		status := models.FriendshipStatusPending
		if reverse != nil {
			status = models.FriendshipStatusConfirmed
			if reverse.Status != models.FriendshipStatusConfirmed {
				reverse.Status = models.FriendshipStatusConfirmed
				if err := tx.Omit(clause.Associations).Save(reverse).Error; err != nil {
					return errors.Wrap(err, errors.ErrCodeInternalError, "failed to confirm friendship")
				}
			}
		}

		friendship := &models.Friendship{
			UserID:   userID,
			FriendID: friendID,
			Status:   status,
		}
		if err := tx.Omit(clause.Associations).Create(friendship).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create friend request")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "failed to add friend")
	}
	return nil
}

// RemoveFriend removes the edges between the two users in both directions
func (r *FriendRepository) RemoveFriend(userID, friendID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx, userID, friendID); err != nil {
			return err
		}
		result := tx.Where(
			"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID,
		).Delete(&models.Friendship{})
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove friend")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "failed to remove friend")
	}
	return nil
}

// FriendIDs lists the targets of the user's outgoing edges
func (r *FriendRepository) FriendIDs(userID uint) ([]uint, error) {
	if err := requireUser(r.db, userID); err != nil {
		return nil, err
	}

	ids := []uint{}
	err := r.db.Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friend ids")
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// Friends retrieves the users the user has an outgoing edge to
func (r *FriendRepository) Friends(userID uint) ([]models.User, error) {
	if err := requireUser(r.db, userID); err != nil {
		return nil, err
	}

	friends := []models.User{}
	err := r.db.Where("id IN (?)", r.outgoing(userID)).
		Order("id").
		Find(&friends).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friends")
	}
	return friends, nil
}

// MutualFriends retrieves the users both users have an outgoing edge to
func (r *FriendRepository) MutualFriends(userID, otherID uint) ([]models.User, error) {
	if err := requireUser(r.db, userID); err != nil {
		return nil, err
	}
	if err := requireUser(r.db, otherID); err != nil {
		return nil, err
	}

	friends := []models.User{}
	err := r.db.Where("id IN (?)", r.outgoing(userID)).
		Where("id IN (?)", r.outgoing(otherID)).
		Order("id").
		Find(&friends).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get mutual friends")
	}
	return friends, nil
}

// FriendshipStatus reads the edge from userID to friendID
func (r *FriendRepository) FriendshipStatus(userID, friendID uint) (string, bool, error) {
	if err := requireUser(r.db, userID); err != nil {
		return "", false, err
	}
	if err := requireUser(r.db, friendID); err != nil {
		return "", false, err
	}

	var edge models.Friendship
	result := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).First(&edge)
	if result.Error == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if result.Error != nil {
		return "", false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get friendship status")
	}
	return edge.Status, true, nil
}

func (r *FriendRepository) outgoing(userID uint) *gorm.DB {
	return r.db.Model(&models.Friendship{}).Select("friend_id").Where("user_id = ?", userID)
}
