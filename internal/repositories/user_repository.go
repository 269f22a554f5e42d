package repositories

import (
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(user *models.User) (*models.User, error) {
	u := *user
	u.ID = 0
	u.Normalize()
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := r.db.Create(&u).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
	}
	return &u, nil
}

// UpdateUser overwrites every scalar field of an existing user
func (r *UserRepository) UpdateUser(user *models.User) (*models.User, error) {
	u := *user
	u.Normalize()
	if err := u.Validate(); err != nil {
		return nil, err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, u.ID); err != nil {
			return err
		}
		if err := tx.Save(&u).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update user")
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, "failed to update user")
	}
	return &u, nil
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.Newf(errors.ErrCodeNotFound, "user %d not found", id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// DeleteUser removes the user's friend edges and likes, then the user
func (r *UserRepository) DeleteUser(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.Friendship{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete friendships")
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete likes")
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete user")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "failed to delete user")
	}
	return nil
}

// ListUsers returns all users in id order
func (r *UserRepository) ListUsers() ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list users")
	}
	return users, nil
}
