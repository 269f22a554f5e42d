package repositories

import (
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) GetGenre(id uint) (*models.Genre, error) {
	var genre models.Genre
	result := r.db.First(&genre, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.Newf(errors.ErrCodeNotFound, "genre %d not found", id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get genre")
	}
	return &genre, nil
}

func (r *ReferenceRepository) ListGenres() ([]models.Genre, error) {
	genres := []models.Genre{}
	if err := r.db.Order("id").Find(&genres).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list genres")
	}
	return genres, nil
}

func (r *ReferenceRepository) GetRating(id uint) (*models.Rating, error) {
	var rating models.Rating
	result := r.db.First(&rating, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.Newf(errors.ErrCodeNotFound, "rating %d not found", id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get rating")
	}
	return &rating, nil
}

func (r *ReferenceRepository) ListRatings() ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.db.Order("id").Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list ratings")
	}
	return ratings, nil
}
