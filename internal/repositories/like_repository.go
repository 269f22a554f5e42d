package repositories

import (
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// AddLike records that userID likes filmID; repeating it changes nothing
func (r *LikeRepository) AddLike(filmID, userID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, filmID); err != nil {
			return err
		}
		if err := requireUser(tx, userID); err != nil {
			return err
		}

		like := &models.FilmLike{FilmID: filmID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(like).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add like")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "failed to add like")
	}
	return nil
}

// RemoveLike deletes the like if present
func (r *LikeRepository) RemoveLike(filmID, userID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, filmID); err != nil {
			return err
		}
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		if err := tx.Where("film_id = ? AND user_id = ?", filmID, userID).Delete(&models.FilmLike{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove like")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "failed to remove like")
	}
	return nil
}

// PopularFilms ranks films by like count, aggregated in the database
func (r *LikeRepository) PopularFilms(limit int) ([]models.Film, error) {
	if limit <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidArgument, "count must be positive, got %d", limit)
	}

	films := []models.Film{}
	err := r.db.Model(&models.Film{}).
		Select("films.*").
		Joins("LEFT JOIN film_likes ON film_likes.film_id = films.id").
		Group("films.id").
		Order("COUNT(film_likes.user_id) DESC").
		Order("films.id ASC").
		Limit(limit).
		Preload("Rating").
		Find(&films).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get popular films")
	}

	if err := loadFilmRelations(r.db, films); err != nil {
		return nil, err
	}
	return films, nil
}
