package repositories

import (
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// CreateFilm stores the film and its genre links in one transaction
func (r *FilmRepository) CreateFilm(film *models.Film) (*models.Film, error) {
	f := *film
	f.ID = 0
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireRating(tx, f.RatingID); err != nil {
			return err
		}
		if err := requireGenres(tx, f.GenreIDs()); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&f).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create film")
		}
		return replaceGenres(tx, f.ID, f.GenreIDs())
	})
	if err != nil {
		return nil, internalError(err, "failed to create film")
	}

	return r.GetFilm(f.ID)
}

// UpdateFilm overwrites the film's scalar fields and replaces its genre links
func (r *FilmRepository) UpdateFilm(film *models.Film) (*models.Film, error) {
	f := *film
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, f.ID); err != nil {
			return err
		}
		if err := requireRating(tx, f.RatingID); err != nil {
			return err
		}
		if err := requireGenres(tx, f.GenreIDs()); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&f).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update film")
		}
		return replaceGenres(tx, f.ID, f.GenreIDs())
	})
	if err != nil {
		return nil, internalError(err, "failed to update film")
	}

	return r.GetFilm(f.ID)
}

// GetFilm retrieves a film with its rating, genres and likes
func (r *FilmRepository) GetFilm(id uint) (*models.Film, error) {
	var film models.Film
	result := r.db.Preload("Rating").First(&film, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.Newf(errors.ErrCodeNotFound, "film %d not found", id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get film")
	}

	films := []models.Film{film}
	if err := loadFilmRelations(r.db, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

// DeleteFilm removes the film's likes and genre links, then the film
func (r *FilmRepository) DeleteFilm(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireFilm(tx, id); err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete likes")
		}
		if err := tx.Where("film_id = ?", id).Delete(&models.FilmGenre{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete genre links")
		}
		if err := tx.Delete(&models.Film{}, id).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete film")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "failed to delete film")
	}
	return nil
}

// ListFilms returns all films in id order
func (r *FilmRepository) ListFilms() ([]models.Film, error) {
	films := []models.Film{}
	if err := r.db.Preload("Rating").Order("id").Find(&films).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list films")
	}
	if err := loadFilmRelations(r.db, films); err != nil {
		return nil, err
	}
	return films, nil
}

// replaceGenres drops every genre link of the film and inserts genreIDs.
func replaceGenres(tx *gorm.DB, filmID uint, genreIDs []uint) error {
	if err := tx.Where("film_id = ?", filmID).Delete(&models.FilmGenre{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to clear genre links")
	}
	if len(genreIDs) == 0 {
		return nil
	}

	links := make([]models.FilmGenre, len(genreIDs))
	for i, id := range genreIDs {
		links[i] = models.FilmGenre{FilmID: filmID, GenreID: id}
	}
	if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to link genres")
	}
	return nil
}
