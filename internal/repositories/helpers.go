package repositories

import (
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// internalError passes AppErrors through and wraps anything else as INTERNAL_ERROR.
func internalError(err error, message string) error {
	if errors.CodeOf(err) != "" {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeInternalError, message)
}

func requireUser(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check user")
	}
	if count == 0 {
		return errors.Newf(errors.ErrCodeNotFound, "user %d not found", id)
	}
	return nil
}

// lockUsers checks that every id exists and row-locks the users in id order,
// which serializes concurrent writers touching the same pair of users.
func lockUsers(tx *gorm.DB, ids ...uint) error {
	var users []models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id IN ?", ids).
		Order("id").
		Find(&users).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to lock users")
	}

	found := make(map[uint]bool, len(users))
	for _, u := range users {
		found[u.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return errors.Newf(errors.ErrCodeNotFound, "user %d not found", id)
		}
	}
	return nil
}

func requireFilm(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Film{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check film")
	}
	if count == 0 {
		return errors.Newf(errors.ErrCodeNotFound, "film %d not found", id)
	}
	return nil
}

func requireRating(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Rating{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check rating")
	}
	if count == 0 {
		return errors.Newf(errors.ErrCodeNotFound, "rating %d not found", id)
	}
	return nil
}

func requireGenres(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	var existing []uint
	if err := tx.Model(&models.Genre{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check genres")
	}

	found := make(map[uint]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	for _, id := range ids {
		if !found[id] {
			return errors.Newf(errors.ErrCodeNotFound, "genre %d not found", id)
		}
	}
	return nil
}

type filmGenreRow struct {
	FilmID    uint
	GenreID   uint
	GenreName string
}

// loadFilmRelations fills Genres (id order) and Likes (user id order) of films in two queries.
func loadFilmRelations(db *gorm.DB, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	ids := make([]uint, len(films))
	index := make(map[uint]int, len(films))
	for i := range films {
		ids[i] = films[i].ID
		index[films[i].ID] = i
		films[i].Genres = []models.Genre{}
		films[i].Likes = []uint{}
	}

	var rows []filmGenreRow
	err := db.Table("film_genres").
		Select("film_genres.film_id, genres.id AS genre_id, genres.name AS genre_name").
		Joins("JOIN genres ON genres.id = film_genres.genre_id").
		Where("film_genres.film_id IN ?", ids).
		Order("film_genres.film_id, genres.id").
		Scan(&rows).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load film genres")
	}
	for _, row := range rows {
		f := &films[index[row.FilmID]]
		f.Genres = append(f.Genres, models.Genre{ID: row.GenreID, Name: row.GenreName})
	}

	var likes []models.FilmLike
	err = db.Select("film_id", "user_id").
		Where("film_id IN ?", ids).
		Order("film_id, user_id").
		Find(&likes).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load film likes")
	}
	for _, like := range likes {
		f := &films[index[like.FilmID]]
		f.Likes = append(f.Likes, like.UserID)
	}

	return nil
}
