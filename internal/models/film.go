package models

import (
	"sort"
	"strings"
	"time"

	"github.com/mroshb/filmorate/internal/validation"
	"github.com/mroshb/filmorate/pkg/errors"
)

// Column sizes of the films table. The varchar lengths and max= tags below must match them.
const (
	MaxFilmNameLength    = 255
	MaxDescriptionLength = 200
)

type Film struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,notblank,max=255"`
	Description string    `gorm:"type:varchar(200)" json:"description" validate:"max=200"`
	ReleaseDate time.Time `gorm:"type:date;not null" json:"releaseDate" validate:"required,cinemaera"`
	Duration    int       `gorm:"not null" json:"duration" validate:"gt=0"`
	RatingID    uint      `gorm:"not null;index" json:"-" validate:"required"`
	Rating      Rating    `gorm:"foreignKey:RatingID;constraint:OnDelete:RESTRICT" json:"mpa" validate:"-"`
	Genres      []Genre   `gorm:"-" json:"genres" validate:"-"`
	Likes       []uint    `gorm:"-" json:"likes" validate:"-"`
}

// Normalize resolves the rating id from the nested rating, trims the name,
// truncates the release date to a day and dedupes the genres in id order.
func (f *Film) Normalize() {
	if f.RatingID == 0 {
		f.RatingID = f.Rating.ID
	}
	f.Name = strings.TrimSpace(f.Name)
	if !f.ReleaseDate.IsZero() {
		f.ReleaseDate = validation.Day(f.ReleaseDate)
	}

	ids := f.GenreIDs()
	genres := make([]Genre, len(ids))
	for i, id := range ids {
		genres[i] = Genre{ID: id}
	}
	f.Genres = genres
}

// Validate checks the film against its field constraints.
func (f *Film) Validate() error {
	if verr := validation.ValidateStruct(f); verr != nil {
		return errors.Wrap(verr, errors.ErrCodeValidation, verr.Error())
	}
	return nil
}

// GenreIDs returns the distinct genre ids of the film in ascending order.
func (f *Film) GenreIDs() []uint {
	seen := make(map[uint]struct{}, len(f.Genres))
	ids := make([]uint, 0, len(f.Genres))
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (Film) TableName() string {
	return "films"
}

// FilmGenre links a film to one of its genres.
type FilmGenre struct {
	FilmID  uint  `gorm:"primaryKey;autoIncrement:false"`
	Film    Film  `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`
	GenreID uint  `gorm:"primaryKey;autoIncrement:false"`
	Genre   Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:RESTRICT"`
}

func (FilmGenre) TableName() string {
	return "film_genres"
}

// FilmLike records that a user likes a film. The composite key makes a like idempotent.
type FilmLike struct {
	FilmID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Film      Film      `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FilmLike) TableName() string {
	return "film_likes"
}
