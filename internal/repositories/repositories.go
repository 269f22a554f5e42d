// Package repositories defines the storage contracts of the catalog and their
// relational implementation on gorm. The transient implementation lives in the
// memory subpackage; both satisfy Store and behave identically.
//
// Every operation that takes an id checks that it exists and fails with a
// NOT_FOUND AppError before writing. Malformed input fails with
// VALIDATION_ERROR, a non-positive popular limit with INVALID_ARGUMENT.
package repositories

import "github.com/mroshb/filmorate/internal/models"

// UserStore owns the canonical user records.
type UserStore interface {
	// CreateUser assigns a fresh id and stores the user. Any id on the input is ignored.
	CreateUser(user *models.User) (*models.User, error)
	UpdateUser(user *models.User) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	// DeleteUser removes the user together with its friend edges and likes.
	DeleteUser(id uint) error
	ListUsers() ([]models.User, error)
}

// FilmStore owns the canonical film records and their genre links.
type FilmStore interface {
	// CreateFilm and UpdateFilm replace the whole genre-link set of the film.
	CreateFilm(film *models.Film) (*models.Film, error)
	UpdateFilm(film *models.Film) (*models.Film, error)
	GetFilm(id uint) (*models.Film, error)
	// DeleteFilm removes the film together with its genre links and likes.
	DeleteFilm(id uint) error
	ListFilms() ([]models.Film, error)
}

// LikeStore owns the film likes and the popularity ranking built on them.
type LikeStore interface {
	AddLike(filmID, userID uint) error
	RemoveLike(filmID, userID uint) error
	// PopularFilms orders films by like count descending, then id ascending.
	PopularFilms(limit int) ([]models.Film, error)
}

// FriendStore owns the directed friendship graph.
//
// AddFriend inserts a pending edge from userID to friendID. When the reverse
// edge already exists both edges become confirmed. Repeating a request is a
// no-op. RemoveFriend deletes the edges in both directions.
type FriendStore interface {
	AddFriend(userID, friendID uint) error
	RemoveFriend(userID, friendID uint) error
	// FriendIDs lists the targets of the user's outgoing edges in id order, whatever their status.
	FriendIDs(userID uint) ([]uint, error)
	Friends(userID uint) ([]models.User, error)
	MutualFriends(userID, otherID uint) ([]models.User, error)
	// FriendshipStatus reports the status of the edge from userID to friendID.
	// ok is false when no such edge exists.
	FriendshipStatus(userID, friendID uint) (status string, ok bool, err error)
}

// ReferenceStore reads the seeded genre and rating catalogues.
type ReferenceStore interface {
	GetGenre(id uint) (*models.Genre, error)
	ListGenres() ([]models.Genre, error)
	GetRating(id uint) (*models.Rating, error)
	ListRatings() ([]models.Rating, error)
}

type Store interface {
	UserStore
	FilmStore
	LikeStore
	FriendStore
	ReferenceStore
}
