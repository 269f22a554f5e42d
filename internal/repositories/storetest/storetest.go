// Package storetest holds the behaviour every repositories.Store must show.
// Backends call Run from their own tests with a factory that hands out an
// empty, seeded store per subtest.
package storetest

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store with the reference data seeded.
type Factory func(t *testing.T) repositories.Store

const (
	ratingPG     = 2
	genreComedy  = 1
	genreDrama   = 2
	genreAction  = 6
	missingID    = 9999
	cinemaOrigin = "1895-12-28"
)

func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("Films", func(t *testing.T) { testFilms(t, newStore) })
	t.Run("Likes", func(t *testing.T) { testLikes(t, newStore) })
	t.Run("Friends", func(t *testing.T) { testFriends(t, newStore) })
	t.Run("Reference", func(t *testing.T) { testReference(t, newStore) })
	t.Run("Cascades", func(t *testing.T) { testCascades(t, newStore) })
	t.Run("Concurrency", func(t *testing.T) { testConcurrency(t, newStore) })
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func newUser(login string) *models.User {
	return &models.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     strings.ToUpper(login),
		Birthday: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
	}
}

func newFilm(name string, genres ...uint) *models.Film {
	f := &models.Film{
		Name:        name,
		Description: "about " + name,
		ReleaseDate: time.Date(2001, 11, 16, 0, 0, 0, 0, time.UTC),
		Duration:    152,
		RatingID:    ratingPG,
	}
	for _, id := range genres {
		f.Genres = append(f.Genres, models.Genre{ID: id})
	}
	return f
}

func mustCreateUser(t *testing.T, s repositories.Store, login string) *models.User {
	t.Helper()
	u, err := s.CreateUser(newUser(login))
	require.NoError(t, err)
	return u
}

func mustCreateFilm(t *testing.T, s repositories.Store, name string, genres ...uint) *models.Film {
	t.Helper()
	f, err := s.CreateFilm(newFilm(name, genres...))
	require.NoError(t, err)
	return f
}

func assertFriendship(t *testing.T, s repositories.Store, userID, friendID uint, want string) {
	t.Helper()
	status, ok, err := s.FriendshipStatus(userID, friendID)
	require.NoError(t, err)
	require.True(t, ok, "edge %d -> %d should exist", userID, friendID)
	assert.Equal(t, want, status, "edge %d -> %d", userID, friendID)
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func filmIDs(films []models.Film) []uint {
	ids := make([]uint, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	return ids
}

func genreIDs(genres []models.Genre) []uint {
	ids := make([]uint, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
	}
	return ids
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errors.CodeOf(err), "unexpected error: %v", err)
}

func testUsers(t *testing.T, newStore Factory) {
	t.Run("create assigns an id absent before the call", func(t *testing.T) {
		s := newStore(t)
		before, err := s.ListUsers()
		require.NoError(t, err)

		draft := newUser("neo")
		draft.ID = 42
		u, err := s.CreateUser(draft)
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.NotContains(t, userIDs(before), u.ID)
		assert.Equal(t, uint(42), draft.ID, "input must not be modified")

		got, err := s.GetUser(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "neo@example.com", got.Email)
		assert.Equal(t, "neo", got.Login)
		assert.True(t, got.Birthday.Equal(date(t, "1990-05-17")))
	})

	t.Run("blank name defaults to login", func(t *testing.T) {
		s := newStore(t)
		draft := newUser("trinity")
		draft.Name = "  "
		u, err := s.CreateUser(draft)
		require.NoError(t, err)
		assert.Equal(t, "trinity", u.Name)
	})

	t.Run("text at the column limits is accepted", func(t *testing.T) {
		s := newStore(t)
		draft := newUser(strings.Repeat("л", models.MaxLoginLength))
		draft.Email = strings.Repeat("e", models.MaxEmailLength-len("@example.com")) + "@example.com"
		draft.Name = strings.Repeat("n", models.MaxNameLength)
		u, err := s.CreateUser(draft)
		require.NoError(t, err)

		got, err := s.GetUser(u.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.Login, got.Login)
		assert.Equal(t, draft.Email, got.Email)
	})

	t.Run("invalid drafts are rejected", func(t *testing.T) {
		s := newStore(t)
		tests := []struct {
			name   string
			mutate func(u *models.User)
		}{
			{"email without at", func(u *models.User) { u.Email = "mail.example.com" }},
			{"email with two ats", func(u *models.User) { u.Email = "a@b@example.com" }},
			{"blank email", func(u *models.User) { u.Email = " " }},
			{"empty login", func(u *models.User) { u.Login = "" }},
			{"login with whitespace", func(u *models.User) { u.Login = "mr anderson" }},
			{"birthday in the future", func(u *models.User) { u.Birthday = time.Now().AddDate(1, 0, 0) }},
			{"missing birthday", func(u *models.User) { u.Birthday = time.Time{} }},
			{"email too long", func(u *models.User) { u.Email = strings.Repeat("e", models.MaxEmailLength) + "@example.com" }},
			{"login too long", func(u *models.User) { u.Login = strings.Repeat("л", models.MaxLoginLength+1) }},
			{"name too long", func(u *models.User) { u.Name = strings.Repeat("n", models.MaxNameLength+1) }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				draft := newUser("morpheus")
				tt.mutate(draft)
				_, err := s.CreateUser(draft)
				assertCode(t, err, errors.ErrCodeValidation)
			})
		}

		users, err := s.ListUsers()
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("update overwrites scalar fields", func(t *testing.T) {
		s := newStore(t)
		u := mustCreateUser(t, s, "smith")

		u.Email = "agent@matrix.io"
		u.Name = "Agent Smith"
		u.Birthday = date(t, "1970-01-01")
		updated, err := s.UpdateUser(u)
		require.NoError(t, err)
		assert.Equal(t, u.ID, updated.ID)

		got, err := s.GetUser(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "agent@matrix.io", got.Email)
		assert.Equal(t, "Agent Smith", got.Name)
		assert.True(t, got.Birthday.Equal(date(t, "1970-01-01")))
	})

	t.Run("update of unknown user is not found", func(t *testing.T) {
		s := newStore(t)
		draft := newUser("ghost")
		draft.ID = missingID
		_, err := s.UpdateUser(draft)
		assertCode(t, err, errors.ErrCodeNotFound)
	})

	t.Run("update validates before lookup", func(t *testing.T) {
		s := newStore(t)
		draft := newUser("ghost")
		draft.ID = missingID
		draft.Email = "broken"
		_, err := s.UpdateUser(draft)
		assertCode(t, err, errors.ErrCodeValidation)
	})

	t.Run("get and delete of unknown user are not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetUser(missingID)
		assertCode(t, err, errors.ErrCodeNotFound)
		assertCode(t, s.DeleteUser(missingID), errors.ErrCodeNotFound)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		s := newStore(t)
		first := mustCreateUser(t, s, "oracle")
		require.NoError(t, s.DeleteUser(first.ID))

		_, err := s.GetUser(first.ID)
		assertCode(t, err, errors.ErrCodeNotFound)

		second := mustCreateUser(t, s, "oracle")
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("list returns users in id order", func(t *testing.T) {
		s := newStore(t)
		a := mustCreateUser(t, s, "a")
		b := mustCreateUser(t, s, "b")
		c := mustCreateUser(t, s, "c")

		users, err := s.ListUsers()
		require.NoError(t, err)
		assert.Equal(t, []uint{a.ID, b.ID, c.ID}, userIDs(users))
	})
}

func testFilms(t *testing.T, newStore Factory) {
	t.Run("create resolves rating and genres", func(t *testing.T) {
		s := newStore(t)
		draft := newFilm("Harry Potter", genreDrama, genreComedy, genreDrama)
		draft.ID = 77
		f, err := s.CreateFilm(draft)
		require.NoError(t, err)

		assert.NotZero(t, f.ID)
		assert.Equal(t, uint(ratingPG), f.RatingID)
		assert.Equal(t, "PG", f.Rating.Name)
		assert.Equal(t, []uint{genreComedy, genreDrama}, genreIDs(f.Genres))
		assert.Equal(t, "Comedy", f.Genres[0].Name)
		assert.Empty(t, f.Likes)

		got, err := s.GetFilm(f.ID)
		require.NoError(t, err)
		assert.Equal(t, "Harry Potter", got.Name)
		assert.Equal(t, 152, got.Duration)
		assert.True(t, got.ReleaseDate.Equal(date(t, "2001-11-16")))
		assert.Equal(t, []uint{genreComedy, genreDrama}, genreIDs(got.Genres))
	})

	t.Run("rating may be given as nested object", func(t *testing.T) {
		s := newStore(t)
		draft := newFilm("Nested")
		draft.RatingID = 0
		draft.Rating = models.Rating{ID: 4}
		f, err := s.CreateFilm(draft)
		require.NoError(t, err)
		assert.Equal(t, "R", f.Rating.Name)
	})

	t.Run("release date boundary", func(t *testing.T) {
		s := newStore(t)

		early := newFilm("Too early")
		early.ReleaseDate = date(t, cinemaOrigin).AddDate(0, 0, -1)
		_, err := s.CreateFilm(early)
		assertCode(t, err, errors.ErrCodeValidation)

		first := newFilm("Arrival of a Train")
		first.ReleaseDate = date(t, cinemaOrigin)
		_, err = s.CreateFilm(first)
		require.NoError(t, err)
	})

	t.Run("invalid drafts are rejected", func(t *testing.T) {
		s := newStore(t)
		tests := []struct {
			name   string
			mutate func(f *models.Film)
		}{
			{"blank name", func(f *models.Film) { f.Name = "   " }},
			{"description too long", func(f *models.Film) { f.Description = strings.Repeat("x", models.MaxDescriptionLength+1) }},
			{"zero duration", func(f *models.Film) { f.Duration = 0 }},
			{"negative duration", func(f *models.Film) { f.Duration = -5 }},
			{"missing rating", func(f *models.Film) { f.RatingID = 0 }},
			{"missing release date", func(f *models.Film) { f.ReleaseDate = time.Time{} }},
			{"name too long", func(f *models.Film) { f.Name = strings.Repeat("ф", models.MaxFilmNameLength+1) }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				draft := newFilm("Broken")
				tt.mutate(draft)
				_, err := s.CreateFilm(draft)
				assertCode(t, err, errors.ErrCodeValidation)
			})
		}

		films, err := s.ListFilms()
		require.NoError(t, err)
		assert.Empty(t, films)
	})

	t.Run("text at the column limits is accepted", func(t *testing.T) {
		s := newStore(t)
		draft := newFilm("Long")
		draft.Name = strings.Repeat("ф", models.MaxFilmNameLength)
		draft.Description = strings.Repeat("x", models.MaxDescriptionLength)
		f, err := s.CreateFilm(draft)
		require.NoError(t, err)

		got, err := s.GetFilm(f.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.Name, got.Name)
	})

	t.Run("unknown rating or genre is not found", func(t *testing.T) {
		s := newStore(t)

		draft := newFilm("Unrated")
		draft.RatingID = missingID
		_, err := s.CreateFilm(draft)
		assertCode(t, err, errors.ErrCodeNotFound)

		_, err = s.CreateFilm(newFilm("Unknown genre", genreComedy, missingID))
		assertCode(t, err, errors.ErrCodeNotFound)

		films, err := s.ListFilms()
		require.NoError(t, err)
		assert.Empty(t, films)
	})

	t.Run("update replaces the genre set", func(t *testing.T) {
		s := newStore(t)
		f := mustCreateFilm(t, s, "Matrix", genreComedy, genreDrama)

		f.Name = "The Matrix"
		f.Genres = []models.Genre{{ID: genreAction}}
		updated, err := s.UpdateFilm(f)
		require.NoError(t, err)
		assert.Equal(t, []uint{genreAction}, genreIDs(updated.Genres))

		f.Genres = nil
		updated, err = s.UpdateFilm(f)
		require.NoError(t, err)
		assert.Empty(t, updated.Genres)

		got, err := s.GetFilm(f.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Matrix", got.Name)
		assert.Empty(t, got.Genres)
	})

	t.Run("failed update leaves the film untouched", func(t *testing.T) {
		s := newStore(t)
		f := mustCreateFilm(t, s, "Stable", genreComedy)

		f.Name = "Changed"
		f.Genres = []models.Genre{{ID: missingID}}
		_, err := s.UpdateFilm(f)
		assertCode(t, err, errors.ErrCodeNotFound)

		got, err := s.GetFilm(f.ID)
		require.NoError(t, err)
		assert.Equal(t, "Stable", got.Name)
		assert.Equal(t, []uint{genreComedy}, genreIDs(got.Genres))
	})

	t.Run("unknown film is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetFilm(missingID)
		assertCode(t, err, errors.ErrCodeNotFound)

		draft := newFilm("Ghost")
		draft.ID = missingID
		_, err = s.UpdateFilm(draft)
		assertCode(t, err, errors.ErrCodeNotFound)

		assertCode(t, s.DeleteFilm(missingID), errors.ErrCodeNotFound)
	})

	t.Run("delete and recreate yields a new id", func(t *testing.T) {
		s := newStore(t)
		first := mustCreateFilm(t, s, "Once")
		require.NoError(t, s.DeleteFilm(first.ID))

		_, err := s.GetFilm(first.ID)
		assertCode(t, err, errors.ErrCodeNotFound)

		second := mustCreateFilm(t, s, "Once")
		assert.NotEqual(t, first.ID, second.ID)

		films, err := s.ListFilms()
		require.NoError(t, err)
		assert.Equal(t, []uint{second.ID}, filmIDs(films))
	})
}

func testLikes(t *testing.T, newStore Factory) {
	t.Run("popular film scenario", func(t *testing.T) {
		s := newStore(t)
		f1 := mustCreateFilm(t, s, "F1", genreComedy)
		f2 := mustCreateFilm(t, s, "F2")
		u1 := mustCreateUser(t, s, "u1")
		u2 := mustCreateUser(t, s, "u2")

		require.NoError(t, s.AddLike(f1.ID, u1.ID))
		require.NoError(t, s.AddLike(f1.ID, u2.ID))

		popular, err := s.PopularFilms(1)
		require.NoError(t, err)
		assert.Equal(t, []uint{f1.ID}, filmIDs(popular))
		assert.Equal(t, []uint{u1.ID, u2.ID}, popular[0].Likes)
		assert.Equal(t, "PG", popular[0].Rating.Name)

		popular, err = s.PopularFilms(10)
		require.NoError(t, err)
		assert.Equal(t, []uint{f1.ID, f2.ID}, filmIDs(popular))
	})

	t.Run("add like is idempotent", func(t *testing.T) {
		s := newStore(t)
		f1 := mustCreateFilm(t, s, "F1")
		f2 := mustCreateFilm(t, s, "F2")
		u1 := mustCreateUser(t, s, "u1")
		u2 := mustCreateUser(t, s, "u2")

		require.NoError(t, s.AddLike(f2.ID, u1.ID))
		require.NoError(t, s.AddLike(f1.ID, u1.ID))
		require.NoError(t, s.AddLike(f1.ID, u2.ID))
		once, err := s.PopularFilms(10)
		require.NoError(t, err)

		require.NoError(t, s.AddLike(f2.ID, u1.ID))
		twice, err := s.PopularFilms(10)
		require.NoError(t, err)

		assert.Equal(t, filmIDs(once), filmIDs(twice))
		assert.Equal(t, []uint{f1.ID, f2.ID}, filmIDs(twice))

		got, err := s.GetFilm(f2.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{u1.ID}, got.Likes)
	})

	t.Run("ties are broken by ascending id", func(t *testing.T) {
		s := newStore(t)
		f1 := mustCreateFilm(t, s, "F1")
		f2 := mustCreateFilm(t, s, "F2")
		f3 := mustCreateFilm(t, s, "F3")
		u := mustCreateUser(t, s, "u")

		require.NoError(t, s.AddLike(f3.ID, u.ID))

		popular, err := s.PopularFilms(3)
		require.NoError(t, err)
		assert.Equal(t, []uint{f3.ID, f1.ID, f2.ID}, filmIDs(popular))
	})

	t.Run("remove like", func(t *testing.T) {
		s := newStore(t)
		f1 := mustCreateFilm(t, s, "F1")
		f2 := mustCreateFilm(t, s, "F2")
		u := mustCreateUser(t, s, "u")

		require.NoError(t, s.AddLike(f2.ID, u.ID))
		require.NoError(t, s.RemoveLike(f2.ID, u.ID))
		require.NoError(t, s.RemoveLike(f2.ID, u.ID), "removing an absent like succeeds")

		popular, err := s.PopularFilms(10)
		require.NoError(t, err)
		assert.Equal(t, []uint{f1.ID, f2.ID}, filmIDs(popular))
		assert.Empty(t, popular[1].Likes)
	})

	t.Run("likes require existing film and user", func(t *testing.T) {
		s := newStore(t)
		f := mustCreateFilm(t, s, "F")
		u := mustCreateUser(t, s, "u")

		assertCode(t, s.AddLike(missingID, u.ID), errors.ErrCodeNotFound)
		assertCode(t, s.AddLike(f.ID, missingID), errors.ErrCodeNotFound)
		assertCode(t, s.RemoveLike(missingID, u.ID), errors.ErrCodeNotFound)
		assertCode(t, s.RemoveLike(f.ID, missingID), errors.ErrCodeNotFound)
	})

	t.Run("non-positive limit is invalid", func(t *testing.T) {
		s := newStore(t)
		for _, limit := range []int{0, -1} {
			_, err := s.PopularFilms(limit)
			assertCode(t, err, errors.ErrCodeInvalidArgument)
		}
	})

	t.Run("empty catalogue", func(t *testing.T) {
		s := newStore(t)
		popular, err := s.PopularFilms(10)
		require.NoError(t, err)
		assert.NotNil(t, popular)
		assert.Empty(t, popular)
	})
}

func testFriends(t *testing.T, newStore Factory) {
	t.Run("add and remove scenario", func(t *testing.T) {
		s := newStore(t)
		u1 := mustCreateUser(t, s, "u1")
		u2 := mustCreateUser(t, s, "u2")

		require.NoError(t, s.AddFriend(u1.ID, u2.ID))
		ids, err := s.FriendIDs(u1.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{u2.ID}, ids)

		require.NoError(t, s.RemoveFriend(u1.ID, u2.ID))
		ids, err = s.FriendIDs(u1.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("request is directed until reciprocated", func(t *testing.T) {
		s := newStore(t)
		u1 := mustCreateUser(t, s, "u1")
		u2 := mustCreateUser(t, s, "u2")

		require.NoError(t, s.AddFriend(u1.ID, u2.ID))
		require.NoError(t, s.AddFriend(u1.ID, u2.ID), "repeating a request is a no-op")

		ids, err := s.FriendIDs(u2.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
		assertFriendship(t, s, u1.ID, u2.ID, models.FriendshipStatusPending)
		_, ok, err := s.FriendshipStatus(u2.ID, u1.ID)
		require.NoError(t, err)
		assert.False(t, ok, "no reverse edge before reciprocation")

		require.NoError(t, s.AddFriend(u2.ID, u1.ID))
		ids, err = s.FriendIDs(u2.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{u1.ID}, ids)
		assertFriendship(t, s, u1.ID, u2.ID, models.FriendshipStatusConfirmed)
		assertFriendship(t, s, u2.ID, u1.ID, models.FriendshipStatusConfirmed)

		friends, err := s.Friends(u1.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{u2.ID}, userIDs(friends))
		assert.Equal(t, "u2@example.com", friends[0].Email)
	})

	t.Run("remove from either side drops both edges", func(t *testing.T) {
		s := newStore(t)
		u1 := mustCreateUser(t, s, "u1")
		u2 := mustCreateUser(t, s, "u2")
		require.NoError(t, s.AddFriend(u1.ID, u2.ID))
		require.NoError(t, s.AddFriend(u2.ID, u1.ID))

		require.NoError(t, s.RemoveFriend(u2.ID, u1.ID))
		require.NoError(t, s.RemoveFriend(u2.ID, u1.ID), "removing an absent edge succeeds")

		for _, id := range []uint{u1.ID, u2.ID} {
			ids, err := s.FriendIDs(id)
			require.NoError(t, err)
			assert.Empty(t, ids)
		}
	})

	t.Run("self friendship is invalid", func(t *testing.T) {
		s := newStore(t)
		u := mustCreateUser(t, s, "narcissus")
		assertCode(t, s.AddFriend(u.ID, u.ID), errors.ErrCodeValidation)
	})

	t.Run("unknown users are not found", func(t *testing.T) {
		s := newStore(t)
		u := mustCreateUser(t, s, "u")

		assertCode(t, s.AddFriend(u.ID, missingID), errors.ErrCodeNotFound)
		assertCode(t, s.AddFriend(missingID, u.ID), errors.ErrCodeNotFound)
		assertCode(t, s.RemoveFriend(u.ID, missingID), errors.ErrCodeNotFound)

		_, err := s.FriendIDs(missingID)
		assertCode(t, err, errors.ErrCodeNotFound)
		_, err = s.Friends(missingID)
		assertCode(t, err, errors.ErrCodeNotFound)
		_, err = s.MutualFriends(u.ID, missingID)
		assertCode(t, err, errors.ErrCodeNotFound)
		_, err = s.MutualFriends(missingID, u.ID)
		assertCode(t, err, errors.ErrCodeNotFound)
		_, _, err = s.FriendshipStatus(u.ID, missingID)
		assertCode(t, err, errors.ErrCodeNotFound)
	})

	t.Run("mutual friends are symmetric", func(t *testing.T) {
		s := newStore(t)
		a := mustCreateUser(t, s, "a")
		b := mustCreateUser(t, s, "b")
		c := mustCreateUser(t, s, "c")
		d := mustCreateUser(t, s, "d")
		e := mustCreateUser(t, s, "e")

		for _, id := range []uint{c.ID, d.ID, e.ID} {
			require.NoError(t, s.AddFriend(a.ID, id))
		}
		for _, id := range []uint{e.ID, c.ID} {
			require.NoError(t, s.AddFriend(b.ID, id))
		}

		ab, err := s.MutualFriends(a.ID, b.ID)
		require.NoError(t, err)
		ba, err := s.MutualFriends(b.ID, a.ID)
		require.NoError(t, err)

		assert.Equal(t, []uint{c.ID, e.ID}, userIDs(ab))
		assert.ElementsMatch(t, userIDs(ab), userIDs(ba))

		none, err := s.MutualFriends(c.ID, d.ID)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}

func testReference(t *testing.T, newStore Factory) {
	s := newStore(t)

	genres, err := s.ListGenres()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultGenres, genres)

	ratings, err := s.ListRatings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRatings, ratings)

	g, err := s.GetGenre(genreAction)
	require.NoError(t, err)
	assert.Equal(t, "Action", g.Name)

	r, err := s.GetRating(3)
	require.NoError(t, err)
	assert.Equal(t, "PG-13", r.Name)

	_, err = s.GetGenre(missingID)
	assertCode(t, err, errors.ErrCodeNotFound)
	_, err = s.GetRating(missingID)
	assertCode(t, err, errors.ErrCodeNotFound)
}

func testCascades(t *testing.T, newStore Factory) {
	t.Run("deleting a user removes its edges and likes", func(t *testing.T) {
		s := newStore(t)
		gone := mustCreateUser(t, s, "gone")
		a := mustCreateUser(t, s, "a")
		b := mustCreateUser(t, s, "b")
		f := mustCreateFilm(t, s, "F")

		require.NoError(t, s.AddFriend(a.ID, gone.ID))
		require.NoError(t, s.AddFriend(gone.ID, b.ID))
		require.NoError(t, s.AddFriend(a.ID, b.ID))
		require.NoError(t, s.AddLike(f.ID, gone.ID))
		require.NoError(t, s.AddLike(f.ID, a.ID))

		require.NoError(t, s.DeleteUser(gone.ID))

		ids, err := s.FriendIDs(a.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{b.ID}, ids)

		got, err := s.GetFilm(f.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{a.ID}, got.Likes)
	})

	t.Run("deleting a film removes its likes", func(t *testing.T) {
		s := newStore(t)
		f1 := mustCreateFilm(t, s, "F1", genreComedy)
		f2 := mustCreateFilm(t, s, "F2")
		u := mustCreateUser(t, s, "u")
		require.NoError(t, s.AddLike(f1.ID, u.ID))

		require.NoError(t, s.DeleteFilm(f1.ID))

		popular, err := s.PopularFilms(10)
		require.NoError(t, err)
		assert.Equal(t, []uint{f2.ID}, filmIDs(popular))

		assertCode(t, s.AddLike(f1.ID, u.ID), errors.ErrCodeNotFound)
	})
}

func testConcurrency(t *testing.T, newStore Factory) {
	const workers = 16

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		s := newStore(t)

		var wg sync.WaitGroup
		ids := make([]uint, workers)
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				u, err := s.CreateUser(newUser(fmt.Sprintf("user%d", i)))
				errs[i] = err
				if err == nil {
					ids[i] = u.ID
				}
			}(i)
		}
		wg.Wait()

		seen := make(map[uint]bool, workers)
		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
			assert.False(t, seen[ids[i]], "id %d assigned twice", ids[i])
			seen[ids[i]] = true
		}
	})

	t.Run("concurrent likes are all counted", func(t *testing.T) {
		s := newStore(t)
		f := mustCreateFilm(t, s, "Hit")
		users := make([]*models.User, workers)
		for i := range users {
			users[i] = mustCreateUser(t, s, fmt.Sprintf("fan%d", i))
		}

		var wg sync.WaitGroup
		errs := make(chan error, workers*2)
		for _, u := range users {
			wg.Add(1)
			go func(id uint) {
				defer wg.Done()
				errs <- s.AddLike(f.ID, id)
				errs <- s.AddLike(f.ID, id)
			}(u.ID)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := s.GetFilm(f.ID)
		require.NoError(t, err)
		assert.Len(t, got.Likes, workers)
	})

	t.Run("crossing requests confirm the friendship", func(t *testing.T) {
		s := newStore(t)
		a := mustCreateUser(t, s, "a")
		b := mustCreateUser(t, s, "b")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() { defer wg.Done(); errs[0] = s.AddFriend(a.ID, b.ID) }()
		go func() { defer wg.Done(); errs[1] = s.AddFriend(b.ID, a.ID) }()
		wg.Wait()
		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		ab, err := s.FriendIDs(a.ID)
		require.NoError(t, err)
		ba, err := s.FriendIDs(b.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{b.ID}, ab)
		assert.Equal(t, []uint{a.ID}, ba)
		assertFriendship(t, s, a.ID, b.ID, models.FriendshipStatusConfirmed)
		assertFriendship(t, s, b.ID, a.ID, models.FriendshipStatusConfirmed)
	})
}
