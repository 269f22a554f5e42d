package services

import (
	"testing"
	"time"

	"github.com/mroshb/filmorate/internal/metrics"
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories/memory"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Use(zap.New(core))
	t.Cleanup(func() { logger.Use(zap.NewNop()) })
	return logs
}

func newServices() (*UserService, *FilmService, *ReferenceService) {
	store := memory.NewStore()
	return NewUserService(store, store), NewFilmService(store, store, 0), NewReferenceService(store)
}

func draftUser(login string) *models.User {
	return &models.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: time.Date(1980, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func draftFilm(name string) *models.Film {
	return &models.Film{
		Name:        name,
		ReleaseDate: time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC),
		Duration:    148,
		RatingID:    3,
	}
}

func TestCreateUserLogsAndCounts(t *testing.T) {
	logs := observeLogs(t)
	users, _, _ := newServices()
	counter := metrics.StoreOperations.WithLabelValues("create_user", metrics.OutcomeSuccess)
	before := testutil.ToFloat64(counter)

	u, err := users.CreateUser(draftUser("cobb"))
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.Name != "cobb" {
		t.Errorf("CreateUser() name = %q, want %q", u.Name, "cobb")
	}

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("create_user success delta = %v, want 1", got)
	}
	if n := logs.FilterMessage("User created").Len(); n != 1 {
		t.Errorf("logged %d 'User created' entries, want 1", n)
	}
}

func TestNotFoundIsLoggedAsWarning(t *testing.T) {
	logs := observeLogs(t)
	users, _, _ := newServices()

	_, err := users.GetUser(404)
	if !errors.IsNotFound(err) {
		t.Fatalf("GetUser() error = %v, want not found", err)
	}

	entries := logs.FilterMessage("Referenced record not found").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d warnings, want 1", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	if got := entries[0].ContextMap()["user_id"]; got != uint64(404) {
		t.Errorf("user_id field = %v, want 404", got)
	}
}

func TestCreateFilmSanitizesText(t *testing.T) {
	_, films, _ := newServices()

	draft := draftFilm("<b>Inception</b>")
	draft.Description = "Dreams & <script>alert(1)</script>heists"
	f, err := films.CreateFilm(draft)
	if err != nil {
		t.Fatalf("CreateFilm() error = %v", err)
	}

	if f.Name != "Inception" {
		t.Errorf("CreateFilm() name = %q, want %q", f.Name, "Inception")
	}
	if f.Description != "Dreams & heists" {
		t.Errorf("CreateFilm() description = %q, want %q", f.Description, "Dreams & heists")
	}
	if draft.Name != "<b>Inception</b>" {
		t.Errorf("CreateFilm() modified the caller's film: %q", draft.Name)
	}
}

func TestCreateFilmDropsEntityEncodedMarkup(t *testing.T) {
	_, films, _ := newServices()

	draft := draftFilm("Inception")
	draft.Description = "&lt;script&gt;alert(1)&lt;/script&gt;Dreams"
	f, err := films.CreateFilm(draft)
	if err != nil {
		t.Fatalf("CreateFilm() error = %v", err)
	}

	if f.Description != "Dreams" {
		t.Errorf("CreateFilm() description = %q, want %q", f.Description, "Dreams")
	}
}

func TestCreateFilmMarkupOnlyNameIsInvalid(t *testing.T) {
	_, films, _ := newServices()

	_, err := films.CreateFilm(draftFilm("<i></i>"))
	if !errors.IsValidation(err) {
		t.Errorf("CreateFilm() error = %v, want validation error", err)
	}
}

func TestPopularFilmsCount(t *testing.T) {
	users, films, _ := newServices()

	var ids []uint
	for i := 0; i < 12; i++ {
		f, err := films.CreateFilm(draftFilm("Film"))
		if err != nil {
			t.Fatalf("CreateFilm() error = %v", err)
		}
		ids = append(ids, f.ID)
	}
	u, err := users.CreateUser(draftUser("fan"))
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := films.AddLike(ids[11], u.ID); err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}

	three, zero := 3, 0
	tests := []struct {
		name      string
		count     *int
		wantLen   int
		wantFirst uint
		wantCode  string
	}{
		{"default count", nil, DefaultPopularCount, ids[11], ""},
		{"explicit count", &three, 3, ids[11], ""},
		{"zero count", &zero, 0, 0, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := films.PopularFilms(tt.count)
			if tt.wantCode != "" {
				if errors.CodeOf(err) != tt.wantCode {
					t.Errorf("PopularFilms() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("PopularFilms() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("PopularFilms() returned %d films, want %d", len(got), tt.wantLen)
			}
			if got[0].ID != tt.wantFirst {
				t.Errorf("PopularFilms()[0] = %d, want %d", got[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestConfiguredPopularDefault(t *testing.T) {
	store := memory.NewStore()
	films := NewFilmService(store, store, 2)
	for i := 0; i < 5; i++ {
		if _, err := films.CreateFilm(draftFilm("Film")); err != nil {
			t.Fatalf("CreateFilm() error = %v", err)
		}
	}

	got, err := films.PopularFilms(nil)
	if err != nil {
		t.Fatalf("PopularFilms() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("PopularFilms(nil) returned %d films, want 2", len(got))
	}
}

func TestCommonFriends(t *testing.T) {
	users, _, _ := newServices()

	var ids []uint
	for _, login := range []string{"a", "b", "c"} {
		u, err := users.CreateUser(draftUser(login))
		if err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}
		ids = append(ids, u.ID)
	}
	a, b, c := ids[0], ids[1], ids[2]

	for _, edge := range [][2]uint{{a, c}, {b, c}, {a, b}} {
		if err := users.AddFriend(edge[0], edge[1]); err != nil {
			t.Fatalf("AddFriend(%d, %d) error = %v", edge[0], edge[1], err)
		}
	}

	common, err := users.CommonFriends(a, b)
	if err != nil {
		t.Fatalf("CommonFriends() error = %v", err)
	}
	if len(common) != 1 || common[0].ID != c {
		t.Errorf("CommonFriends() = %v, want [%d]", common, c)
	}

	friends, err := users.Friends(a)
	if err != nil {
		t.Fatalf("Friends() error = %v", err)
	}
	if len(friends) != 2 || friends[0].ID != b || friends[1].ID != c {
		t.Errorf("Friends() = %v, want [%d %d]", friends, b, c)
	}

	if err := users.RemoveFriend(a, c); err != nil {
		t.Fatalf("RemoveFriend() error = %v", err)
	}
	got, err := users.FriendIDs(a)
	if err != nil {
		t.Fatalf("FriendIDs() error = %v", err)
	}
	if len(got) != 1 || got[0] != b {
		t.Errorf("FriendIDs() = %v, want [%d]", got, b)
	}
}

func TestReferenceLookupsByName(t *testing.T) {
	_, _, refs := newServices()

	tests := []struct {
		name     string
		lookup   func() (uint, error)
		wantID   uint
		wantCode string
	}{
		{"rating exact", func() (uint, error) {
			r, err := refs.RatingByName("PG-13")
			if err != nil {
				return 0, err
			}
			return r.ID, nil
		}, 3, ""},
		{"rating wrong case", func() (uint, error) {
			_, err := refs.RatingByName("pg-13")
			return 0, err
		}, 0, errors.ErrCodeNotFound},
		{"genre any case", func() (uint, error) {
			g, err := refs.GenreByName("thriller")
			if err != nil {
				return 0, err
			}
			return g.ID, nil
		}, 4, ""},
		{"genre unknown", func() (uint, error) {
			_, err := refs.GenreByName("Western")
			return 0, err
		}, 0, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.lookup()
			if tt.wantCode != "" {
				if errors.CodeOf(err) != tt.wantCode {
					t.Errorf("lookup error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("lookup error = %v", err)
			}
			if id != tt.wantID {
				t.Errorf("lookup id = %d, want %d", id, tt.wantID)
			}
		})
	}
}

func TestDeleteUserThroughService(t *testing.T) {
	users, films, _ := newServices()

	u, _ := users.CreateUser(draftUser("leaver"))
	f, _ := films.CreateFilm(draftFilm("Liked"))
	if err := films.AddLike(f.ID, u.ID); err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}

	if err := users.DeleteUser(u.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	got, err := films.GetFilm(f.ID)
	if err != nil {
		t.Fatalf("GetFilm() error = %v", err)
	}
	if len(got.Likes) != 0 {
		t.Errorf("GetFilm() likes = %v, want none", got.Likes)
	}
	if err := users.DeleteUser(u.ID); !errors.IsNotFound(err) {
		t.Errorf("DeleteUser() again error = %v, want not found", err)
	}
}
