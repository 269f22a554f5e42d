package models

import (
	"strings"
	"testing"
	"time"

	"github.com/mroshb/filmorate/pkg/errors"
)

func validUser() *User {
	return &User{
		Email:    "columbus1958@gmail.com",
		Login:    "columbus1958",
		Name:     "Christopher Joseph Columbus",
		Birthday: time.Date(1958, time.September, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{
			name:    "Valid user",
			mutate:  func(u *User) {},
			wantErr: false,
		},
		{
			name:    "Empty email",
			mutate:  func(u *User) { u.Email = "" },
			wantErr: true,
		},
		{
			name:    "Email without at",
			mutate:  func(u *User) { u.Email = "columbus1958.gmail.com" },
			wantErr: true,
		},
		{
			name:    "Blank login",
			mutate:  func(u *User) { u.Login = "" },
			wantErr: true,
		},
		{
			name:    "Login with space",
			mutate:  func(u *User) { u.Login = "chris columbus" },
			wantErr: true,
		},
		{
			name:    "Birthday in the future",
			mutate:  func(u *User) { u.Birthday = time.Now().AddDate(1, 0, 0) },
			wantErr: true,
		},
		{
			name:    "Login longer than its column",
			mutate:  func(u *User) { u.Login = strings.Repeat("c", MaxLoginLength+1) },
			wantErr: true,
		},
		{
			name:    "Name longer than its column",
			mutate:  func(u *User) { u.Name = strings.Repeat("c", MaxNameLength+1) },
			wantErr: true,
		},
		{
			name:    "Empty name",
			mutate:  func(u *User) { u.Name = "" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			tt.mutate(user)

			err := user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsValidation(err) {
				t.Errorf("Validate() code = %q, want %q", errors.CodeOf(err), errors.ErrCodeValidation)
			}
		})
	}
}

func TestUser_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		want     string
	}{
		{name: "Empty name defaults to login", userName: "", want: "columbus1958"},
		{name: "Blank name defaults to login", userName: "   ", want: "columbus1958"},
		{name: "Name is kept", userName: "Chris", want: "Chris"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			user.Name = tt.userName
			user.Birthday = time.Date(1958, time.September, 10, 17, 30, 0, 0, time.UTC)

			user.Normalize()

			if user.Name != tt.want {
				t.Errorf("Name = %q, want %q", user.Name, tt.want)
			}
			if user.Birthday.Hour() != 0 || user.Birthday.Minute() != 0 {
				t.Errorf("Birthday = %v, want midnight", user.Birthday)
			}
		})
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{got: User{}.TableName(), want: "users"},
		{got: Film{}.TableName(), want: "films"},
		{got: Genre{}.TableName(), want: "genres"},
		{got: Rating{}.TableName(), want: "ratings"},
		{got: FilmGenre{}.TableName(), want: "film_genres"},
		{got: FilmLike{}.TableName(), want: "film_likes"},
		{got: Friendship{}.TableName(), want: "friends"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("TableName() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFriendship_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		edge    Friendship
		wantErr bool
	}{
		{name: "Pending", edge: Friendship{UserID: 1, FriendID: 2, Status: FriendshipStatusPending}},
		{name: "Confirmed", edge: Friendship{UserID: 1, FriendID: 2, Status: FriendshipStatusConfirmed}},
		{name: "Unknown status", edge: Friendship{UserID: 1, FriendID: 2, Status: "blocked"}, wantErr: true},
		{name: "Self edge", edge: Friendship{UserID: 1, FriendID: 1, Status: FriendshipStatusPending}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edge.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
