package models

import (
	"strings"
	"time"

	"github.com/mroshb/filmorate/internal/validation"
	"github.com/mroshb/filmorate/pkg/errors"
)

// Column sizes of the users table. The varchar lengths and max= tags below must match them.
const (
	MaxEmailLength = 255
	MaxLoginLength = 100
	MaxNameLength  = 255
)

type User struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Email    string    `gorm:"type:varchar(255);not null" json:"email" validate:"required,notblank,singleat,max=255"`
	Login    string    `gorm:"type:varchar(100);not null" json:"login" validate:"required,nowhitespace,max=100"`
	Name     string    `gorm:"type:varchar(255)" json:"name" validate:"max=255"`
	Birthday time.Time `gorm:"type:date;not null" json:"birthday" validate:"required,notfuture"`
}

// Normalize defaults a blank name to the login and drops the time of day from the birthday.
func (u *User) Normalize() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	if !u.Birthday.IsZero() {
		u.Birthday = validation.Day(u.Birthday)
	}
}

// Validate checks the user against its field constraints.
func (u *User) Validate() error {
	if verr := validation.ValidateStruct(u); verr != nil {
		return errors.Wrap(verr, errors.ErrCodeValidation, verr.Error())
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
