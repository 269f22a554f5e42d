package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is a directed edge from UserID to FriendID.
type Friendship struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_friendship,unique"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FriendID  uint      `gorm:"not null;index:idx_friendship,unique;index"`
	Friend    User      `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Friendship status constants
const (
	FriendshipStatusPending   = "pending"
	FriendshipStatusConfirmed = "confirmed"
)

// BeforeSave hook for status validation
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.Status != FriendshipStatusPending && f.Status != FriendshipStatusConfirmed {
		return gorm.ErrInvalidData
	}
	if f.UserID == f.FriendID {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Friendship) TableName() string {
	return "friends"
}
