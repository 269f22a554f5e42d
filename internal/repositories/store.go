package repositories

import "gorm.io/gorm"

// GormStore is the relational Store. Multi-statement operations run in one transaction each.
type GormStore struct {
	*UserRepository
	*FilmRepository
	*LikeRepository
	*FriendRepository
	*ReferenceRepository
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		UserRepository:      NewUserRepository(db),
		FilmRepository:      NewFilmRepository(db),
		LikeRepository:      NewLikeRepository(db),
		FriendRepository:    NewFriendRepository(db),
		ReferenceRepository: NewReferenceRepository(db),
	}
}
