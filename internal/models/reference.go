package models

// Genre and Rating are pre-seeded lookup rows; their ids are fixed.
type Genre struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (Genre) TableName() string {
	return "genres"
}

type Rating struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(10);not null;uniqueIndex" json:"name"`
}

func (Rating) TableName() string {
	return "ratings"
}

// DefaultGenres is the genre catalogue seeded into every backend.
var DefaultGenres = []Genre{
	{ID: 1, Name: "Comedy"},
	{ID: 2, Name: "Drama"},
	{ID: 3, Name: "Animation"},
	{ID: 4, Name: "Thriller"},
	{ID: 5, Name: "Documentary"},
	{ID: 6, Name: "Action"},
}

// DefaultRatings is the MPA content rating catalogue seeded into every backend.
var DefaultRatings = []Rating{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}
