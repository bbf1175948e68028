package pet

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	OwnerID uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`

	Name     string  `gorm:"column:name;type:varchar(50);not null"`
	Species  string  `gorm:"column:species;type:varchar(50);not null"`
	Breed    string  `gorm:"column:breed;type:varchar(100)"`
	AgeYears int     `gorm:"column:age_years"`
	WeightKg float64 `gorm:"column:weight_kg"`

	// Photo storage is external; only the URL is kept here.
	ImageURL string `gorm:"column:image_url;type:text"`
}

func (Pet) TableName() string {
	return "clinic.pets"
}

type CreatePetCommand struct {
	OwnerID  uuid.UUID
	Name     string
	Species  string
	Breed    string
	AgeYears int
	WeightKg float64
	ImageURL string
}

type UpdatePetCommand struct {
	Name     *string
	Breed    *string
	AgeYears *int
	WeightKg *float64
	ImageURL *string
}
