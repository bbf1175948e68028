package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the clinical identity of a doctor, linked 1:1 to an account in
// the identity directory. Created by an admin; the scheduling core never
// deletes it.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;not null;uniqueIndex"`

	Specialization    string `gorm:"column:specialization;type:varchar(100);not null"`
	Bio               string `gorm:"column:bio;type:text;not null"`
	ProfilePictureURL string `gorm:"column:profile_picture_url;type:text"`
}

func (Profile) TableName() string {
	return "clinic.doctor_profiles"
}

type CreateProfileCommand struct {
	AccountID         uuid.UUID
	Specialization    string
	Bio               string
	ProfilePictureURL string
}
