package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Consultation is the clinical outcome of a completed appointment. Exactly one
// exists per appointment (unique index on appointment_id) and it is written
// only by the completion transaction, never edited afterward.
type Consultation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	AppointmentID uuid.UUID `gorm:"column:appointment_id;type:uuid;not null;uniqueIndex"`

	Diagnosis string `gorm:"column:diagnosis;type:text;not null"`
	Treatment string `gorm:"column:treatment;type:text"`
	// Notes are doctor-private and never shown to the client.
	Notes string `gorm:"column:notes;type:text"`

	ServiceCost float64 `gorm:"column:service_cost;type:numeric(18,2);not null"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Consultation) TableName() string {
	return "clinic.consultations"
}

type CompleteConsultationCommand struct {
	AppointmentID uuid.UUID
	Diagnosis     string
	Treatment     string
	Notes         string
	ServiceCost   float64
}
