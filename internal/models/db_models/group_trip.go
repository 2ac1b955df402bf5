package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	GroupTripActive    = "active"
	GroupTripCompleted = "completed"
	GroupTripCancelled = "cancelled"

	JoinRequestPending  = "pending"
	JoinRequestAccepted = "accepted"
	JoinRequestRejected = "rejected"

	ParticipantHost   = "host"
	ParticipantMember = "member"
)

// GroupTrip is a trip a host opens up for other travellers to join.
type GroupTrip struct {
	BaseModel
	HostID              uuid.UUID `gorm:"type:uuid;index;not null"`
	Title               string    `gorm:"size:200;not null"`
	Destination         string    `gorm:"size:255;index;not null"`
	StartDate           time.Time `gorm:"type:date;index;not null"`
	EndDate             time.Time `gorm:"type:date;not null"`
	Description         string
	OpenSlots           int            `gorm:"not null"`
	CurrentParticipants int            `gorm:"not null;default:1"`
	BudgetMin           float64        `gorm:"not null;default:0"`
	BudgetMax           float64        `gorm:"not null;default:0"`
	Preferences         datatypes.JSON `gorm:"type:jsonb"`
	Status              string         `gorm:"size:16;index;not null;default:active"`

	Host         Account       `gorm:"foreignKey:HostID"`
	Participants []Participant `gorm:"foreignKey:TripID"`
}

type JoinRequest struct {
	BaseModel
	TripID  uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Message string
	Status  string `gorm:"size:16;not null;default:pending"`

	Trip GroupTrip `gorm:"foreignKey:TripID"`
	User Account   `gorm:"foreignKey:UserID"`
}

type Participant struct {
	BaseModel
	TripID   uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Role     string    `gorm:"size:16;not null;default:member"`
	JoinedAt time.Time `gorm:"not null"`

	User Account `gorm:"foreignKey:UserID"`
}
