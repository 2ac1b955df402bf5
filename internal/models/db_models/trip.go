package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Trip is a generated itinerary owned by one account.
type Trip struct {
	BaseModel
	UserID             uuid.UUID      `gorm:"type:uuid;index;not null"`
	Title              string         `gorm:"size:255;not null"`
	StartLocation      string         `gorm:"size:255;not null"`
	Destination        string         `gorm:"size:255;not null"`
	StartDate          time.Time      `gorm:"type:date;not null"`
	EndDate            time.Time      `gorm:"type:date;not null"`
	Travelers          int            `gorm:"not null;default:1"`
	Interests          pq.StringArray `gorm:"type:text[]"`
	BudgetLevel        string         `gorm:"size:16;not null"`
	AdditionalRequests string
	Itinerary          datatypes.JSON `gorm:"type:jsonb"`
	RouteCoordinates   datatypes.JSON `gorm:"type:jsonb"`
}
