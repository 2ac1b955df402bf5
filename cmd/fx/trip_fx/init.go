package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripnect/internal/repositories"
	"tripnect/internal/services"
)

var Module = fx.Provide(provideTripRepo, services.NewTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}
