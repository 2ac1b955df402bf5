package group_trip_fx

import (
	"go.uber.org/fx"
	"tripnect/internal/repositories"
	"tripnect/internal/services"
)

var Module = fx.Provide(
	repositories.NewGroupTripRepository,
	repositories.NewJoinRequestRepository,
	repositories.NewParticipantRepository,
	services.NewGroupTripService,
	services.NewJoinRequestService,
)
