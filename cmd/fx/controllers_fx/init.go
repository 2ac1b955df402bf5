package controllers_fx

import (
	"go.uber.org/fx"
	"tripnect/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewGeocodeController),
	fx.Provide(controllers.NewGroupTripController),
	fx.Provide(controllers.NewJoinRequestController),
	fx.Provide(controllers.NewHealthController))
