package health_fx

import (
	"go.uber.org/fx"
	"tripnect/internal/services"
)

var Module = fx.Provide(services.NewHealthService)
