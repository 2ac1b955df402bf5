package config_fx

import (
	"go.uber.org/fx"
	"tripnect/internal/config"
)

var Module = fx.Provide(config.Load)
