package metrics_fx

import (
	"go.uber.org/fx"
	"tripnect/pkg/metrics"
)

var Module = fx.Provide(metrics.New)
