package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tripnect/cmd/fx/account_fx"
	"tripnect/cmd/fx/config_fx"
	"tripnect/cmd/fx/controllers_fx"
	"tripnect/cmd/fx/db_fx"
	"tripnect/cmd/fx/generation_fx"
	"tripnect/cmd/fx/geocode_fx"
	"tripnect/cmd/fx/group_trip_fx"
	"tripnect/cmd/fx/health_fx"
	"tripnect/cmd/fx/itinerary_fx"
	"tripnect/cmd/fx/logger_fx"
	"tripnect/cmd/fx/memcache_fx"
	"tripnect/cmd/fx/metrics_fx"
	"tripnect/cmd/fx/trip_fx"
	"tripnect/internal/api/controllers"
	"tripnect/internal/config"
	"tripnect/pkg/metrics"
	"tripnect/pkg/middleware"
	"tripnect/pkg/utils"
)

// @title Tripnect API
// @version 1.0
// @description Itinerary generation and group travel for India.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		metrics_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		geocode_fx.Module,
		generation_fx.Module,
		itinerary_fx.Module,
		trip_fx.Module,
		group_trip_fx.Module,
		health_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server",
				zap.String("addr", srv.Addr),
				zap.String("provider", cfg.Generation.Provider))
			if missing := cfg.MissingRequired(); len(missing) > 0 {
				logger.Warn("required configuration missing", zap.Strings("keys", missing))
			}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	JWT       *utils.JWTManager
	Account   *controllers.AccountController
	Itinerary *controllers.ItineraryController
	Trip      *controllers.TripController
	Geocode   *controllers.GeocodeController
	GroupTrip *controllers.GroupTripController
	JoinReq   *controllers.JoinRequestController
	Health    *controllers.HealthController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if !p.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger, p.Metrics))
	r.Use(middleware.CORSMiddleware(p.Config.CORS.AllowedOrigins))

	r.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	limiter := middleware.NewRateLimiter(p.Config.RateLimit.Requests, p.Config.RateLimit.Window)
	api := r.Group("/api/v1", limiter.Middleware())
	RegisterRoutes(api, middleware.JWTAuthMiddleware(p.JWT), p)

	return r
}

func RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc, p RouterParams) {
	authGroup := api.Group("/auth")
	authGroup.POST("/register", p.Account.Register)
	authGroup.POST("/login", p.Account.Login)
	authGroup.GET("/verify", auth, p.Account.Verify)

	api.POST("/itinerary/generate", auth, p.Itinerary.Generate)

	trips := api.Group("/trips", auth)
	trips.GET("", p.Trip.ListTrips)
	trips.GET("/:id", p.Trip.GetTrip)
	trips.PUT("/:id", p.Trip.UpdateTrip)
	trips.DELETE("/:id", p.Trip.DeleteTrip)

	geocode := api.Group("/geocode")
	geocode.GET("", p.Geocode.Geocode)
	geocode.GET("/reverse", p.Geocode.Reverse)

	groupTrips := api.Group("/group-trips")
	groupTrips.POST("", auth, p.GroupTrip.Create)
	groupTrips.GET("/feed", p.GroupTrip.Feed)
	groupTrips.GET("/mine", auth, p.GroupTrip.Mine)
	groupTrips.GET("/destinations", p.GroupTrip.SearchDestinations)
	groupTrips.GET("/:id", p.GroupTrip.Get)
	groupTrips.PUT("/:id", auth, p.GroupTrip.Update)
	groupTrips.DELETE("/:id", auth, p.GroupTrip.Cancel)
	groupTrips.GET("/:id/participants", p.GroupTrip.ListParticipants)
	groupTrips.DELETE("/:id/participants/:participantId", auth, p.GroupTrip.RemoveParticipant)

	joinRequests := api.Group("/join-requests", auth)
	joinRequests.POST("", p.JoinReq.Create)
	joinRequests.GET("/mine", p.JoinReq.ListMine)
	joinRequests.GET("/trip/:tripId", p.JoinReq.ListForTrip)
	joinRequests.PUT("/:id", p.JoinReq.Respond)
	joinRequests.DELETE("/:id", p.JoinReq.Withdraw)

	health := api.Group("/health")
	health.GET("", p.Health.Health)
	health.GET("/live", p.Health.Live)
}

