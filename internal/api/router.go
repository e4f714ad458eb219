package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openlots/parking-booking-backend/internal/auth"
	"github.com/openlots/parking-booking-backend/internal/booking"
	bookingHttp "github.com/openlots/parking-booking-backend/internal/booking/http"
	"github.com/openlots/parking-booking-backend/internal/location"
	locHttp "github.com/openlots/parking-booking-backend/internal/location/http"
	"github.com/openlots/parking-booking-backend/internal/pkg/storage"
)

// Config holds the dependencies needed to assemble the router.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         *zap.Logger
	LocService     location.Service
	BookingService booking.Service
	Artifacts      storage.Storage
	Images         *storage.ImageProcessor
	JWTVerifier    *auth.JWTVerifier
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: structured request logging via zap.
	// - Recovery: captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTVerifier)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	locHandler := locHttp.NewHandler(cfg.LocService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Artifacts, cfg.Images)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		locHttp.RegisterRoutes(v1, locHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
