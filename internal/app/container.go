package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/openlots/parking-booking-backend/internal/api"
	"github.com/openlots/parking-booking-backend/internal/auth"
	"github.com/openlots/parking-booking-backend/internal/booking"
	"github.com/openlots/parking-booking-backend/internal/location"
	"github.com/openlots/parking-booking-backend/internal/pkg/clock"
	"github.com/openlots/parking-booking-backend/internal/pkg/storage"
	"github.com/openlots/parking-booking-backend/internal/ticket"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
	JWTSecret    string
	TicketDir    string
	TicketQRSize int
	ExpiryGrace  time.Duration
	Clock        clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	if cfg.Clock == nil {
		cfg.Clock = clock.System()
	}

	// Init Components
	jwtVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	artifacts, err := storage.NewLocalStorage(cfg.TicketDir)
	if err != nil {
		return nil, fmt.Errorf("init ticket storage: %w", err)
	}
	images := storage.NewImageProcessor()

	// Location Module (read model consumed by the engine)
	locRepo := location.NewPgxRepository(cfg.DBPool)
	locService := location.NewService(locRepo)

	// Ticketing Module
	issuer := ticket.NewIssuer(ticket.QRPNGEncoder, cfg.TicketQRSize)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, locService, issuer, artifacts, cfg.Clock, cfg.ExpiryGrace)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		LocService:     locService,
		BookingService: bookingService,
		Artifacts:      artifacts,
		Images:         images,
		JWTVerifier:    jwtVerifier,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		BookingService: bookingService,
	}, nil
}
