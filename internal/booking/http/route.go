package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.GET("/:id/ticket", h.Ticket)
		group.POST("", h.Create)
		group.POST("/:id/check-in", h.CheckIn)
		group.POST("/:id/check-out", h.CheckOut)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/extend", h.Extend)
		group.POST("/:id/payment", h.ConfirmPayment)
	}

	// Availability is addressed by location and space.
	availability := g.Group("/locations/:id/spaces/:spaceId")
	availability.Use(authMiddleware)
	{
		availability.GET("/availability", h.Availability)
	}
}
