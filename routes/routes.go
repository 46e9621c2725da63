package routes

import (
	"github.com/gin-gonic/gin"

	"fixitnow/handlers"
	"fixitnow/middleware"
	"fixitnow/models"
)

// RegisterRoutes wires every endpoint under /api. The principal
// middleware runs on the whole surface; role middleware guards each
// group.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ph *handlers.ProviderHandler, ah *handlers.AdminHandler) {
	api := r.Group("/api", middleware.PrincipalMiddleware())

	bookings := api.Group("/bookings")
	{
		bookings.POST("", middleware.RequireRole(models.RoleUser), bh.CreateBooking)
		bookings.GET("", middleware.RequireRole(models.RoleUser), bh.GetUserBookings)
		bookings.GET("/pool", middleware.RequireRole(models.RoleProvider), bh.GetProviderPool)
		bookings.GET("/:id", bh.GetBooking)
		bookings.PATCH("/:id/status", bh.UpdateStatus)
		bookings.POST("/:id/seen", bh.MarkSeen)
	}

	providers := api.Group("/providers")
	{
		providers.PUT("/availability", middleware.RequireRole(models.RoleProvider), ph.UpdateAvailability)
		providers.GET("/:id", ph.GetProvider)
	}

	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/stats", ah.GetStats)
		admin.GET("/providers", ah.GetAllProviders)
		admin.PATCH("/providers/:id/status", ah.UpdateProviderStatus)
	}
}
