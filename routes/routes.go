package routes

import (
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/utils"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.PUT("/me/device-location", hb.SaveDeviceLocation)
	}
}

// RegisterStaffRoutes registers the staff directory and engagement endpoints.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.ListStaffHandler)
		api.GET("/:id", hb.GetStaffHandler)
		api.GET("/:id/slots", hb.StaffSlotsHandler)
		api.POST("/:id/bookmark", hb.ToggleBookmarkHandler)
		api.GET("/bookmarks", hb.ListBookmarksHandler)
		api.POST("/reviews/:reviewID/like", hb.ToggleLikeHandler)
		api.GET("/reviews/likes", hb.ListLikesHandler)
	}
}

// RegisterCartRoutes registers cart endpoints.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.GetCartHandler)
		api.POST("/items", hb.AddCartItemHandler)
		api.DELETE("/items/:itemID", hb.RemoveCartItemHandler)
		api.PATCH("/items/:itemID/quantity", hb.SetCartQuantityHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		bookingGroup.POST("/draft", hb.SaveDraftHandler)
		bookingGroup.GET("/draft/:staffID", hb.GetDraftHandler)
		bookingGroup.POST("/coupon/verify", hb.VerifyCouponHandler)
		bookingGroup.POST("/payment-order", hb.PaymentOrderHandler)
		bookingGroup.POST("/confirm", hb.CreateBookingHandler)
		bookingGroup.GET("", hb.ListBookingsHandler)
		bookingGroup.GET("/:code", hb.GetBookingHandler)
		bookingGroup.POST("/:code/cancel", hb.CancelBookingHandler)
		bookingGroup.POST("/:code/reschedule", hb.RequestRescheduleHandler)
		bookingGroup.DELETE("/:code/reschedule", hb.CancelRescheduleHandler)
		bookingGroup.PUT("/:code/reminder", hb.ToggleReminderHandler)
	}

	// Staff-side decisions are keyed, not JWT-authenticated; a customer token
	// cannot approve its own reschedule request.
	staffGroup := r.Group("/api/bookings")
	{
		staffGroup.Use(middleware.StaffAuthMiddleware())
		staffGroup.POST("/:code/reschedule/approve", hb.ApproveRescheduleHandler)
		staffGroup.POST("/:code/reschedule/reject", hb.RejectRescheduleHandler)
		staffGroup.POST("/:code/complete", hb.CompleteBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterCartRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
