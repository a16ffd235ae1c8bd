package handlers

import (
	userRepoPkg "glowbook/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// User endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetProfileHandler       gin.HandlerFunc
	UpdateProfileHandler    gin.HandlerFunc
	SaveDeviceLocation      gin.HandlerFunc

	// Staff directory endpoints
	ListStaffHandler      gin.HandlerFunc
	GetStaffHandler       gin.HandlerFunc
	StaffSlotsHandler     gin.HandlerFunc
	ToggleBookmarkHandler gin.HandlerFunc
	ListBookmarksHandler  gin.HandlerFunc
	ToggleLikeHandler     gin.HandlerFunc
	ListLikesHandler      gin.HandlerFunc

	// Cart endpoints
	AddCartItemHandler     gin.HandlerFunc
	RemoveCartItemHandler  gin.HandlerFunc
	SetCartQuantityHandler gin.HandlerFunc
	GetCartHandler         gin.HandlerFunc

	// Booking flow endpoints
	SaveDraftHandler         gin.HandlerFunc
	GetDraftHandler          gin.HandlerFunc
	VerifyCouponHandler      gin.HandlerFunc
	PaymentOrderHandler      gin.HandlerFunc
	CreateBookingHandler     gin.HandlerFunc
	ListBookingsHandler      gin.HandlerFunc
	GetBookingHandler        gin.HandlerFunc
	CancelBookingHandler     gin.HandlerFunc
	RequestRescheduleHandler gin.HandlerFunc
	CancelRescheduleHandler  gin.HandlerFunc
	ApproveRescheduleHandler gin.HandlerFunc
	RejectRescheduleHandler  gin.HandlerFunc
	CompleteBookingHandler   gin.HandlerFunc
	ToggleReminderHandler    gin.HandlerFunc
}
