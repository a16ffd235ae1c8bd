package handlers

import (
	"errors"
	"net/http"
	"time"

	staffRepo "glowbook/database/repository/staff"
	userRepo "glowbook/database/repository/user"
	"glowbook/models"
	"glowbook/services/booking"
	"glowbook/services/cart"
	"glowbook/services/location"
	"glowbook/services/payment"
	"glowbook/services/pricing"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking flow: drafts, coupons, payment orders,
// confirmation and lifecycle mutations.
type BookingHandler struct {
	Service   booking.BookingService
	Drafts    *booking.DraftStore
	Cart      cart.CartService
	Coupons   pricing.CouponService
	Gateway   payment.Gateway
	Staff     staffRepo.StaffRepository
	Users     userRepo.UserRepository
	Locations *location.DeviceLocationCache
	Currency  string
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewBookingHandler wires the handler.
func NewBookingHandler(
	svc booking.BookingService,
	drafts *booking.DraftStore,
	cartSvc cart.CartService,
	coupons pricing.CouponService,
	gateway payment.Gateway,
	staff staffRepo.StaffRepository,
	users userRepo.UserRepository,
	locations *location.DeviceLocationCache,
	currency string,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		Service:   svc,
		Drafts:    drafts,
		Cart:      cartSvc,
		Coupons:   coupons,
		Gateway:   gateway,
		Staff:     staff,
		Users:     users,
		Locations: locations,
		Currency:  currency,
		Logger:    logger,
		Now:       time.Now,
	}
}

type locationChoice struct {
	Level1 string `json:"level1"`
	Level2 string `json:"level2"`
}

// SaveDraftHandler builds and persists the booking draft for one staff member
// from the user's cart, the chosen location source and an optional coupon.
func (h *BookingHandler) SaveDraftHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		StaffID       string         `json:"staff_id" binding:"required"`
		Date          string         `json:"date" binding:"required"`
		Time          string         `json:"time" binding:"required"`
		Notes         string         `json:"notes"`
		CouponCode    string         `json:"coupon_code"`
		PaymentMethod string         `json:"payment_method"`
		Location      locationChoice `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()

	groups, err := h.Cart.GroupByStaff(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	group, ok2 := groups[input.StaffID]
	if !ok2 || (len(group.Services) == 0 && len(group.Packages) == 0) {
		utils.JSONError(c, http.StatusBadRequest, "nothing in the cart for this staff member", "")
		return
	}

	serviceLocation, err := h.resolveLocation(c, userID, input.StaffID, input.Location)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var couponDiscount float64
	var couponMessage string
	if input.CouponCode != "" {
		result, err := h.Coupons.Verify(ctx, userID, input.CouponCode)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		couponMessage = result.Message
		if result.Valid {
			couponDiscount = result.DiscountAmount
		} else {
			// An invalid coupon never blocks the draft; it simply applies no
			// discount and the message travels back verbatim.
			input.CouponCode = ""
		}
	}

	draft := models.BookingDraft{
		UserID:          userID,
		StaffID:         input.StaffID,
		Services:        group.Services,
		Packages:        group.Packages,
		ServiceLocation: serviceLocation,
		Date:            input.Date,
		Time:            input.Time,
		Notes:           input.Notes,
		CouponCode:      input.CouponCode,
		CouponDiscount:  couponDiscount,
		PaymentMethod:   input.PaymentMethod,
	}
	if err := h.Drafts.Save(ctx, draft); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":          draft,
		"quote":          pricing.Compute(draft.Lines(), draft.CouponDiscount),
		"coupon_message": couponMessage,
	})
}

func (h *BookingHandler) resolveLocation(c *gin.Context, userID, staffID string, choice locationChoice) (string, error) {
	ctx := c.Request.Context()

	resolved := location.Choice{
		Level1: location.Level1(choice.Level1),
		Level2: location.Level2(choice.Level2),
	}

	if resolved.Level1 == location.AtProvider {
		staff, err := h.Staff.GetByID(ctx, staffID)
		if err != nil {
			return "", err
		}
		resolved.Staff = staff
	} else {
		usr, err := h.Users.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		resolved.Profile = usr

		cached, err := h.Locations.Get(ctx, userID)
		if err != nil {
			return "", err
		}
		resolved.CachedDeviceLocation = cached
	}

	return location.Resolve(resolved), nil
}

func (h *BookingHandler) GetDraftHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.Drafts.Get(c.Request.Context(), userID, c.Param("staffID"))
	if errors.Is(err, booking.ErrDraftNotFound) {
		utils.JSONError(c, http.StatusNotFound, "no draft in progress", "")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft": draft,
		"quote": pricing.Compute(draft.Lines(), draft.CouponDiscount),
	})
}

func (h *BookingHandler) VerifyCouponHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		CouponCode string `json:"coupon_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Coupons.Verify(c.Request.Context(), userID, input.CouponCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PaymentOrderHandler creates a gateway order over the draft's final amount.
func (h *BookingHandler) PaymentOrderHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		StaffID string `json:"staff_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	draft, err := h.Drafts.Get(ctx, userID, input.StaffID)
	if errors.Is(err, booking.ErrDraftNotFound) {
		utils.JSONError(c, http.StatusNotFound, "no draft in progress", "")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	quote := pricing.Compute(draft.Lines(), draft.CouponDiscount)
	receipt := "rcpt_" + uuid.New().String()[:13]
	order, err := h.Gateway.CreateOrder(ctx, quote.FinalAmount, h.Currency, receipt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Bind the order to the draft so confirmation can only present this
	// order over this amount.
	draft.PaymentOrderID = order.ID
	draft.PaymentAmount = quote.FinalAmount
	if err := h.Drafts.Save(ctx, *draft); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "quote": quote})
}

// CreateBookingHandler confirms the booking once the checkout SDK hands back
// the signature triple.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		StaffID string `json:"staff_id" binding:"required"`
		models.PaymentConfirmation
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	draft, err := h.Drafts.Get(ctx, userID, input.StaffID)
	if errors.Is(err, booking.ErrDraftNotFound) {
		utils.JSONError(c, http.StatusNotFound, "no draft in progress", "")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	created, err := h.Service.Create(ctx, *draft, input.PaymentConfirmation)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// ownedBooking loads the :code booking and enforces that it belongs to the
// authenticated user. Another user's code gets the same 404 as a missing one
// so booking codes are not probeable.
func (h *BookingHandler) ownedBooking(c *gin.Context) (*models.Booking, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	b, err := h.Service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	if b.UserID != userID {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return nil, false
	}
	return b, true
}

// bookingView decorates a record with its allowed actions.
type bookingView struct {
	models.Booking
	Actions booking.Actions `json:"actions"`
}

func (h *BookingHandler) view(b models.Booking) bookingView {
	now := h.Now()
	scheduledAt, err := b.ScheduledAt(now.Location())
	if err != nil {
		h.Logger.Warn("booking has unparseable schedule",
			zap.String("bookingCode", b.BookingCode), zap.Error(err))
		return bookingView{Booking: b}
	}
	return bookingView{Booking: b, Actions: booking.AllowedActions(b, scheduledAt, now)}
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, notices, err := h.Service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, h.view(b))
	}
	if notices == nil {
		notices = []booking.RescheduleNotice{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views, "notices": notices})
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, ok := h.ownedBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.view(*b))
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	if _, ok := h.ownedBooking(c); !ok {
		return
	}

	var input struct {
		// The reason may be empty but must be collected.
		Reason *string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "cancellation reason is required", err.Error())
		return
	}

	b, err := h.Service.Cancel(c.Request.Context(), c.Param("code"), *input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": h.view(*b)})
}

func (h *BookingHandler) RequestRescheduleHandler(c *gin.Context) {
	if _, ok := h.ownedBooking(c); !ok {
		return
	}

	var input struct {
		Date   string `json:"date" binding:"required"`
		Time   string `json:"time" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.RequestReschedule(c.Request.Context(), c.Param("code"), input.Date, input.Time, input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": h.view(*b)})
}

func (h *BookingHandler) CancelRescheduleHandler(c *gin.Context) {
	if _, ok := h.ownedBooking(c); !ok {
		return
	}

	b, err := h.Service.CancelReschedule(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": h.view(*b)})
}

func (h *BookingHandler) ApproveRescheduleHandler(c *gin.Context) {
	b, err := h.Service.ApproveReschedule(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": h.view(*b)})
}

func (h *BookingHandler) RejectRescheduleHandler(c *gin.Context) {
	b, err := h.Service.RejectReschedule(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": h.view(*b)})
}

func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	b, err := h.Service.Complete(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": h.view(*b)})
}

func (h *BookingHandler) ToggleReminderHandler(c *gin.Context) {
	if _, ok := h.ownedBooking(c); !ok {
		return
	}

	var input struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.ToggleReminder(c.Request.Context(), c.Param("code"), *input.Enabled)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": h.view(*b)})
}
