package handlers

import (
	"errors"
	"net/http"

	bookingRepo "glowbook/database/repository/booking"
	"glowbook/services/booking"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return "", false
	}
	id, ok := val.(string)
	if !ok || id == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return "", false
	}
	return id, true
}

// respondServiceError maps service errors onto the HTTP surface. Business-rule
// rejections carry their own user-facing message; everything else collapses to
// a generic failure.
func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, bookingRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	var lc *booking.LifecycleError
	if errors.As(err, &lc) {
		status := http.StatusConflict
		if lc.Code == "validation" {
			status = http.StatusBadRequest
		}
		if lc.Code == "paymentVerificationFailed" {
			status = http.StatusUnprocessableEntity
		}
		utils.JSONError(c, status, lc.Message, "")
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Something went wrong, please try again", err.Error())
}
