package handlers

import (
	"net/http"

	"glowbook/models"
	"glowbook/services/location"
	"glowbook/services/user"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account and profile endpoints.
type UserHandler struct {
	Service   user.UserService
	Locations *location.DeviceLocationCache
}

// NewUserHandler wires the handler.
func NewUserHandler(svc user.UserService, locations *location.DeviceLocationCache) *UserHandler {
	return &UserHandler{Service: svc, Locations: locations}
}

func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	usr, err := h.Service.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.ID = userID

	usr, err := h.Service.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// SaveDeviceLocation stores the reverse-geocoded device position the client
// resolved, so later bookings can use it as the "current location" source.
func (h *UserHandler) SaveDeviceLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Locations.Save(c.Request.Context(), userID, input.Address); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}
