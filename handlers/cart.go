package handlers

import (
	"net/http"

	"glowbook/models"
	"glowbook/services/cart"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

// CartHandler exposes the per-user cart store.
type CartHandler struct {
	Service cart.CartService
}

// NewCartHandler wires the handler.
func NewCartHandler(svc cart.CartService) *CartHandler {
	return &CartHandler{Service: svc}
}

func (h *CartHandler) AddCartItemHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var item models.CartLineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if item.ID == "" || item.StaffID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "item id and staff_id are required")
		return
	}
	if item.Kind != models.LineItemPackage {
		item.Kind = models.LineItemService
	}

	if err := h.Service.Add(c.Request.Context(), userID, item); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": true})
}

func (h *CartHandler) RemoveCartItemHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Removing an item that is not there is a no-op.
	if err := h.Service.Remove(c.Request.Context(), userID, c.Param("itemID"), c.Query("staff_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (h *CartHandler) SetCartQuantityHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		StaffID string `json:"staff_id" binding:"required"`
		Delta   int    `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.SetQuantity(c.Request.Context(), userID, c.Param("itemID"), input.StaffID, input.Delta); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// GetCartHandler returns the cart grouped per staff member, the shape the
// accordion and per-staff checkout consume.
func (h *CartHandler) GetCartHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	groups, err := h.Service.GroupByStaff(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": groups})
}
