package handlers

import (
	"errors"
	"net/http"
	"time"

	staffRepo "glowbook/database/repository/staff"
	"glowbook/services/schedule"
	"glowbook/services/user"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler exposes the provider directory, availability and engagement
// endpoints.
type StaffHandler struct {
	Repo       staffRepo.StaffRepository
	Engagement *user.EngagementStore
	Catalog    []string
	Now        func() time.Time
}

// NewStaffHandler wires the handler with the default slot catalog.
func NewStaffHandler(repo staffRepo.StaffRepository, engagement *user.EngagementStore) *StaffHandler {
	return &StaffHandler{
		Repo:       repo,
		Engagement: engagement,
		Catalog:    schedule.DefaultCatalog,
		Now:        time.Now,
	}
}

func (h *StaffHandler) ListStaffHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var err error
	var list interface{}
	if serviceID := c.Query("service_id"); serviceID != "" {
		list, err = h.Repo.GetByServiceID(ctx, serviceID)
	} else {
		list, err = h.Repo.GetAll(ctx)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": list})
}

func (h *StaffHandler) GetStaffHandler(c *gin.Context) {
	staff, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "staff member not found", "")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// StaffSlotsHandler returns the bookable times for a staff member on a date.
// An empty result is an explicit state, never a silent empty list.
func (h *StaffHandler) StaffSlotsHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date", "expected ?date=YYYY-MM-DD")
		return
	}
	now := h.Now()
	date, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	slots, err := schedule.AvailableSlots(h.Catalog, date, now)
	if errors.Is(err, schedule.ErrNoSlots) {
		c.JSON(http.StatusOK, gin.H{"slots": []string{}, "message": "No available slots for this date"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *StaffHandler) ToggleBookmarkHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookmarked, err := h.Engagement.ToggleBookmark(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

func (h *StaffHandler) ListBookmarksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ids, err := h.Engagement.Bookmarks(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": ids})
}

func (h *StaffHandler) ToggleLikeHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	liked, err := h.Engagement.ToggleLikedReview(c.Request.Context(), userID, c.Param("reviewID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *StaffHandler) ListLikesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ids, err := h.Engagement.LikedReviews(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"liked_reviews": ids})
}
