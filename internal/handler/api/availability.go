package api

import (
	"errors"
	"net/http"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
	resourceQueries     queries.ResourceQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries, resourceQueries queries.ResourceQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
		resourceQueries:     resourceQueries,
	}
}

// @Summary List resources
// @Description List all bookable halls
// @Tags resources
// @Produce json
// @Success 200 {array} queries.ResourceView
// @Router /resources [get]
func (h *AvailabilityHandler) ListResources(c *gin.Context) {
	views, err := h.resourceQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get resource
// @Description Get a hall by ID
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} queries.ResourceView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *AvailabilityHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	view, err := h.resourceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Get occupied slots
// @Description List occupied intervals for a hall over a date range
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {array} queries.OccupiedSlotView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/occupied [get]
func (h *AvailabilityHandler) GetOccupied(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	from, err := booking.ParseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid from date",
		})
		return
	}
	to, err := booking.ParseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid to date",
		})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Date range is reversed",
		})
		return
	}

	slots, err := h.availabilityQueries.Occupied(c.Request.Context(), id, from, to)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, slots)
}
