package api

import (
	"errors"
	"net/http"

	"hall-booking/internal/availability"
	"hall-booking/internal/domain/booking"
	reqdto "hall-booking/internal/handler/dto/request"
	resdto "hall-booking/internal/handler/dto/response"
	"hall-booking/internal/handler/middleware"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a hall slot and open the approval workflow
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput(requesterID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	created, err := h.bookingCommands.CreateBooking(c.Request.Context(), input)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(created))
}

// @Summary Get booking
// @Description Get booking by ID including its approval steps
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings filtered by requester, resource, status or date range
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param requester_id query string false "Requester ID"
// @Param resource_id query string false "Resource ID"
// @Param status query string false "Booking status"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter, err := parseBookingFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	items, err := h.bookingQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List my bookings
// @Description List bookings created by the authenticated user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/mine [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.bookingQueries.List(c.Request.Context(), queries.BookingFilter{RequesterID: &requesterID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Cancel booking
// @Description Cancel a pending booking and release its slot
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	cancelled, err := h.bookingCommands.CancelBooking(c.Request.Context(), id, requesterID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(cancelled))
}

// @Summary Act on approval step
// @Description Approve or reject the booking's current approval step
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ApprovalActionRequest true "Approval action"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/approvals [post]
func (h *BookingHandler) ActOnApproval(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	actorRole, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.ApprovalActionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	acted, err := h.bookingCommands.ActOnApproval(c.Request.Context(), commands.ActInput{
		BookingID: id,
		StepIndex: req.StepIndex,
		ActorID:   actorID,
		ActorRole: actorRole,
		Decision:  req.Decision,
		Notes:     req.GetNotes(),
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(acted))
}

// writeCommandError maps write-side failures onto HTTP statuses. Typed
// domain errors carry structured detail; sentinels fall through to
// errors.Is.
func (h *BookingHandler) writeCommandError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var conflictErr *availability.ConflictError
	var transitionErr *booking.InvalidTransitionError
	var roleErr *booking.RoleMismatchError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
			"detail": gin.H{
				"field":      validationErr.Field,
				"constraint": validationErr.Constraint,
			},
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested slot overlaps an existing booking",
			"detail": gin.H{
				"date":       conflictErr.Existing.Date().String(),
				"start_time": conflictErr.Existing.Start().String(),
				"end_time":   conflictErr.Existing.End().String(),
			},
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": transitionErr.Error(),
		})
	case errors.As(err, &roleErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error": roleErr.Error(),
		})
	case errors.Is(err, commands.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseBookingFilter(c *gin.Context) (queries.BookingFilter, error) {
	var filter queries.BookingFilter

	if raw := c.Query("requester_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid requester_id")
		}
		filter.RequesterID = &id
	}
	if raw := c.Query("resource_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid resource_id")
		}
		filter.ResourceID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status, err := booking.NewStatus(raw)
		if err != nil {
			return filter, errors.New("invalid status")
		}
		filter.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		date, err := booking.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid from date")
		}
		filter.From = &date
	}
	if raw := c.Query("to"); raw != "" {
		date, err := booking.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid to date")
		}
		filter.To = &date
	}

	return filter, nil
}
