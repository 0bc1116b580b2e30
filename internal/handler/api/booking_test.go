//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"hall-booking/internal/availability"
	"hall-booking/internal/domain/booking"
	"hall-booking/internal/handler/api"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/queries"
	"hall-booking/tests/common/builder"
	"hall-booking/tests/common/httptest"
	commandsmock "hall-booking/tests/mock/commands"
	queriesmock "hall-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	userID   uuid.UUID
	userRole string
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.userRole = "secretary"

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.userRole)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/mine", authMiddleware, s.handler.ListMyBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
	s.router.POST("/bookings/:id/approvals", authMiddleware, s.handler.ActOnApproval)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func mustSlot(date, start, end string) booking.TimeSlot {
	d, err := booking.ParseDate(date)
	if err != nil {
		panic(err)
	}
	st, err := booking.ParseMinuteOfDay(start)
	if err != nil {
		panic(err)
	}
	en, err := booking.ParseMinuteOfDay(end)
	if err != nil {
		panic(err)
	}
	slot, err := booking.NewTimeSlot(d, st, en)
	if err != nil {
		panic(err)
	}
	return slot
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the pending booking", func() {
		created := builder.NewBookingBuilder().BuildDomain()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("pending", body["status"])
		s.Equal(float64(0), body["currentStepIndex"])
		s.Len(body["approvalSteps"], 3)
	})

	s.Run("unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("malformed date is a 400", func() {
		bad := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Date = "12/10/2026"
		}).BuildCreateRequestDTO()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing required field is a 400", func() {
		bad := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Title = ""
		}).BuildCreateRequestDTO()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("domain validation failure is a 400 with field detail", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, &booking.ValidationError{Field: "attendee_count", Constraint: "exceeds resource capacity"}).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "attendee_count")
	})

	s.Run("slot conflict is a 409 with the blocking interval", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, &availability.ConflictError{
				ResourceID: reqBody.ResourceID,
				Requested:  mustSlot("2026-10-12", "09:00", "11:00"),
				Existing:   mustSlot("2026-10-12", "10:00", "12:00"),
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), "10:00")
	})

	s.Run("unknown resource is a 404", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("success: returns the booking view", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), view.Title)
	})

	s.Run("invalid id is a 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing booking is a 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("success: passes filters through", func() {
		resourceID := uuid.New()
		item := builder.NewBookingBuilder().BuildListItem()
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
				s.Require().NotNil(filter.ResourceID)
				s.Equal(resourceID, *filter.ResourceID)
				s.Require().NotNil(filter.Status)
				s.Equal(booking.StatusPending, *filter.Status)
				return []*queries.BookingListItem{item}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?resource_id="+resourceID.String()+"&status=pending", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), item.Title)
	})

	s.Run("invalid status filter is a 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?status=archived", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("mine restricts to the authenticated requester", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
				s.Require().NotNil(filter.RequesterID)
				s.Equal(s.userID, *filter.RequesterID)
				return nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/mine", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/cancel"

	s.Run("success: returns the cancelled booking", func() {
		bb := builder.NewBookingBuilder()
		cancelled := bb.BuildDomain()
		s.Require().NoError(cancelled.Cancel(bb.RequesterID, bb.CreatedAt))

		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id, s.userID).
			Return(cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "cancelled")
	})

	s.Run("cancelling someone else's booking is a 403", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id, s.userID).
			Return(nil, &booking.RoleMismatchError{BookingID: id, RequiredRole: "requester", ActorRole: "other user"}).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("cancelling a terminal booking is a 422", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id, s.userID).
			Return(nil, &booking.InvalidTransitionError{
				BookingID: id,
				Status:    booking.StatusApproved,
				Reason:    "only pending bookings can be cancelled",
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

// ================================================================================
// TestActOnApproval
// ================================================================================

func (s *BookingHandlerTestSuite) TestActOnApproval() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/approvals"
	reqBody := map[string]any{"step_index": 0, "decision": "approve"}

	s.Run("success: forwards actor identity and decision", func() {
		bb := builder.NewBookingBuilder()
		acted := bb.BuildDomain()
		s.Require().NoError(acted.Act(0, "secretary", booking.DecisionApprove, nil, bb.CreatedAt))

		s.mockCommands.EXPECT().ActOnApproval(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.ActInput) (*booking.Booking, error) {
				s.Equal(id, in.BookingID)
				s.Equal(0, in.StepIndex)
				s.Equal(s.userID, in.ActorID)
				s.Equal("secretary", in.ActorRole)
				s.Equal("approve", in.Decision)
				return acted, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"currentStepIndex":1`)
	})

	s.Run("missing decision is a 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"step_index": 0}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("acting with the wrong role is a 403", func() {
		s.mockCommands.EXPECT().ActOnApproval(gomock.Any(), gomock.Any()).
			Return(nil, &booking.RoleMismatchError{BookingID: id, RequiredRole: "chair", ActorRole: "secretary"}).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("acting out of order is a 422", func() {
		s.mockCommands.EXPECT().ActOnApproval(gomock.Any(), gomock.Any()).
			Return(nil, &booking.InvalidTransitionError{
				BookingID:   id,
				Status:      booking.StatusPending,
				CurrentStep: 1,
				Reason:      "step acted out of order",
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("unknown booking is a 404", func() {
		s.mockCommands.EXPECT().ActOnApproval(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
