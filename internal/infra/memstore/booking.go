// Package memstore provides in-memory implementations of the storage
// ports. The unit tests run the whole engine against it, and it backs
// local development when no Postgres is around.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/infra"
	"hall-booking/internal/infra/repository/converter"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingStore keeps bookings as storage records, so reads always hand
// out fresh aggregate copies.
type BookingStore struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]converter.BookingRecord
	resources *ResourceStore
}

func NewBookingStore(resources *ResourceStore) *BookingStore {
	return &BookingStore{
		records:   make(map[uuid.UUID]converter.BookingRecord),
		resources: resources,
	}
}

func (s *BookingStore) Create(_ context.Context, b *booking.Booking) error {
	rec, err := converter.BookingToRecord(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err, infra.KindDBFailure)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *BookingStore) Get(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	b, err := converter.BookingFromRecord(rec)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err, infra.KindDBFailure)
	}
	return b, nil
}

func (s *BookingStore) Update(_ context.Context, b *booking.Booking) error {
	rec, err := converter.BookingToRecord(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err, infra.KindDBFailure)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; !exists {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *BookingStore) ListHolding(_ context.Context) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*booking.Booking
	for _, rec := range s.records {
		st := booking.Status(rec.Status)
		if !st.HoldsReservation() {
			continue
		}
		b, err := converter.BookingFromRecord(rec)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking", err, infra.KindDBFailure)
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return s.recordToView(ctx, rec)
}

func (s *BookingStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	s.mu.RLock()
	recs := make([]converter.BookingRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	var out []*queries.BookingListItem
	for _, rec := range recs {
		if !matches(rec, filter) {
			continue
		}
		name := s.resourceName(ctx, rec.ResourceID)
		out = append(out, &queries.BookingListItem{
			ID:           rec.ID,
			ResourceID:   rec.ResourceID,
			ResourceName: name,
			RequesterID:  rec.RequesterID,
			Title:        rec.Title,
			Purpose:      rec.Purpose,
			Date:         booking.DateOf(rec.Date).String(),
			StartTime:    booking.MinuteOfDay(rec.StartMin).String(),
			EndTime:      booking.MinuteOfDay(rec.EndMin).String(),
			Status:       rec.Status,
			CreatedAt:    rec.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func matches(rec converter.BookingRecord, filter queries.BookingFilter) bool {
	if filter.RequesterID != nil && rec.RequesterID != *filter.RequesterID {
		return false
	}
	if filter.ResourceID != nil && rec.ResourceID != *filter.ResourceID {
		return false
	}
	if filter.Status != nil && rec.Status != filter.Status.String() {
		return false
	}
	day := booking.DateOf(rec.Date)
	if filter.From != nil && day.Before(*filter.From) {
		return false
	}
	if filter.To != nil && day.After(*filter.To) {
		return false
	}
	return true
}

func (s *BookingStore) recordToView(ctx context.Context, rec converter.BookingRecord) (*queries.BookingView, error) {
	var records []converter.StepRecord
	if err := json.Unmarshal(rec.Steps, &records); err != nil {
		return nil, infra.WrapRepoErr("failed to decode approval steps", err, infra.KindDBFailure)
	}

	view := &queries.BookingView{
		ID:               rec.ID,
		ResourceID:       rec.ResourceID,
		ResourceName:     s.resourceName(ctx, rec.ResourceID),
		RequesterID:      rec.RequesterID,
		Title:            rec.Title,
		Description:      rec.Description,
		Department:       rec.Department,
		Purpose:          rec.Purpose,
		Date:             booking.DateOf(rec.Date).String(),
		StartTime:        booking.MinuteOfDay(rec.StartMin).String(),
		EndTime:          booking.MinuteOfDay(rec.EndMin).String(),
		AttendeeCount:    rec.AttendeeCount,
		Status:           rec.Status,
		CurrentStepIndex: -1,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
	view.Steps = make([]queries.ApprovalStepView, len(records))
	for i, r := range records {
		view.Steps[i] = queries.ApprovalStepView{
			StepIndex: r.Index,
			Role:      r.Role,
			Status:    r.Status,
			ActedAt:   r.ActedAt,
			Notes:     r.Notes,
		}
		if view.CurrentStepIndex == -1 && view.Status == booking.StatusPending.String() &&
			r.Status == booking.StepPending.String() {
			view.CurrentStepIndex = r.Index
		}
	}
	return view, nil
}

func (s *BookingStore) resourceName(ctx context.Context, id uuid.UUID) string {
	if s.resources == nil {
		return ""
	}
	res, err := s.resources.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return res.Name()
}
