// Package availability holds the authoritative record of occupied time
// intervals per resource. Every conflict decision in the engine is made
// here, inside a per-resource critical section, so "check availability,
// then book" is a single atomic operation.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"hall-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// ErrNotReserved is returned by Release when the interval was not held.
// Callers report it but treat the release as a no-op.
var ErrNotReserved = errors.New("interval was not reserved")

// ConflictError carries the interval that blocked a reservation so the
// caller can pick another slot.
type ConflictError struct {
	ResourceID uuid.UUID
	Requested  booking.TimeSlot
	Existing   booking.TimeSlot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s conflicts with existing reservation %s on resource %s",
		e.Requested, e.Existing, e.ResourceID)
}

// Index is the per-resource calendar of occupied intervals. Reservations
// exist here for the lifetime of any pending or approved booking; the
// index knows nothing about approval state itself.
//
// Reserve and Release serialize per resource; operations on different
// resources proceed in parallel.
type Index struct {
	mu        sync.RWMutex
	calendars map[uuid.UUID]*calendar
}

type calendar struct {
	mu   sync.Mutex
	days map[booking.Date][]booking.TimeSlot // each day sorted by start
}

func NewIndex() *Index {
	return &Index{calendars: make(map[uuid.UUID]*calendar)}
}

// Reserve inserts slot if it overlaps no existing interval for the
// resource's day. Overlap is half-open, so back-to-back slots coexist.
// At most one of any set of concurrent overlapping calls succeeds.
func (i *Index) Reserve(resourceID uuid.UUID, slot booking.TimeSlot) error {
	cal := i.calendar(resourceID)
	cal.mu.Lock()
	defer cal.mu.Unlock()

	day := cal.days[slot.Date()]
	for _, existing := range day {
		if slot.Overlaps(existing) {
			return &ConflictError{ResourceID: resourceID, Requested: slot, Existing: existing}
		}
	}

	pos := sort.Search(len(day), func(k int) bool { return day[k].Start() >= slot.Start() })
	day = append(day, booking.TimeSlot{})
	copy(day[pos+1:], day[pos:])
	day[pos] = slot
	cal.days[slot.Date()] = day
	return nil
}

// Release removes a previously reserved interval. Releasing an interval
// that is not held returns ErrNotReserved; the index is unchanged.
func (i *Index) Release(resourceID uuid.UUID, slot booking.TimeSlot) error {
	cal := i.calendar(resourceID)
	cal.mu.Lock()
	defer cal.mu.Unlock()

	day := cal.days[slot.Date()]
	for k, existing := range day {
		if existing.Equal(slot) {
			day = append(day[:k], day[k+1:]...)
			if len(day) == 0 {
				delete(cal.days, slot.Date())
			} else {
				cal.days[slot.Date()] = day
			}
			return nil
		}
	}
	return ErrNotReserved
}

// Query returns the occupied intervals for one resource and day, ordered
// by start time. The result is a copy.
func (i *Index) Query(resourceID uuid.UUID, date booking.Date) []booking.TimeSlot {
	cal := i.calendar(resourceID)
	cal.mu.Lock()
	defer cal.mu.Unlock()

	day := cal.days[date]
	out := make([]booking.TimeSlot, len(day))
	copy(out, day)
	return out
}

// QueryRange returns occupied intervals for the inclusive date range,
// ordered by date then start time.
func (i *Index) QueryRange(resourceID uuid.UUID, from, to booking.Date) []booking.TimeSlot {
	cal := i.calendar(resourceID)
	cal.mu.Lock()
	defer cal.mu.Unlock()

	var out []booking.TimeSlot
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, cal.days[d]...)
	}
	return out
}

func (i *Index) calendar(resourceID uuid.UUID) *calendar {
	i.mu.RLock()
	cal, ok := i.calendars[resourceID]
	i.mu.RUnlock()
	if ok {
		return cal
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if cal, ok = i.calendars[resourceID]; ok {
		return cal
	}
	cal = &calendar{days: make(map[booking.Date][]booking.TimeSlot)}
	i.calendars[resourceID] = cal
	return cal
}
