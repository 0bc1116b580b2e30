package resource

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrNonPositiveCapacity = errors.New("resource capacity must be positive")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
)

const (
	MaxResourceNameLength = 255
)

// Resource is a bookable seminar hall. The catalog owns it; the booking
// engine only reads it. The available flag is advisory, the availability
// index remains authoritative for slot conflicts.
type Resource struct {
	id        uuid.UUID
	name      string
	capacity  int
	location  string
	amenities []string
	available bool
}

func NewResource(id uuid.UUID, name string, capacity int, location string, amenities []string, available bool) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return nil, ErrResourceNameTooLong
	}
	if capacity <= 0 {
		return nil, ErrNonPositiveCapacity
	}

	return &Resource{
		id:        id,
		name:      name,
		capacity:  capacity,
		location:  location,
		amenities: amenities,
		available: available,
	}, nil
}

func (r *Resource) HasAmenity(name string) bool {
	for _, a := range r.amenities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func (r *Resource) ID() uuid.UUID    { return r.id }
func (r *Resource) Name() string     { return r.name }
func (r *Resource) Capacity() int    { return r.capacity }
func (r *Resource) Location() string { return r.location }
func (r *Resource) Available() bool  { return r.available }

func (r *Resource) Amenities() []string {
	out := make([]string, len(r.amenities))
	copy(out, r.amenities)
	return out
}
