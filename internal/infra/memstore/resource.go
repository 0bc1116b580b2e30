package memstore

import (
	"context"
	"sort"
	"sync"

	"hall-booking/internal/domain/resource"
	"hall-booking/internal/infra"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type hallSeed struct {
	name      string
	capacity  int
	location  string
	amenities []string
}

// The campus seminar halls, used as the default catalog for local runs
// and tests; production reads the catalog from Postgres.
var hallSeeds = []hallSeed{
	{"LHC Seminar Hall - 1", 80, "LHC Block, Ground Floor", []string{"Projector", "Sound System", "Air Conditioning", "Whiteboard"}},
	{"LHC Seminar Hall - 2", 150, "LHC Block, First Floor", []string{"Projector", "Sound System", "Air Conditioning", "Whiteboard", "Video Conferencing"}},
	{"DES Seminar Hall - 1", 100, "DES Block, Second Floor", []string{"Projector", "Sound System", "Air Conditioning", "Whiteboard"}},
	{"DES Seminar Hall - 2", 120, "DES Block, Second Floor", []string{"Projector", "Sound System", "Air Conditioning", "Tiered Seating"}},
	{"APEX Auditorium", 1000, "APEX Block, Ground Floor", []string{"Projector", "Advanced Sound System", "Air Conditioning", "Stage", "Backstage Area", "Wheelchair Accessible"}},
	{"ESB Seminar Hall - 1", 200, "ESB Block, First Floor", []string{"Projector", "Sound System", "Air Conditioning", "Video Conferencing"}},
	{"ESB Seminar Hall - 2", 250, "ESB Block, Second Floor", []string{"Projector", "Sound System", "Air Conditioning", "Video Conferencing", "Recording Equipment"}},
}

// ResourceStore satisfies the write-side catalog port, handing out
// domain resources.
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[uuid.UUID]*resource.Resource
}

func NewResourceStore() *ResourceStore {
	return &ResourceStore{resources: make(map[uuid.UUID]*resource.Resource)}
}

// NewSeededResourceStore returns a store preloaded with the campus
// halls, all marked available.
func NewSeededResourceStore() *ResourceStore {
	s := NewResourceStore()
	for _, seed := range hallSeeds {
		res, err := resource.NewResource(uuid.New(), seed.name, seed.capacity, seed.location, seed.amenities, true)
		if err != nil {
			panic("invalid hall seed: " + err.Error())
		}
		s.Put(res)
	}
	return s
}

func (s *ResourceStore) Put(res *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[res.ID()] = res
}

func (s *ResourceStore) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (s *ResourceStore) All() []*resource.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*resource.Resource, 0, len(s.resources))
	for _, res := range s.resources {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ResourceViews adapts the store to the read-side port.
type ResourceViews struct {
	store *ResourceStore
}

func NewResourceViews(store *ResourceStore) *ResourceViews {
	return &ResourceViews{store: store}
}

func (v *ResourceViews) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	res, err := v.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResourceView(res), nil
}

func (v *ResourceViews) List(_ context.Context) ([]*queries.ResourceView, error) {
	all := v.store.All()
	out := make([]*queries.ResourceView, len(all))
	for i, res := range all {
		out[i] = toResourceView(res)
	}
	return out, nil
}

func toResourceView(res *resource.Resource) *queries.ResourceView {
	return &queries.ResourceView{
		ID:        res.ID(),
		Name:      res.Name(),
		Capacity:  res.Capacity(),
		Location:  res.Location(),
		Amenities: res.Amenities(),
		Available: res.Available(),
	}
}
