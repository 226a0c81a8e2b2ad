package location

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeRepo struct {
	locations map[string]*Location
	order     []string
	seq       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{locations: make(map[string]*Location)}
}

func (r *fakeRepo) Create(_ context.Context, l *Location) (*Location, error) {
	clone := *l
	r.seq++
	clone.ID = fmt.Sprintf("%d", r.seq)
	r.locations[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, l *Location) (*Location, error) {
	if _, ok := r.locations[l.ID]; !ok {
		return nil, ErrLocationNotFound
	}
	clone := *l
	r.locations[l.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.locations[id]; !ok {
		return ErrLocationNotFound
	}
	delete(r.locations, id)
	for idx, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, ErrLocationNotFound
	}
	out := *l
	return &out, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Location, error) {
	var result []*Location
	for _, id := range r.order {
		l := *r.locations[id]
		if filter.Matches(l) {
			result = append(result, &l)
		}
	}
	return result, nil
}

func torontoOffice() Location {
	return Location{
		Name:      " Oficina Central ",
		Latitude:  43.6532,
		Longitude: -79.3832,
		Country:   "Canada",
		City:      "Toronto",
		Active:    true,
	}
}

func TestService_CreateLocation_DefaultsKind(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	created, err := svc.CreateLocation(context.Background(), CreateLocationInput{Location: torontoOffice()})
	if err != nil {
		t.Fatalf("CreateLocation returned error: %v", err)
	}
	if created.Kind != KindOffice {
		t.Fatalf("expected default kind office, got %s", created.Kind)
	}
	if created.Name != "Oficina Central" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
}

func TestService_CreateLocation_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	badKind := torontoOffice()
	badKind.Kind = "factory"
	if _, err := svc.CreateLocation(context.Background(), CreateLocationInput{Location: badKind}); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}

	badLng := torontoOffice()
	badLng.Longitude = 181
	if _, err := svc.CreateLocation(context.Background(), CreateLocationInput{Location: badLng}); !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}

	noName := torontoOffice()
	noName.Name = ""
	if _, err := svc.CreateLocation(context.Background(), CreateLocationInput{Location: noName}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestService_UpdateLocation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	created, err := svc.CreateLocation(context.Background(), CreateLocationInput{Location: torontoOffice()})
	if err != nil {
		t.Fatalf("CreateLocation returned error: %v", err)
	}

	inactive := false
	kind := KindWarehouse
	updated, err := svc.UpdateLocation(context.Background(), UpdateLocationInput{
		ID:    created.ID,
		Patch: Patch{Active: &inactive, Kind: &kind},
	})
	if err != nil {
		t.Fatalf("UpdateLocation returned error: %v", err)
	}
	if updated.Active || updated.Kind != KindWarehouse || updated.City != "Toronto" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.UpdateLocation(context.Background(), UpdateLocationInput{ID: "404", Patch: Patch{Active: &inactive}}); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
	if _, err := svc.UpdateLocation(context.Background(), UpdateLocationInput{ID: created.ID}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
}

func TestService_ListLocations_Filter(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	seeds := []Location{
		{Name: "A", Country: "Canada", Kind: KindOffice, Active: true},
		{Name: "B", Country: "Canada", Kind: KindWarehouse, Active: false},
		{Name: "C", Country: "Mexico", Kind: KindWarehouse, Active: true},
	}
	for _, seed := range seeds {
		if _, err := svc.CreateLocation(context.Background(), CreateLocationInput{Location: seed}); err != nil {
			t.Fatalf("unexpected seed error: %v", err)
		}
	}

	active := true
	got, err := svc.ListLocations(context.Background(), ListLocationsInput{Filter: Filter{Kind: " Warehouse ", Active: &active}})
	if err != nil {
		t.Fatalf("ListLocations returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "C" {
		t.Fatalf("unexpected filtered result: %+v", got)
	}

	canada, err := svc.ListLocations(context.Background(), ListLocationsInput{Filter: Filter{Country: "Canada"}})
	if err != nil {
		t.Fatalf("ListLocations returned error: %v", err)
	}
	if len(canada) != 2 {
		t.Fatalf("expected 2 canadian locations, got %d", len(canada))
	}

	if _, err := svc.ListLocations(context.Background(), ListLocationsInput{Filter: Filter{Kind: "port"}}); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestService_DeleteLocation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	created, err := svc.CreateLocation(context.Background(), CreateLocationInput{Location: torontoOffice()})
	if err != nil {
		t.Fatalf("CreateLocation returned error: %v", err)
	}
	if err := svc.DeleteLocation(context.Background(), DeleteLocationInput{ID: created.ID}); err != nil {
		t.Fatalf("DeleteLocation returned error: %v", err)
	}
	if _, err := svc.GetLocation(context.Background(), GetLocationInput{ID: created.ID}); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	inactive := false
	locations := []Location{
		{ID: "1", Country: "Italia", Kind: KindDistributionCenter, Active: true},
		{ID: "2", Country: "Italia", Kind: KindDistributionCenter, Active: false},
	}
	got := Filter{Country: "Italia", Active: &inactive}.Apply(locations)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got := (Filter{}).Apply(locations); len(got) != 2 {
		t.Fatalf("expected zero filter to keep all, got %d", len(got))
	}
}
