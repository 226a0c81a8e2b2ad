package company

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeRepo struct {
	companies map[string]*Company
	order     []string
	seq       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{companies: make(map[string]*Company)}
}

func (r *fakeRepo) Create(_ context.Context, company *Company) (*Company, error) {
	clone := *company
	r.seq++
	id := fmt.Sprintf("%d", r.seq)
	clone.ID = id
	r.companies[id] = &clone
	r.order = append(r.order, id)
	out := clone
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, company *Company) (*Company, error) {
	if _, ok := r.companies[company.ID]; !ok {
		return nil, ErrCompanyNotFound
	}
	clone := *company
	r.companies[company.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.companies[id]; !ok {
		return ErrCompanyNotFound
	}
	delete(r.companies, id)
	for idx, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	out := *c
	return &out, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Company, error) {
	var result []*Company
	for _, id := range r.order {
		c := *r.companies[id]
		if filter.Matches(c) {
			result = append(result, &c)
		}
	}
	return result, nil
}

func techCorp() Company {
	return Company{
		Name:           " TechCorp ",
		City:           "Toronto",
		Country:        "Canada",
		Province:       "Ontario",
		PostalCode:     "M5V 3L9",
		Street:         "290 Bremner Blvd",
		Latitude:       43.6426,
		Longitude:      -79.3871,
		TotalEmployees: 120,
		FoundedDate:    time.Date(2010, 5, 20, 13, 0, 0, 0, time.UTC),
	}
}

func TestService_CreateCompany_Success(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	created, err := svc.CreateCompany(context.Background(), CreateCompanyInput{Company: techCorp()})
	if err != nil {
		t.Fatalf("CreateCompany returned error: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if created.Name != "TechCorp" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if !created.FoundedDate.Equal(time.Date(2010, 5, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected founded date truncated to day, got %v", created.FoundedDate)
	}
}

func TestService_CreateCompany_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	noName := techCorp()
	noName.Name = " "
	if _, err := svc.CreateCompany(context.Background(), CreateCompanyInput{Company: noName}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	badCoords := techCorp()
	badCoords.Latitude = 123
	if _, err := svc.CreateCompany(context.Background(), CreateCompanyInput{Company: badCoords}); !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}

	negative := techCorp()
	negative.TotalEmployees = -1
	if _, err := svc.CreateCompany(context.Background(), CreateCompanyInput{Company: negative}); !errors.Is(err, ErrInvalidTotalEmployees) {
		t.Fatalf("expected ErrInvalidTotalEmployees, got %v", err)
	}
}

func TestService_UpdateCompany(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	created, err := svc.CreateCompany(context.Background(), CreateCompanyInput{Company: techCorp()})
	if err != nil {
		t.Fatalf("CreateCompany returned error: %v", err)
	}

	total := 150
	desc := "  Software  "
	updated, err := svc.UpdateCompany(context.Background(), UpdateCompanyInput{
		ID:    created.ID,
		Patch: Patch{TotalEmployees: &total, Description: &desc},
	})
	if err != nil {
		t.Fatalf("UpdateCompany returned error: %v", err)
	}
	if updated.TotalEmployees != 150 || updated.Description != "Software" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.City != "Toronto" {
		t.Fatalf("expected untouched city, got %q", updated.City)
	}

	if _, err := svc.UpdateCompany(context.Background(), UpdateCompanyInput{ID: created.ID}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}

	lat := -100.0
	if _, err := svc.UpdateCompany(context.Background(), UpdateCompanyInput{ID: created.ID, Patch: Patch{Latitude: &lat}}); !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestService_DeleteAndList(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	first, err := svc.CreateCompany(context.Background(), CreateCompanyInput{Company: techCorp()})
	if err != nil {
		t.Fatalf("CreateCompany returned error: %v", err)
	}
	madrid := techCorp()
	madrid.City = "Madrid"
	madrid.Country = "España"
	if _, err := svc.CreateCompany(context.Background(), CreateCompanyInput{Company: madrid}); err != nil {
		t.Fatalf("CreateCompany returned error: %v", err)
	}

	spanish, err := svc.ListCompanies(context.Background(), ListCompaniesInput{Filter: Filter{Country: " España "}})
	if err != nil {
		t.Fatalf("ListCompanies returned error: %v", err)
	}
	if len(spanish) != 1 || spanish[0].City != "Madrid" {
		t.Fatalf("unexpected filtered list: %+v", spanish)
	}

	if err := svc.DeleteCompany(context.Background(), DeleteCompanyInput{ID: first.ID}); err != nil {
		t.Fatalf("DeleteCompany returned error: %v", err)
	}
	if _, err := svc.GetCompany(context.Background(), GetCompanyInput{ID: first.ID}); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	if _, err := svc.GetCompany(context.Background(), GetCompanyInput{ID: ""}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	list := []Company{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	if c, ok := Find(list, "2"); !ok || c.Name != "B" {
		t.Fatalf("expected to find company 2, got %+v %v", c, ok)
	}
	if _, ok := Find(list, "3"); ok {
		t.Fatalf("expected missing company")
	}
}
