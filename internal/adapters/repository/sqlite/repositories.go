package sqlite

import (
	"context"

	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
)

// EmployeeRepository は employee.Repository の SQLite 実装です。
type EmployeeRepository struct {
	docs documents[employee.Employee]
}

var _ employee.Repository = (*EmployeeRepository)(nil)

func NewEmployeeRepository(d *DB) *EmployeeRepository {
	return &EmployeeRepository{docs: newDocuments(d, "employees", employee.WithID, employee.ErrEmployeeNotFound)}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	return ptr(r.docs.create(ctx, *e))
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	return ptr(r.docs.update(ctx, e.ID, *e))
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return ptr(r.docs.find(ctx, id))
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.Filter) ([]*employee.Employee, error) {
	return ptrs(r.docs.list(ctx, filter.Matches))
}

// CompanyRepository は company.Repository の SQLite 実装です。
type CompanyRepository struct {
	docs documents[company.Company]
}

var _ company.Repository = (*CompanyRepository)(nil)

func NewCompanyRepository(d *DB) *CompanyRepository {
	return &CompanyRepository{docs: newDocuments(d, "companies", company.WithID, company.ErrCompanyNotFound)}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) (*company.Company, error) {
	return ptr(r.docs.create(ctx, *c))
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) (*company.Company, error) {
	return ptr(r.docs.update(ctx, c.ID, *c))
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return ptr(r.docs.find(ctx, id))
}

func (r *CompanyRepository) List(ctx context.Context, filter company.Filter) ([]*company.Company, error) {
	return ptrs(r.docs.list(ctx, filter.Matches))
}

// LocationRepository は location.Repository の SQLite 実装です。
type LocationRepository struct {
	docs documents[location.Location]
}

var _ location.Repository = (*LocationRepository)(nil)

func NewLocationRepository(d *DB) *LocationRepository {
	return &LocationRepository{docs: newDocuments(d, "locations", location.WithID, location.ErrLocationNotFound)}
}

func (r *LocationRepository) Create(ctx context.Context, l *location.Location) (*location.Location, error) {
	return ptr(r.docs.create(ctx, *l))
}

func (r *LocationRepository) Update(ctx context.Context, l *location.Location) (*location.Location, error) {
	return ptr(r.docs.update(ctx, l.ID, *l))
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *LocationRepository) FindByID(ctx context.Context, id string) (*location.Location, error) {
	return ptr(r.docs.find(ctx, id))
}

func (r *LocationRepository) List(ctx context.Context, filter location.Filter) ([]*location.Location, error) {
	return ptrs(r.docs.list(ctx, filter.Matches))
}

func ptr[T any](v T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func ptrs[T any](items []T, err error) ([]*T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out, nil
}
