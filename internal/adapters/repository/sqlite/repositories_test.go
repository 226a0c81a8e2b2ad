package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestEmployeeRepository_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEmployeeRepository(openMemory(t))

	created, err := repo.Create(ctx, &employee.Employee{ID: "tmp-1", Name: "Ana", Department: "Ventas", Salary: 1000, Status: employee.StatusActive, CompanyID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)

	second, err := repo.Create(ctx, &employee.Employee{Name: "Luis", Department: "IT", Salary: 2000, Status: employee.StatusInactive, CompanyID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)

	found, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.Name)

	found.Salary = 1500
	updated, err := repo.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, updated.Salary)

	ventas, err := repo.List(ctx, employee.Filter{Department: "Ventas"})
	require.NoError(t, err)
	require.Len(t, ventas, 1)
	assert.Equal(t, "1", ventas[0].ID)

	all, err := repo.List(ctx, employee.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"1", "2"}, []string{all[0].ID, all[1].ID})

	require.NoError(t, repo.Delete(ctx, "1"))
	_, err = repo.FindByID(ctx, "1")
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
	assert.ErrorIs(t, repo.Delete(ctx, "1"), employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "not-a-number"), employee.ErrEmployeeNotFound)

	_, err = repo.Update(ctx, &employee.Employee{ID: "99", Name: "ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCompanyAndLocationRepositories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openMemory(t)
	companies := NewCompanyRepository(db)
	locations := NewLocationRepository(db)

	c, err := companies.Create(ctx, &company.Company{Name: "TechCorp", Country: "Canada", City: "Toronto"})
	require.NoError(t, err)
	assert.Equal(t, "1", c.ID)

	l, err := locations.Create(ctx, &location.Location{Name: "HQ", Country: "Canada", Kind: location.KindOffice, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "1", l.ID)

	_, err = locations.Create(ctx, &location.Location{Name: "Depot", Country: "Mexico", Kind: location.KindWarehouse})
	require.NoError(t, err)

	active := true
	got, err := locations.List(ctx, location.Filter{Active: &active})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "HQ", got[0].Name)

	byCountry, err := companies.List(ctx, company.Filter{Country: "España"})
	require.NoError(t, err)
	assert.Empty(t, byCountry)

	_, err = companies.FindByID(ctx, "2")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	_, err = locations.FindByID(ctx, "0")
	assert.ErrorIs(t, err, location.ErrLocationNotFound)
}

func TestOpen_FilePersistsAcrossConnections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "console.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = NewCompanyRepository(db).Create(ctx, &company.Company{Name: "TechCorp"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	found, err := NewCompanyRepository(reopened).FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "TechCorp", found.Name)
	assert.Equal(t, path, reopened.Path())
}
