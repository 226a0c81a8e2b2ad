package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	pgdb "github.com/ogurasousui/admin-console-sync/internal/platform/db/postgres"
)

const companyColumns = `id::text, name, street, city, province, postal_code, country, latitude, longitude, total_employees, founded_date, description`

// CompanyRepository は PostgreSQL を利用した会社永続化の実装です。
type CompanyRepository struct {
	pool pgdb.Queryer
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(pool pgdb.Queryer) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// Create は会社を新規作成します。
func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO companies (name, street, city, province, postal_code, country, latitude, longitude, total_employees, founded_date, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING `+companyColumns,
		c.Name, c.Street, c.City, c.Province, c.PostalCode, c.Country,
		c.Latitude, c.Longitude, c.TotalEmployees, nullableDate(c), nullableString(c.Description),
	)

	created, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return created, nil
}

// Update は会社情報を更新します。
func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) (*company.Company, error) {
	if !validID(c.ID) {
		return nil, company.ErrCompanyNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE companies
           SET name = $1,
               street = $2,
               city = $3,
               province = $4,
               postal_code = $5,
               country = $6,
               latitude = $7,
               longitude = $8,
               total_employees = $9,
               founded_date = $10,
               description = $11,
               updated_at = now()
         WHERE id = $12
        RETURNING `+companyColumns,
		c.Name, c.Street, c.City, c.Province, c.PostalCode, c.Country,
		c.Latitude, c.Longitude, c.TotalEmployees, nullableDate(c), nullableString(c.Description),
		c.ID,
	)

	updated, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return updated, nil
}

// Delete は会社を削除します。
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return company.ErrCompanyNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return translateCompanyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// FindByID は ID で会社を取得します。
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	if !validID(id) {
		return nil, company.ErrCompanyNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+companyColumns+`
          FROM companies
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return found, nil
}

// List は会社の一覧を取得します。
func (r *CompanyRepository) List(ctx context.Context, filter company.Filter) ([]*company.Company, error) {
	args := make([]any, 0, 2)
	conditions := make([]string, 0, 2)

	if filter.Country != "" {
		args = append(args, filter.Country)
		conditions = append(conditions, "country = $"+strconv.Itoa(len(args)))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		conditions = append(conditions, "city = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT ` + companyColumns + `
          FROM companies` + whereClause + `
         ORDER BY created_at, id
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	defer rows.Close()

	var companies []*company.Company
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, translateCompanyPgError(err)
		}
		companies = append(companies, found)
	}

	if err := rows.Err(); err != nil {
		return nil, translateCompanyPgError(err)
	}

	return companies, nil
}

func scanCompany(row pgx.Row) (*company.Company, error) {
	var (
		c           company.Company
		foundedDate sql.NullTime
		description sql.NullString
	)

	if err := row.Scan(
		&c.ID, &c.Name, &c.Street, &c.City, &c.Province, &c.PostalCode, &c.Country,
		&c.Latitude, &c.Longitude, &c.TotalEmployees, &foundedDate, &description,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}

	if foundedDate.Valid {
		c.FoundedDate = foundedDate.Time.UTC()
	}
	if description.Valid {
		c.Description = description.String
	}
	return &c, nil
}

func translateCompanyPgError(err error) error {
	switch pgErrorCode(err) {
	case invalidTextRepresentationCode:
		return company.ErrCompanyNotFound
	case checkViolationCode:
		return company.ErrInvalidCoordinates
	}
	return err
}

func nullableDate(c *company.Company) any {
	if c.FoundedDate.IsZero() {
		return nil
	}
	return c.FoundedDate
}
