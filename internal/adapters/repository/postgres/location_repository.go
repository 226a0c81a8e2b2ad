package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	pgdb "github.com/ogurasousui/admin-console-sync/internal/platform/db/postgres"
)

const locationColumns = `id::text, name, latitude, longitude, country, city, kind, active`

// LocationRepository は PostgreSQL を利用した拠点永続化の実装です。
type LocationRepository struct {
	pool pgdb.Queryer
}

// NewLocationRepository は LocationRepository を生成します。
func NewLocationRepository(pool pgdb.Queryer) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) Create(ctx context.Context, l *location.Location) (*location.Location, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO locations (name, latitude, longitude, country, city, kind, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+locationColumns,
		l.Name, l.Latitude, l.Longitude, l.Country, l.City, string(l.Kind), l.Active,
	)

	created, err := scanLocation(row)
	if err != nil {
		return nil, translateLocationPgError(err)
	}
	return created, nil
}

func (r *LocationRepository) Update(ctx context.Context, l *location.Location) (*location.Location, error) {
	if !validID(l.ID) {
		return nil, location.ErrLocationNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE locations
           SET name = $1,
               latitude = $2,
               longitude = $3,
               country = $4,
               city = $5,
               kind = $6,
               active = $7
         WHERE id = $8
        RETURNING `+locationColumns,
		l.Name, l.Latitude, l.Longitude, l.Country, l.City, string(l.Kind), l.Active, l.ID,
	)

	updated, err := scanLocation(row)
	if err != nil {
		return nil, translateLocationPgError(err)
	}
	return updated, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return location.ErrLocationNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return translateLocationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}
	return nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id string) (*location.Location, error) {
	if !validID(id) {
		return nil, location.ErrLocationNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+locationColumns+`
          FROM locations
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanLocation(row)
	if err != nil {
		return nil, translateLocationPgError(err)
	}
	return found, nil
}

// List は拠点を作成順に取得します。
func (r *LocationRepository) List(ctx context.Context, filter location.Filter) ([]*location.Location, error) {
	args := make([]any, 0, 3)
	conditions := make([]string, 0, 3)

	if filter.Country != "" {
		args = append(args, filter.Country)
		conditions = append(conditions, "country = $"+strconv.Itoa(len(args)))
	}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		conditions = append(conditions, "kind = $"+strconv.Itoa(len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		conditions = append(conditions, "active = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT ` + locationColumns + `
          FROM locations` + whereClause + `
         ORDER BY created_at, id
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateLocationPgError(err)
	}
	defer rows.Close()

	var locations []*location.Location
	for rows.Next() {
		found, err := scanLocation(rows)
		if err != nil {
			return nil, translateLocationPgError(err)
		}
		locations = append(locations, found)
	}
	if err := rows.Err(); err != nil {
		return nil, translateLocationPgError(err)
	}

	return locations, nil
}

func scanLocation(row pgx.Row) (*location.Location, error) {
	var (
		l    location.Location
		kind string
	)

	if err := row.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.Country, &l.City, &kind, &l.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, location.ErrLocationNotFound
		}
		return nil, err
	}

	l.Kind = location.Kind(kind)
	return &l, nil
}

func translateLocationPgError(err error) error {
	switch pgErrorCode(err) {
	case invalidTextRepresentationCode:
		return location.ErrLocationNotFound
	case checkViolationCode:
		return location.ErrInvalidCoordinates
	}
	return err
}
