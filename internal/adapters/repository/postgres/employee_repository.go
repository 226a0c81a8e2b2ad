package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	pgdb "github.com/ogurasousui/admin-console-sync/internal/platform/db/postgres"
)

const employeeColumns = `id::text, name, surname, email, phone, department, role, salary, hire_date, status, company_id`

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。ID はデータベースが採番します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (name, surname, email, phone, department, role, salary, hire_date, status, company_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING `+employeeColumns,
		e.Name,
		e.Surname,
		e.Email,
		e.Phone,
		e.Department,
		e.Role,
		e.Salary,
		e.HireDate,
		string(e.Status),
		e.CompanyID,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は社員情報を全体で置き換えます。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	if !validID(e.ID) {
		return nil, employee.ErrEmployeeNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET name = $1,
               surname = $2,
               email = $3,
               phone = $4,
               department = $5,
               role = $6,
               salary = $7,
               hire_date = $8,
               status = $9,
               company_id = $10,
               updated_at = now()
         WHERE id = $11
        RETURNING `+employeeColumns,
		e.Name,
		e.Surname,
		e.Email,
		e.Phone,
		e.Department,
		e.Role,
		e.Salary,
		e.HireDate,
		string(e.Status),
		e.CompanyID,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return employee.ErrEmployeeNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は社員を ID で取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if !validID(id) {
		return nil, employee.ErrEmployeeNotFound
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List は条件に一致する社員を作成順に全件取得します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.Filter) ([]*employee.Employee, error) {
	args := make([]any, 0, 3)
	conditions := make([]string, 0, 3)

	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, "department = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		conditions = append(conditions, "company_id = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT ` + employeeColumns + `
          FROM employees` + whereClause + `
         ORDER BY created_at, id
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		found, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, found)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		e        employee.Employee
		status   string
		hireDate time.Time
	)

	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Surname,
		&e.Email,
		&e.Phone,
		&e.Department,
		&e.Role,
		&e.Salary,
		&hireDate,
		&status,
		&e.CompanyID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	e.Status = employee.Status(status)
	e.HireDate = hireDate.UTC()
	return &e, nil
}

func translateEmployeePgError(err error) error {
	switch pgErrorCode(err) {
	case invalidTextRepresentationCode:
		return employee.ErrEmployeeNotFound
	case checkViolationCode:
		return employee.ErrInvalidSalary
	}
	return err
}
