package employee

import "errors"

var (
	ErrInvalidID         = errors.New("employee: invalid id")
	ErrInvalidName       = errors.New("employee: invalid name")
	ErrInvalidSurname    = errors.New("employee: invalid surname")
	ErrInvalidEmail      = errors.New("employee: invalid email")
	ErrInvalidDepartment = errors.New("employee: invalid department")
	ErrInvalidSalary     = errors.New("employee: salary must be greater than zero")
	ErrInvalidStatus     = errors.New("employee: invalid status")
	ErrInvalidCompanyID  = errors.New("employee: invalid company id")
	ErrEmptyPatch        = errors.New("employee: nothing to update")
	ErrEmployeeNotFound  = errors.New("employee: not found")
)
