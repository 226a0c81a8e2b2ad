package employee

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Normalize は入力値を整形し、送信前に満たすべき条件を検証します。
// ID と CompanyID の存在確認は行いません。
func Normalize(e Employee) (Employee, error) {
	var err error
	if e.Name, err = normalizeRequired(e.Name, ErrInvalidName); err != nil {
		return Employee{}, err
	}
	if e.Surname, err = normalizeRequired(e.Surname, ErrInvalidSurname); err != nil {
		return Employee{}, err
	}
	if e.Email, err = normalizeEmail(e.Email); err != nil {
		return Employee{}, err
	}
	if e.Department, err = normalizeRequired(e.Department, ErrInvalidDepartment); err != nil {
		return Employee{}, err
	}
	if err := validateSalary(e.Salary); err != nil {
		return Employee{}, err
	}
	if e.Status != "" && !e.Status.Valid() {
		return Employee{}, fmt.Errorf("%q: %w", e.Status, ErrInvalidStatus)
	}
	e.Phone = strings.TrimSpace(e.Phone)
	e.Role = strings.TrimSpace(e.Role)
	e.CompanyID = strings.TrimSpace(e.CompanyID)
	e.HireDate = normalizeDate(e.HireDate)
	return e, nil
}

// NormalizePatch は部分更新の各フィールドを Normalize と同じ規則で検証します。
func NormalizePatch(p Patch) (Patch, error) {
	if p.IsEmpty() {
		return Patch{}, ErrEmptyPatch
	}
	if p.Name != nil {
		v, err := normalizeRequired(*p.Name, ErrInvalidName)
		if err != nil {
			return Patch{}, err
		}
		p.Name = &v
	}
	if p.Surname != nil {
		v, err := normalizeRequired(*p.Surname, ErrInvalidSurname)
		if err != nil {
			return Patch{}, err
		}
		p.Surname = &v
	}
	if p.Email != nil {
		v, err := normalizeEmail(*p.Email)
		if err != nil {
			return Patch{}, err
		}
		p.Email = &v
	}
	if p.Department != nil {
		v, err := normalizeRequired(*p.Department, ErrInvalidDepartment)
		if err != nil {
			return Patch{}, err
		}
		p.Department = &v
	}
	if p.Salary != nil {
		if err := validateSalary(*p.Salary); err != nil {
			return Patch{}, err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return Patch{}, fmt.Errorf("%q: %w", *p.Status, ErrInvalidStatus)
	}
	if p.Phone != nil {
		v := strings.TrimSpace(*p.Phone)
		p.Phone = &v
	}
	if p.Role != nil {
		v := strings.TrimSpace(*p.Role)
		p.Role = &v
	}
	if p.CompanyID != nil {
		v := strings.TrimSpace(*p.CompanyID)
		p.CompanyID = &v
	}
	if p.HireDate != nil {
		v := normalizeDate(*p.HireDate)
		p.HireDate = &v
	}
	return p, nil
}

func normalizeRequired(raw string, sentinel error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", sentinel
	}
	return trimmed, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(addr.Address), nil
}

func validateSalary(salary float64) error {
	// NaN は比較が常に false になるため、否定形で判定する
	if !(salary > 0) {
		return fmt.Errorf("%v: %w", salary, ErrInvalidSalary)
	}
	return nil
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
