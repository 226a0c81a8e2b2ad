package employee

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status は社員の在籍状態を表します。
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on-leave"
)

// Statuses は定義済みの状態を表示順で返します。
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusOnLeave}
}

// ParseStatus は文字列を Status に変換します。未定義の値は ErrInvalidStatus になります。
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidStatus)
	}
	return status, nil
}

// Valid は定義済みの状態かどうかを返します。
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	default:
		return false
	}
}

// UnmarshalJSON は境界で未定義の状態を拒否します。空文字は未指定として扱います。
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("status: %w", ErrInvalidStatus)
	}
	if raw == "" {
		*s = ""
		return nil
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Employee は社員エンティティです。値として扱い、変更時は新しい値を作ります。
// CompanyID は会社への緩い参照で、存在確認は行いません。
type Employee struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department"`
	Role       string    `json:"role,omitempty"`
	Salary     float64   `json:"salary"`
	HireDate   time.Time `json:"hireDate"`
	Status     Status    `json:"status"`
	CompanyID  string    `json:"companyId,omitempty"`
}

// Key はストア上の識別子を返します。
func Key(e Employee) string {
	return e.ID
}

// WithID は ID を差し替えた複製を返します。
func WithID(e Employee, id string) Employee {
	e.ID = id
	return e
}

// FullName は氏名を連結して返します。
func (e Employee) FullName() string {
	return strings.TrimSpace(e.Name + " " + e.Surname)
}

// Patch は部分更新の内容です。nil のフィールドは変更しません。
type Patch struct {
	Name       *string    `json:"name,omitempty"`
	Surname    *string    `json:"surname,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Department *string    `json:"department,omitempty"`
	Role       *string    `json:"role,omitempty"`
	Salary     *float64   `json:"salary,omitempty"`
	HireDate   *time.Time `json:"hireDate,omitempty"`
	Status     *Status    `json:"status,omitempty"`
	CompanyID  *string    `json:"companyId,omitempty"`
}

// Apply は e に変更を重ねた新しい値を返します。e 自体は変更しません。
func (p Patch) Apply(e Employee) Employee {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Surname != nil {
		e.Surname = *p.Surname
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Role != nil {
		e.Role = *p.Role
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if p.HireDate != nil {
		e.HireDate = *p.HireDate
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.CompanyID != nil {
		e.CompanyID = *p.CompanyID
	}
	return e
}

// IsEmpty は変更内容が無いかどうかを返します。
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// ApplyPatch は Patch.Apply の関数版です。
func ApplyPatch(e Employee, p Patch) Employee {
	return p.Apply(e)
}
