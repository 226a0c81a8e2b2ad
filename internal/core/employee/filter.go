package employee

// Filter は一覧・統計の絞り込み条件です。空のフィールドは条件に含めません。
type Filter struct {
	Department string `json:"department,omitempty"`
	Status     Status `json:"status,omitempty"`
	CompanyID  string `json:"companyId,omitempty"`
}

// IsZero は条件が一つも指定されていないかを返します。
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Matches は e が全ての条件に完全一致するかを返します。
func (f Filter) Matches(e Employee) bool {
	if f.Department != "" && e.Department != f.Department {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.CompanyID != "" && e.CompanyID != f.CompanyID {
		return false
	}
	return true
}

// Apply は条件に一致する社員を元の順序のまま返します。
func (f Filter) Apply(employees []Employee) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
