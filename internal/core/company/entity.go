package company

import "time"

// Company は会社エンティティです。TotalEmployees は非正規化された値で、社員数から自動計算しません。
type Company struct {
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name"`
	Street         string    `json:"street,omitempty"`
	City           string    `json:"city,omitempty"`
	Province       string    `json:"province,omitempty"`
	PostalCode     string    `json:"postalCode,omitempty"`
	Country        string    `json:"country,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	TotalEmployees int       `json:"totalEmployees"`
	FoundedDate    time.Time `json:"foundedDate"`
	Description    string    `json:"description,omitempty"`
}

// Key はストア上の識別子を返します。
func Key(c Company) string {
	return c.ID
}

// WithID は ID を差し替えた複製を返します。
func WithID(c Company, id string) Company {
	c.ID = id
	return c
}

// Find は一覧から ID が一致する会社を探します。
func Find(companies []Company, id string) (Company, bool) {
	for _, c := range companies {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}

// Patch は部分更新の内容です。nil のフィールドは変更しません。
type Patch struct {
	Name           *string    `json:"name,omitempty"`
	Street         *string    `json:"street,omitempty"`
	City           *string    `json:"city,omitempty"`
	Province       *string    `json:"province,omitempty"`
	PostalCode     *string    `json:"postalCode,omitempty"`
	Country        *string    `json:"country,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	TotalEmployees *int       `json:"totalEmployees,omitempty"`
	FoundedDate    *time.Time `json:"foundedDate,omitempty"`
	Description    *string    `json:"description,omitempty"`
}

// Apply は c に変更を重ねた新しい値を返します。
func (p Patch) Apply(c Company) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Street != nil {
		c.Street = *p.Street
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.Province != nil {
		c.Province = *p.Province
	}
	if p.PostalCode != nil {
		c.PostalCode = *p.PostalCode
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.Latitude != nil {
		c.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		c.Longitude = *p.Longitude
	}
	if p.TotalEmployees != nil {
		c.TotalEmployees = *p.TotalEmployees
	}
	if p.FoundedDate != nil {
		c.FoundedDate = *p.FoundedDate
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	return c
}

// IsEmpty は変更内容が無いかどうかを返します。
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// ApplyPatch は Patch.Apply の関数版です。
func ApplyPatch(c Company, p Patch) Company {
	return p.Apply(c)
}

// Filter は会社一覧の絞り込み条件です。
type Filter struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
}

// Matches は c が条件に一致するかを返します。
func (f Filter) Matches(c Company) bool {
	if f.Country != "" && c.Country != f.Country {
		return false
	}
	if f.City != "" && c.City != f.City {
		return false
	}
	return true
}
