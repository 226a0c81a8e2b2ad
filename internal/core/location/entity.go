package location

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind は拠点の種別です。
type Kind string

const (
	KindOffice             Kind = "office"
	KindWarehouse          Kind = "warehouse"
	KindDistributionCenter Kind = "distribution-center"
)

// Kinds は定義済みの種別を返します。
func Kinds() []Kind {
	return []Kind{KindOffice, KindWarehouse, KindDistributionCenter}
}

// ParseKind は文字列を Kind に変換します。
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidKind)
	}
	return kind, nil
}

// Valid は定義済みの種別かどうかを返します。
func (k Kind) Valid() bool {
	switch k {
	case KindOffice, KindWarehouse, KindDistributionCenter:
		return true
	default:
		return false
	}
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("kind: %w", ErrInvalidKind)
	}
	if raw == "" {
		*k = ""
		return nil
	}
	parsed, err := ParseKind(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Location は地図に表示する拠点です。
type Location struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
	City      string  `json:"city,omitempty"`
	Kind      Kind    `json:"kind"`
	Active    bool    `json:"active"`
}

func Key(l Location) string {
	return l.ID
}

func WithID(l Location, id string) Location {
	l.ID = id
	return l
}

// Patch は部分更新の内容です。
type Patch struct {
	Name      *string  `json:"name,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Country   *string  `json:"country,omitempty"`
	City      *string  `json:"city,omitempty"`
	Kind      *Kind    `json:"kind,omitempty"`
	Active    *bool    `json:"active,omitempty"`
}

func (p Patch) Apply(l Location) Location {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Latitude != nil {
		l.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		l.Longitude = *p.Longitude
	}
	if p.Country != nil {
		l.Country = *p.Country
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.Kind != nil {
		l.Kind = *p.Kind
	}
	if p.Active != nil {
		l.Active = *p.Active
	}
	return l
}

func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// ApplyPatch は Patch.Apply の関数版です。
func ApplyPatch(l Location, p Patch) Location {
	return p.Apply(l)
}

// Filter は拠点の絞り込み条件です。Active が nil の場合は稼働状態で絞り込みません。
type Filter struct {
	Country string `json:"country,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

func (f Filter) Matches(l Location) bool {
	if f.Country != "" && l.Country != f.Country {
		return false
	}
	if f.Kind != "" && l.Kind != f.Kind {
		return false
	}
	if f.Active != nil && l.Active != *f.Active {
		return false
	}
	return true
}

// Apply は条件に一致する拠点を元の順序のまま返します。
func (f Filter) Apply(locations []Location) []Location {
	out := make([]Location, 0, len(locations))
	for _, l := range locations {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
