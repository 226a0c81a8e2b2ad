package location

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/admin-console-sync/internal/core/geo"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は拠点のユースケースです。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は拠点ユースケースの公開インターフェースです。
type UseCase interface {
	CreateLocation(ctx context.Context, in CreateLocationInput) (*Location, error)
	GetLocation(ctx context.Context, in GetLocationInput) (*Location, error)
	ListLocations(ctx context.Context, in ListLocationsInput) ([]*Location, error)
	UpdateLocation(ctx context.Context, in UpdateLocationInput) (*Location, error)
	DeleteLocation(ctx context.Context, in DeleteLocationInput) error
}

func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

type CreateLocationInput struct {
	Location Location
}

type UpdateLocationInput struct {
	ID    string
	Patch Patch
}

type DeleteLocationInput struct {
	ID string
}

type GetLocationInput struct {
	ID string
}

type ListLocationsInput struct {
	Filter Filter
}

// CreateLocation は拠点を登録します。種別が未指定の場合は office になります。
func (s *Service) CreateLocation(ctx context.Context, in CreateLocationInput) (*Location, error) {
	loc := in.Location
	if loc.Kind == "" {
		loc.Kind = KindOffice
	}
	loc, err := Normalize(loc)
	if err != nil {
		return nil, err
	}
	loc.ID = ""

	var created *Location
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &loc)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateLocation は拠点を部分更新します。
func (s *Service) UpdateLocation(ctx context.Context, in UpdateLocationInput) (*Location, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if in.Patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	var updated *Location
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		merged, err := Normalize(in.Patch.Apply(*existing))
		if err != nil {
			return err
		}
		merged.ID = existing.ID

		result, err := s.repo.Update(txCtx, &merged)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteLocation(ctx context.Context, in DeleteLocationInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

func (s *Service) GetLocation(ctx context.Context, in GetLocationInput) (*Location, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Location
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}
	return found, nil
}

// ListLocations は条件に一致する拠点を返します。
func (s *Service) ListLocations(ctx context.Context, in ListLocationsInput) ([]*Location, error) {
	filter := Filter{
		Country: strings.TrimSpace(in.Filter.Country),
		Active:  in.Filter.Active,
	}
	if in.Filter.Kind != "" {
		kind, err := ParseKind(string(in.Filter.Kind))
		if err != nil {
			return nil, err
		}
		filter.Kind = kind
	}

	var locations []*Location
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		locations = result
		return nil
	}); err != nil {
		return nil, err
	}
	return locations, nil
}

// Normalize は入力値を整形して検証します。
func Normalize(l Location) (Location, error) {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return Location{}, ErrInvalidName
	}
	l.Name = name
	if !l.Kind.Valid() {
		return Location{}, fmt.Errorf("%q: %w", l.Kind, ErrInvalidKind)
	}
	if !geo.ValidCoordinates(l.Latitude, l.Longitude) {
		return Location{}, fmt.Errorf("(%v, %v): %w", l.Latitude, l.Longitude, ErrInvalidCoordinates)
	}
	l.Country = strings.TrimSpace(l.Country)
	l.City = strings.TrimSpace(l.City)
	return l, nil
}
