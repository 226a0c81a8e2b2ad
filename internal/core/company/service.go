package company

import (
	"context"
	"fmt"
	"strings"
	"time"

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

// Service は会社に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は会社ユースケースの公開インターフェースです。
type UseCase interface {
	CreateCompany(ctx context.Context, in CreateCompanyInput) (*Company, error)
	GetCompany(ctx context.Context, in GetCompanyInput) (*Company, error)
	ListCompanies(ctx context.Context, in ListCompaniesInput) ([]*Company, error)
	UpdateCompany(ctx context.Context, in UpdateCompanyInput) (*Company, error)
	DeleteCompany(ctx context.Context, in DeleteCompanyInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// CreateCompanyInput は会社作成時の入力です。
type CreateCompanyInput struct {
	Company Company
}

// UpdateCompanyInput は会社更新時の入力です。
type UpdateCompanyInput struct {
	ID    string
	Patch Patch
}

// DeleteCompanyInput は会社削除時の入力です。
type DeleteCompanyInput struct {
	ID string
}

// GetCompanyInput は会社取得時の入力です。
type GetCompanyInput struct {
	ID string
}

// ListCompaniesInput は一覧取得時の入力です。
type ListCompaniesInput struct {
	Filter Filter
}

// CreateCompany は新しい会社を作成します。
func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (*Company, error) {
	c, err := Normalize(in.Company)
	if err != nil {
		return nil, err
	}
	c.ID = ""

	var created *Company
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &c)
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

// UpdateCompany は会社情報を部分更新します。
func (s *Service) UpdateCompany(ctx context.Context, in UpdateCompanyInput) (*Company, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if in.Patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	var updated *Company
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

// DeleteCompany は会社を削除します。所属社員の参照は残ります。
func (s *Service) DeleteCompany(ctx context.Context, in DeleteCompanyInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetCompany は ID で会社を取得します。
func (s *Service) GetCompany(ctx context.Context, in GetCompanyInput) (*Company, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var company *Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		company = result
		return nil
	}); err != nil {
		return nil, err
	}

	return company, nil
}

// ListCompanies は会社の一覧を取得します。
func (s *Service) ListCompanies(ctx context.Context, in ListCompaniesInput) ([]*Company, error) {
	filter := Filter{
		Country: strings.TrimSpace(in.Filter.Country),
		City:    strings.TrimSpace(in.Filter.City),
	}

	var companies []*Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		companies = result
		return nil
	}); err != nil {
		return nil, err
	}

	return companies, nil
}

// Normalize は入力値を整形し、保存前の条件を検証します。
func Normalize(c Company) (Company, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return Company{}, ErrInvalidName
	}
	c.Name = name

	if !geo.ValidCoordinates(c.Latitude, c.Longitude) {
		return Company{}, fmt.Errorf("(%v, %v): %w", c.Latitude, c.Longitude, ErrInvalidCoordinates)
	}
	if c.TotalEmployees < 0 {
		return Company{}, ErrInvalidTotalEmployees
	}

	c.Street = strings.TrimSpace(c.Street)
	c.City = strings.TrimSpace(c.City)
	c.Province = strings.TrimSpace(c.Province)
	c.PostalCode = strings.TrimSpace(c.PostalCode)
	c.Country = strings.TrimSpace(c.Country)
	c.Description = strings.TrimSpace(c.Description)
	if !c.FoundedDate.IsZero() {
		t := c.FoundedDate.UTC()
		c.FoundedDate = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return c, nil
}
