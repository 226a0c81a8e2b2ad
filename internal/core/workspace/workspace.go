// Package workspace はアプリケーション全体で共有するストアと同期処理をまとめます。
//
// エンティティの種類ごとに Store を 1 つだけ生成し、参照で受け渡します。
package workspace

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/coordinator"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	"github.com/ogurasousui/admin-console-sync/internal/core/stats"
	"github.com/ogurasousui/admin-console-sync/internal/core/store"
)

type (
	EmployeeRemote = coordinator.Remote[employee.Employee, employee.Patch]
	CompanyRemote  = coordinator.Remote[company.Company, company.Patch]
	LocationRemote = coordinator.Remote[location.Location, location.Patch]
)

// Remotes はエンティティごとのリモート呼び出しです。
type Remotes struct {
	Employees EmployeeRemote
	Companies CompanyRemote
	Locations LocationRemote
}

// Workspace はストアと Coordinator の組を保持するアプリケーションコンテキストです。
type Workspace struct {
	Employees *coordinator.Coordinator[employee.Employee, employee.Patch]
	Companies *coordinator.Coordinator[company.Company, company.Patch]
	Locations *coordinator.Coordinator[location.Location, location.Patch]

	log zerolog.Logger
}

// New は Workspace を生成します。opts はすべての Coordinator に適用されます。
func New(remotes Remotes, logger zerolog.Logger, opts ...coordinator.Option) *Workspace {
	opts = append([]coordinator.Option{coordinator.WithLogger(logger)}, opts...)
	return &Workspace{
		Employees: coordinator.New("employees", store.New(employee.Key), remotes.Employees, coordinator.Entity[employee.Employee, employee.Patch]{
			Key:    employee.Key,
			WithID: employee.WithID,
			Apply:  employee.ApplyPatch,
		}, opts...),
		Companies: coordinator.New("companies", store.New(company.Key), remotes.Companies, coordinator.Entity[company.Company, company.Patch]{
			Key:    company.Key,
			WithID: company.WithID,
			Apply:  company.ApplyPatch,
		}, opts...),
		Locations: coordinator.New("locations", store.New(location.Key), remotes.Locations, coordinator.Entity[location.Location, location.Patch]{
			Key:    location.Key,
			WithID: location.WithID,
			Apply:  location.ApplyPatch,
		}, opts...),
		log: logger,
	}
}

// Load はすべての一覧を並行して読み込みます。
// 失敗した一覧は空として反映され、各原因をまとめて返します。
func (w *Workspace) Load(ctx context.Context) error {
	var errs [3]error
	var g errgroup.Group
	for i, reload := range []func(context.Context) error{w.Employees.Reload, w.Companies.Reload, w.Locations.Reload} {
		g.Go(func() error {
			errs[i] = reload(ctx)
			return errs[i]
		})
	}
	if g.Wait() == nil {
		return nil
	}

	// Wait は最初の失敗しか返さないため、失敗した一覧をすべてまとめます。
	err := errors.Join(errs[:]...)
	w.log.Warn().Err(err).Msg("workspace loaded with empty collections")
	return err
}

// Company は会社一覧のスナップショットから id の会社を返します。
func (w *Workspace) Company(id string) (company.Company, bool) {
	return company.Find(w.Companies.Store().Snapshot(), id)
}

// Summary は現在の社員スナップショットを filter で絞り込んで集計します。
func (w *Workspace) Summary(filter employee.Filter) stats.Summary {
	return stats.Summarize(filter.Apply(w.Employees.Store().Snapshot()))
}

// Wait は処理中の変更がすべて終わるまで待ちます。
func (w *Workspace) Wait() {
	w.Employees.Wait()
	w.Companies.Wait()
	w.Locations.Wait()
}
