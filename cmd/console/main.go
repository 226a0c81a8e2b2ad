package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/client"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/coordinator"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	"github.com/ogurasousui/admin-console-sync/internal/core/stats"
	"github.com/ogurasousui/admin-console-sync/internal/core/workspace"
	"github.com/ogurasousui/admin-console-sync/internal/platform/config"
	"github.com/ogurasousui/admin-console-sync/internal/platform/logging"
	"github.com/ogurasousui/admin-console-sync/internal/platform/metrics"
)

const usage = `usage: console [flags] <command>

commands:
  summary          employee statistics (default)
  departments      average salary per department
  employees        employee snapshot
  companies        company snapshot
  locations        location snapshot
  places           map place catalogue
  set-salary       update the salary of -id to -salary
  set-status       update the status of -id to -status
  remove-employee  delete employee -id
`

type options struct {
	configPath string
	lang       string
	companyID  string
	department string
	status     string
	country    string
	kind       string
	id         string
	salary     float64
	remote     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts options
	fs := flag.NewFlagSet("console", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	fs.StringVar(&opts.lang, "lang", "es", "language tag used to format numbers")
	fs.StringVar(&opts.companyID, "company", "", "company id used as the primary company")
	fs.StringVar(&opts.department, "department", "", "filter employees by department")
	fs.StringVar(&opts.status, "status", "", "filter employees by status, or the new status for set-status")
	fs.StringVar(&opts.country, "country", "", "filter locations by country")
	fs.StringVar(&opts.kind, "kind", "", "filter locations by kind")
	fs.StringVar(&opts.id, "id", "", "entity id for mutations")
	fs.Float64Var(&opts.salary, "salary", 0, "new salary for set-salary")
	fs.BoolVar(&opts.remote, "remote", false, "list employees with a server-side filter instead of the local snapshot")
	_ = fs.Parse(os.Args[1:])

	command := "summary"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}

	cfg, err := config.Load(effectiveConfigPath(opts.configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	if err := run(ctx, cfg, logger, command, opts, os.Stdout); err != nil {
		logger.Fatal().Err(err).Str("command", command).Msg("console command failed")
	}
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, command string, opts options, out io.Writer) error {
	rep, err := newReport(out, opts.lang)
	if err != nil {
		return err
	}
	if command == "places" {
		rep.places()
		return nil
	}

	filter, err := employeeFilter(opts)
	if err != nil {
		return err
	}

	conn, err := client.Dial(cfg.Remote.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	reg := prometheus.NewRegistry()
	syncMetrics, err := metrics.NewSync(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.Metrics.ListenAddr != "" {
		stopMetrics := serveMetrics(cfg.Metrics.ListenAddr, reg, logger)
		defer stopMetrics()
	}

	ws := workspace.New(client.Remotes(conn, logger), logger,
		coordinator.WithMetrics(syncMetrics),
		coordinator.WithTimeout(cfg.Remote.Timeout),
	)

	var gen workspace.Generation
	scope := gen.Begin()
	defer scope.Close()
	workspace.Watch(scope, ws.Employees.Store(), func(snapshot []employee.Employee) {
		logger.Debug().Int("employees", len(snapshot)).Msg("employee snapshot")
	})

	if err := ws.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("continuing with partial data")
	}
	defer ws.Wait()

	switch command {
	case "summary":
		var primary *company.Company
		if opts.companyID != "" {
			if c, ok := ws.Company(opts.companyID); ok {
				primary = &c
			} else {
				logger.Warn().Str("company", opts.companyID).Msg("company not in snapshot")
			}
		}
		rep.summary(ws.Summary(filter), primary)
	case "departments":
		rep.averages(stats.AverageByDepartment(filter.Apply(ws.Employees.Store().Snapshot())))
	case "employees":
		if opts.remote {
			rep.employees(client.NewEmployees(conn, logger).ListWhere(ctx, filter))
			return nil
		}
		rep.employees(filter.Apply(ws.Employees.Store().Snapshot()))
	case "companies":
		rep.companies(ws.Companies.Store().Snapshot())
	case "locations":
		lf, err := locationFilter(opts)
		if err != nil {
			return err
		}
		rep.locations(lf.Apply(ws.Locations.Store().Snapshot()))
	case "set-salary":
		salary := opts.salary
		return mutate(ctx, ws, rep, opts.id, employee.Patch{Salary: &salary})
	case "set-status":
		st, err := employee.ParseStatus(opts.status)
		if err != nil {
			return err
		}
		return mutate(ctx, ws, rep, opts.id, employee.Patch{Status: &st})
	case "remove-employee":
		if opts.id == "" {
			return employee.ErrInvalidID
		}
		if err := ws.Employees.Delete(ctx, opts.id); err != nil {
			return err
		}
		rep.employees(ws.Employees.Store().Snapshot())
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func mutate(ctx context.Context, ws *workspace.Workspace, rep *report, id string, patch employee.Patch) error {
	if id == "" {
		return employee.ErrInvalidID
	}
	patch, err := employee.NormalizePatch(patch)
	if err != nil {
		return err
	}
	updated, err := ws.Employees.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	rep.employees([]employee.Employee{updated})
	return nil
}

func employeeFilter(opts options) (employee.Filter, error) {
	f := employee.Filter{Department: opts.department, CompanyID: opts.companyID}
	if opts.status != "" && opts.id == "" {
		st, err := employee.ParseStatus(opts.status)
		if err != nil {
			return employee.Filter{}, err
		}
		f.Status = st
	}
	return f, nil
}

func locationFilter(opts options) (location.Filter, error) {
	f := location.Filter{Country: opts.country}
	if opts.kind != "" {
		k, err := location.ParseKind(opts.kind)
		if err != nil {
			return location.Filter{}, err
		}
		f.Kind = k
	}
	return f, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn().Err(err).Str("addr", addr).Msg("metrics endpoint stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
