package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/geo"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	"github.com/ogurasousui/admin-console-sync/internal/core/stats"
)

// report は数値を言語に合わせて整形しながら表形式で出力します。
type report struct {
	p *message.Printer
	w io.Writer
}

func newReport(w io.Writer, lang string) (*report, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", lang, err)
	}
	return &report{p: message.NewPrinter(tag), w: w}, nil
}

func (r *report) table(fn func(tw io.Writer)) {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fn(tw)
	_ = tw.Flush()
}

func (r *report) summary(s stats.Summary, c *company.Company) {
	if c != nil {
		r.p.Fprintf(r.w, "%s (%s, %s)\n", c.Name, c.City, c.Country)
	}
	r.p.Fprintf(r.w, "employees: %d\n", s.Count)
	r.p.Fprintf(r.w, "average salary: %.0f (%.2f)\n", s.AverageSalary, s.AverageSalaryPrecise)
	r.p.Fprintf(r.w, "salary range: %.0f - %.0f\n", s.MinSalary, s.MaxSalary)

	r.table(func(tw io.Writer) {
		r.p.Fprintf(tw, "\nDEPARTMENT\tCOUNT\tSHARE\n")
		for _, dept := range sortedKeys(s.CountsByDepartment) {
			r.p.Fprintf(tw, "%s\t%d\t%.1f%%\n", dept, s.CountsByDepartment[dept], s.PercentByDepartment[dept])
		}
	})
	r.table(func(tw io.Writer) {
		r.p.Fprintf(tw, "\nSTATUS\tCOUNT\tSHARE\n")
		for _, st := range employee.Statuses() {
			if n, ok := s.CountsByStatus[st]; ok {
				r.p.Fprintf(tw, "%s\t%d\t%.1f%%\n", st, n, s.PercentByStatus[st])
			}
		}
	})
}

func (r *report) employees(list []employee.Employee) {
	r.table(func(tw io.Writer) {
		r.p.Fprintf(tw, "ID\tNAME\tDEPARTMENT\tSTATUS\tSALARY\tCOMPANY\n")
		for _, e := range list {
			r.p.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n", e.ID, e.FullName(), e.Department, e.Status, e.Salary, e.CompanyID)
		}
	})
}

func (r *report) companies(list []company.Company) {
	r.table(func(tw io.Writer) {
		r.p.Fprintf(tw, "ID\tNAME\tCITY\tCOUNTRY\tEMPLOYEES\n")
		for _, c := range list {
			r.p.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Name, c.City, c.Country, c.TotalEmployees)
		}
	})
}

func (r *report) locations(list []location.Location) {
	r.table(func(tw io.Writer) {
		r.p.Fprintf(tw, "ID\tNAME\tKIND\tACTIVE\tCITY\tCOUNTRY\tLAT\tLNG\n")
		for _, l := range list {
			r.p.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\t%s\t%.4f\t%.4f\n", l.ID, l.Name, l.Kind, l.Active, l.City, l.Country, l.Latitude, l.Longitude)
		}
	})
}

func (r *report) places() {
	r.table(func(tw io.Writer) {
		r.p.Fprintf(tw, "PLACE\tNAME\tLAT\tLNG\tZOOM\n")
		for _, key := range geo.Places() {
			c, _ := geo.Lookup(key)
			r.p.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%d\n", key, c.DisplayName, c.Latitude, c.Longitude, c.DefaultZoom)
		}
	})
}

func (r *report) averages(byDept map[string]float64) {
	r.table(func(tw io.Writer) {
		r.p.Fprintf(tw, "DEPARTMENT\tAVERAGE\n")
		for _, dept := range sortedKeys(byDept) {
			r.p.Fprintf(tw, "%s\t%.0f\n", dept, byDept[dept])
		}
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
