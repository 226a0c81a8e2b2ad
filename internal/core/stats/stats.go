// Package stats は社員一覧から統計値を算出します。入力を変更せず、状態も保持しません。
package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
)

// Summary は社員一覧の集計結果です。
type Summary struct {
	Count                int                         `json:"count"`
	AverageSalary        float64                     `json:"averageSalary"`
	AverageSalaryPrecise float64                     `json:"averageSalaryPrecise"`
	MaxSalary            float64                     `json:"maxSalary"`
	MinSalary            float64                     `json:"minSalary"`
	CountsByDepartment   map[string]int              `json:"countsByDepartment"`
	PercentByDepartment  map[string]float64          `json:"percentByDepartment"`
	CountsByStatus       map[employee.Status]int     `json:"countsByStatus"`
	PercentByStatus      map[employee.Status]float64 `json:"percentByStatus"`
}

// Summarize は件数、給与の平均・最大・最小、部署別と状態別の内訳を算出します。
// 平均は四捨五入 (0.5 は 0 から遠い方向) した整数と、小数第 2 位までの値の両方を返します。
// 空の入力ではすべて 0 と空の内訳になります。
func Summarize(employees []employee.Employee) Summary {
	s := Summary{
		Count:               len(employees),
		CountsByDepartment:  make(map[string]int),
		PercentByDepartment: make(map[string]float64),
		CountsByStatus:      make(map[employee.Status]int),
		PercentByStatus:     make(map[employee.Status]float64),
	}
	if s.Count == 0 {
		return s
	}

	total := decimal.Zero
	s.MaxSalary = employees[0].Salary
	s.MinSalary = employees[0].Salary
	for _, e := range employees {
		total = total.Add(decimal.NewFromFloat(e.Salary))
		s.MaxSalary = max(s.MaxSalary, e.Salary)
		s.MinSalary = min(s.MinSalary, e.Salary)
		s.CountsByDepartment[e.Department]++
		s.CountsByStatus[e.Status]++
	}

	avg := total.Div(decimal.NewFromInt(int64(s.Count)))
	s.AverageSalary = avg.Round(0).InexactFloat64()
	s.AverageSalaryPrecise = avg.Round(2).InexactFloat64()

	for dept, n := range s.CountsByDepartment {
		s.PercentByDepartment[dept] = Percent(n, s.Count)
	}
	for status, n := range s.CountsByStatus {
		s.PercentByStatus[status] = Percent(n, s.Count)
	}
	return s
}

// Percent は part / total * 100 を丸めずに返します。total が 0 の場合は 0 です。
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Round は v を places 桁に丸めます。0.5 は 0 から遠い方向に丸めます。
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// AverageByDepartment は部署ごとの平均給与を整数に丸めて返します。
func AverageByDepartment(employees []employee.Employee) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, e := range employees {
		sums[e.Department] = sums[e.Department].Add(decimal.NewFromFloat(e.Salary))
		counts[e.Department]++
	}

	out := make(map[string]float64, len(sums))
	for dept, sum := range sums {
		out[dept] = sum.Div(decimal.NewFromInt(counts[dept])).Round(0).InexactFloat64()
	}
	return out
}

// Departments は重複を除いた部署名を昇順で返します。
func Departments(employees []employee.Employee) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range employees {
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		out = append(out, e.Department)
	}
	sort.Strings(out)
	return out
}
