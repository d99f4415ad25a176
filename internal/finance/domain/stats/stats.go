// Package stats содержит чистые функции агрегации расходов.
//
// Все функции принимают срез записей и необязательный диапазон дат, не изменяют
// входные данные и не обращаются к хранилищу. Для пустого набора возвращаются
// нулевая сумма и пустые (не nil) срезы.
package stats

import (
	"cmp"
	"math"
	"slices"

	"fintrack/internal/finance/domain/entities"
)

// DayLayout - формат даты в дневной статистике.
const DayLayout = "2006-01-02"

// CategoryTotal - сумма по категории.
type CategoryTotal struct {
	Category entities.ExpenseCategory `json:"category"`
	Total    float64                  `json:"total"`
}

// DailyStat - сумма и количество записей за календарный день.
type DailyStat struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// MonthlyStat - сумма и количество записей за месяц.
type MonthlyStat struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// CategoryStat - статистика категории с долей от общей суммы в процентах.
type CategoryStat struct {
	Category   entities.ExpenseCategory `json:"category"`
	Total      float64                  `json:"total"`
	Count      int                      `json:"count"`
	Average    float64                  `json:"avg"`
	Percentage int                      `json:"percentage"`
}

// Total возвращает сумму amount по записям диапазона.
func Total(records []entities.Expense, r entities.DateRange) float64 {
	var total float64
	for _, rec := range records {
		if r.Contains(rec.Date) {
			total += rec.Amount
		}
	}
	return total
}

// ByCategory группирует суммы по категориям. Порядок: по убыванию суммы,
// при равенстве - по имени категории.
func ByCategory(records []entities.Expense, r entities.DateRange) []CategoryTotal {
	groups := groupByCategory(records, r)

	out := make([]CategoryTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, CategoryTotal{Category: g.category, Total: g.total})
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return byTotalDesc(a.Category, a.Total, b.Category, b.Total)
	})
	return out
}

// Daily группирует записи по календарной дате в часовом поясе сохраненной отметки времени.
func Daily(records []entities.Expense, r entities.DateRange) []DailyStat {
	index := make(map[string]int)
	out := make([]DailyStat, 0)
	for _, rec := range records {
		if !r.Contains(rec.Date) {
			continue
		}
		key := rec.Date.Format(DayLayout)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DailyStat{Date: key})
		}
		out[i].Total += rec.Amount
		out[i].Count++
	}
	slices.SortFunc(out, func(a, b DailyStat) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return out
}

// Monthly группирует записи по паре (год, месяц).
func Monthly(records []entities.Expense, r entities.DateRange) []MonthlyStat {
	type monthKey struct{ year, month int }

	index := make(map[monthKey]int)
	out := make([]MonthlyStat, 0)
	for _, rec := range records {
		if !r.Contains(rec.Date) {
			continue
		}
		key := monthKey{rec.Date.Year(), int(rec.Date.Month())}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, MonthlyStat{Year: key.year, Month: key.month})
		}
		out[i].Total += rec.Amount
		out[i].Count++
	}
	slices.SortFunc(out, func(a, b MonthlyStat) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// Categories считает по каждой категории сумму, количество, среднее (2 знака)
// и долю в процентах. Доля считается вторым проходом, когда известна общая сумма;
// при нулевой общей сумме доля каждой категории равна 0.
func Categories(records []entities.Expense, r entities.DateRange) []CategoryStat {
	groups := groupByCategory(records, r)

	out := make([]CategoryStat, 0, len(groups))
	var grandTotal float64
	for _, g := range groups {
		out = append(out, CategoryStat{
			Category: g.category,
			Total:    g.total,
			Count:    g.count,
			Average:  Round2(g.total / float64(g.count)),
		})
		grandTotal += g.total
	}

	for i := range out {
		out[i].Percentage = Percentage(out[i].Total, grandTotal)
	}

	slices.SortStableFunc(out, func(a, b CategoryStat) int {
		return byTotalDesc(a.Category, a.Total, b.Category, b.Total)
	})
	return out
}

// Percentage возвращает round(part / whole * 100); для whole == 0 результат 0.
func Percentage(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// Round2 округляет до двух знаков после запятой.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type categoryGroup struct {
	category entities.ExpenseCategory
	total    float64
	count    int
}

func groupByCategory(records []entities.Expense, r entities.DateRange) []categoryGroup {
	index := make(map[entities.ExpenseCategory]int)
	groups := make([]categoryGroup, 0)
	for _, rec := range records {
		if !r.Contains(rec.Date) {
			continue
		}
		i, ok := index[rec.Category]
		if !ok {
			i = len(groups)
			index[rec.Category] = i
			groups = append(groups, categoryGroup{category: rec.Category})
		}
		groups[i].total += rec.Amount
		groups[i].count++
	}
	return groups
}

func byTotalDesc(aCat entities.ExpenseCategory, aTotal float64, bCat entities.ExpenseCategory, bTotal float64) int {
	if c := cmp.Compare(bTotal, aTotal); c != 0 {
		return c
	}
	return cmp.Compare(aCat, bCat)
}
