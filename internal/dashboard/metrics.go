// Package dashboard computes the operational indicators shown on the home
// screen and the plain-text summary handed to the AI advisor.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"logmed-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	weekdayLabels = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}
	monthLabels   = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
)

const (
	topDriversLimit     = 5
	recentFreightsLimit = 5
)

// Point is a labelled chart value
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DriverPerformance struct {
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Freights int     `json:"freights"`
}

type Metrics struct {
	TotalDrivers       int                    `json:"total_drivers"`
	ActiveDrivers      int                    `json:"active_drivers"`
	TotalFreights      int                    `json:"total_freights"`
	MonthlyRevenue     float64                `json:"monthly_revenue"`
	LastMonthRevenue   float64                `json:"last_month_revenue"`
	GrowthRate         float64                `json:"growth_rate"`
	ActiveRoutes       int                    `json:"active_routes"`
	AvgFreightValue    float64                `json:"avg_freight_value"`
	TotalKm            float64                `json:"total_km"`
	RevenuePerKm       float64                `json:"revenue_per_km"`
	OccupationRate     float64                `json:"occupation_rate"`
	TopDrivers         []DriverPerformance    `json:"top_drivers"`
	StatusDistribution []Point                `json:"status_distribution"`
	Last7Days          []Point                `json:"last_7_days"`
	Last6Months        []Point                `json:"last_6_months"`
	RecentFreights     []models.FreightDetail `json:"recent_freights"`
}

// Input is the raw data the dashboard is built from. Freights should cover
// at least the six months ending at Now.
type Input struct {
	Drivers      []models.Driver
	Freights     []models.FreightDetail
	ActiveRoutes int
	Now          time.Time
}

// Compute builds every indicator from the input. Freights are bucketed by
// their freight date.
func Compute(in Input) Metrics {
	now := in.Now
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	m := Metrics{
		TotalDrivers:       len(in.Drivers),
		ActiveRoutes:       in.ActiveRoutes,
		TopDrivers:         []DriverPerformance{},
		StatusDistribution: []Point{},
		RecentFreights:     []models.FreightDetail{},
	}
	for _, d := range in.Drivers {
		if d.Status == models.DriverStatusActive {
			m.ActiveDrivers++
		}
	}

	revenue, lastRevenue, km := decimal.Zero, decimal.Zero, decimal.Zero
	perDriver := map[string]*DriverPerformance{}
	statusCount := map[string]int{}
	var thisMonth []models.FreightDetail

	for _, f := range in.Freights {
		day := f.FreightDate.Time
		value := decimal.NewFromFloat(f.Value)
		switch {
		case !day.Before(monthStart):
			thisMonth = append(thisMonth, f)
			revenue = revenue.Add(value)
			km = km.Add(decimal.NewFromFloat(f.KmDriven()))

			name := f.DriverName
			if name == "" {
				name = "Desconhecido"
			}
			p, ok := perDriver[name]
			if !ok {
				p = &DriverPerformance{Name: name}
				perDriver[name] = p
			}
			p.Revenue += f.Value
			p.Freights++

			status := string(f.Status)
			if status == "" {
				status = "Pendente"
			}
			statusCount[status]++
		case !day.Before(lastMonthStart):
			lastRevenue = lastRevenue.Add(value)
		}
	}

	m.TotalFreights = len(thisMonth)
	m.MonthlyRevenue = revenue.Round(2).InexactFloat64()
	m.LastMonthRevenue = lastRevenue.Round(2).InexactFloat64()
	if lastRevenue.IsPositive() {
		m.GrowthRate = revenue.Sub(lastRevenue).Div(lastRevenue).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}
	if m.TotalFreights > 0 {
		m.AvgFreightValue = revenue.Div(decimal.NewFromInt(int64(m.TotalFreights))).Round(2).InexactFloat64()
	}
	m.TotalKm = km.InexactFloat64()
	if km.IsPositive() {
		m.RevenuePerKm = revenue.Div(km).Round(2).InexactFloat64()
	}
	if m.TotalDrivers > 0 {
		m.OccupationRate = float64(m.TotalFreights) / float64(m.TotalDrivers)
	}

	for _, p := range perDriver {
		p.Revenue = decimal.NewFromFloat(p.Revenue).Round(2).InexactFloat64()
		m.TopDrivers = append(m.TopDrivers, *p)
	}
	sort.Slice(m.TopDrivers, func(i, j int) bool {
		if m.TopDrivers[i].Revenue != m.TopDrivers[j].Revenue {
			return m.TopDrivers[i].Revenue > m.TopDrivers[j].Revenue
		}
		return m.TopDrivers[i].Name < m.TopDrivers[j].Name
	})
	if len(m.TopDrivers) > topDriversLimit {
		m.TopDrivers = m.TopDrivers[:topDriversLimit]
	}

	statuses := make([]string, 0, len(statusCount))
	for s := range statusCount {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		m.StatusDistribution = append(m.StatusDistribution, Point{Name: s, Value: float64(statusCount[s])})
	}

	m.Last7Days = lastDays(in.Freights, now, 7)
	m.Last6Months = lastMonths(in.Freights, monthStart, 6)

	recent := append([]models.FreightDetail(nil), in.Freights...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt > recent[j].CreatedAt })
	if len(recent) > recentFreightsLimit {
		recent = recent[:recentFreightsLimit]
	}
	m.RecentFreights = append(m.RecentFreights, recent...)

	return m
}

func lastDays(freights []models.FreightDetail, now time.Time, n int) []Point {
	today := models.NewDate(now)
	points := make([]Point, n)
	index := map[string]int{}
	for i := 0; i < n; i++ {
		d := today.AddDate(0, 0, i-n+1)
		points[i].Name = weekdayLabels[d.Weekday()]
		index[d.Format(models.DateLayout)] = i
	}
	sums := make([]decimal.Decimal, n)
	for _, f := range freights {
		if i, ok := index[f.FreightDate.String()]; ok {
			sums[i] = sums[i].Add(decimal.NewFromFloat(f.Value))
		}
	}
	for i := range points {
		points[i].Value = sums[i].Round(2).InexactFloat64()
	}
	return points
}

func lastMonths(freights []models.FreightDetail, monthStart time.Time, n int) []Point {
	points := make([]Point, n)
	index := map[string]int{}
	for i := 0; i < n; i++ {
		m := monthStart.AddDate(0, i-n+1, 0)
		points[i].Name = monthLabels[m.Month()-1]
		index[m.Format("2006-01")] = i
	}
	sums := make([]decimal.Decimal, n)
	for _, f := range freights {
		if f.FreightDate.IsZero() {
			continue
		}
		if i, ok := index[f.FreightDate.Format("2006-01")]; ok {
			sums[i] = sums[i].Add(decimal.NewFromFloat(f.Value))
		}
	}
	for i := range points {
		points[i].Value = sums[i].Round(2).InexactFloat64()
	}
	return points
}

// Summary is the operational digest sent to the advisor.
func Summary(m Metrics) string {
	return fmt.Sprintf(
		"%d motoristas cadastrados, %d disponíveis, %d fretes no mês, faturamento mensal de R$ %.2f, crescimento de %.1f%% vs mês anterior.",
		m.TotalDrivers, m.ActiveDrivers, m.TotalFreights, m.MonthlyRevenue, m.GrowthRate,
	)
}

// HistoryStart returns the earliest freight date Compute reads at now.
func HistoryStart(now time.Time) models.Date {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := monthStart.AddDate(0, -5, 0)
	if week := models.NewDate(now).AddDate(0, 0, -6); week.Before(start) {
		start = week
	}
	return models.NewDate(start)
}
