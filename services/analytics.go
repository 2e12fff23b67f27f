package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/saikrishna7004/campus-360-backend/models"
)

const topProductsLimit = 5

// PeriodWindow returns the window length and display label of a dashboard period.
func PeriodWindow(p models.Period) (time.Duration, string, bool) {
	switch p {
	case models.PeriodDaily:
		return 24 * time.Hour, "Last 24 Hours", true
	case models.PeriodWeekly:
		return 7 * 24 * time.Hour, "Last 7 Days", true
	case models.PeriodMonthly:
		return 30 * 24 * time.Hour, "Last 30 Days", true
	}
	return 0, "", false
}

// Median returns the middle value of values, averaging the two middle values for an even count.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Growth is the percentage change from previous to current, or 0 when previous is not positive.
func Growth(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return round1((current - previous) / previous * 100)
}

// countsTowardSales reports whether an order contributes to sales figures.
func countsTowardSales(o models.Order) bool {
	return o.Status != models.StatusCancelled
}

// SummarizeOrders computes the dashboard summary. Sales figures skip cancelled orders;
// status counts include every order.
func SummarizeOrders(orders []models.Order) models.DashboardSummary {
	summary := models.DashboardSummary{
		TotalOrders: len(orders),
		StatusCounts: map[models.OrderStatus]int{
			models.StatusPreparing: 0,
			models.StatusReady:     0,
			models.StatusCompleted: 0,
			models.StatusCancelled: 0,
		},
	}

	var totals []float64
	for _, o := range orders {
		summary.StatusCounts[o.Status]++
		if countsTowardSales(o) {
			totals = append(totals, o.TotalAmount)
			summary.TotalSales += o.TotalAmount
		}
	}

	summary.TodayOrders = summary.StatusCounts[models.StatusPreparing]
	summary.CompletedOrders = summary.StatusCounts[models.StatusCompleted]
	summary.CancelledOrders = summary.StatusCounts[models.StatusCancelled]
	if len(totals) > 0 {
		summary.AvgOrderValue = round2(summary.TotalSales / float64(len(totals)))
	}
	summary.MedianOrderValue = round2(Median(totals))
	summary.TotalSales = round2(summary.TotalSales)
	return summary
}

// TopProducts ranks the line items of every in-window order by quantity, breaking ties
// by revenue then name.
func TopProducts(orders []models.Order, limit int) []models.TopProduct {
	byKey := make(map[string]*models.TopProduct)
	var order []string
	for _, o := range orders {
		for _, it := range o.Items {
			key := it.ProductID
			if key == "" {
				key = it.Name
			}
			tp, ok := byKey[key]
			if !ok {
				tp = &models.TopProduct{ProductID: it.ProductID, Name: it.Name}
				byKey[key] = tp
				order = append(order, key)
			}
			tp.Quantity += it.Quantity
			tp.Sales += it.LineTotal()
		}
	}

	ranked := make([]models.TopProduct, 0, len(order))
	for _, key := range order {
		tp := *byKey[key]
		tp.Sales = round2(tp.Sales)
		ranked = append(ranked, tp)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		if ranked[i].Sales != ranked[j].Sales {
			return ranked[i].Sales > ranked[j].Sales
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// bucketStart returns the start of the chart bucket containing t, in t's location.
func bucketStart(p models.Period, t time.Time) time.Time {
	y, m, d := t.Date()
	switch p {
	case models.PeriodDaily:
		return time.Date(y, m, d, t.Hour()/3*3, 0, 0, 0, t.Location())
	case models.PeriodMonthly:
		return time.Date(y, m, (d-1)/7*7+1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

// nextBucket returns the start of the bucket following start.
func nextBucket(p models.Period, start time.Time) time.Time {
	y, m, d := start.Date()
	switch p {
	case models.PeriodDaily:
		return time.Date(y, m, d, start.Hour()+3, 0, 0, 0, start.Location())
	case models.PeriodMonthly:
		next := time.Date(y, m, d+7, 0, 0, 0, 0, start.Location())
		if next.Month() != m {
			return time.Date(y, m+1, 1, 0, 0, 0, 0, start.Location())
		}
		return next
	default:
		return time.Date(y, m, d+1, 0, 0, 0, 0, start.Location())
	}
}

func bucketLabel(p models.Period, start time.Time) string {
	switch p {
	case models.PeriodDaily:
		return start.Format("3:04 PM")
	case models.PeriodMonthly:
		return fmt.Sprintf("Week %d", (start.Day()-1)/7+1)
	default:
		return start.Format("Mon 2")
	}
}

// SalesSeries buckets order totals over [from, to] in loc. Every bucket that
// overlaps the window is emitted, empty ones with 0, in chronological order.
func SalesSeries(orders []models.Order, p models.Period, from, to time.Time, loc *time.Location) models.ChartData {
	if loc == nil {
		loc = time.UTC
	}

	sums := make(map[int64]float64)
	for _, o := range orders {
		key := bucketStart(p, o.CreatedAt.In(loc)).Unix()
		sums[key] += o.TotalAmount
	}

	chart := models.ChartData{Labels: []string{}, Values: []float64{}}
	last := to.In(loc)
	for b := bucketStart(p, from.In(loc)); !b.After(last); b = nextBucket(p, b) {
		chart.Labels = append(chart.Labels, bucketLabel(p, b))
		chart.Values = append(chart.Values, round2(sums[b.Unix()]))
	}
	return chart
}

// BuildDashboard assembles the analytics payload for the orders loaded in [from, to].
func BuildDashboard(orders []models.Order, p models.Period, from, to time.Time, loc *time.Location, previousSales float64) models.Dashboard {
	_, label, _ := PeriodWindow(p)
	summary := SummarizeOrders(orders)
	return models.Dashboard{
		Period:           p,
		PeriodLabel:      label,
		ChartData:        SalesSeries(orders, p, from, to, loc),
		DashboardSummary: summary,
		TopProducts:      TopProducts(orders, topProductsLimit),
		Growth:           Growth(summary.TotalSales, previousSales),
	}
}
