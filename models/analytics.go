package models

// Period selects the dashboard window.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type DashboardSummary struct {
	TotalSales       float64             `json:"totalSales"`
	AvgOrderValue    float64             `json:"avgOrderValue"`
	MedianOrderValue float64             `json:"medianOrderValue"`
	TotalOrders      int                 `json:"totalOrders"`
	TodayOrders      int                 `json:"todayOrders"`
	CompletedOrders  int                 `json:"completedOrders"`
	CancelledOrders  int                 `json:"cancelledOrders"`
	StatusCounts     map[OrderStatus]int `json:"statusCounts"`
}

type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Sales     float64 `json:"sales"`
}

// Dashboard is the vendor analytics payload. The summary figures are inlined at the
// top level of the JSON document.
type Dashboard struct {
	Period      Period    `json:"period"`
	PeriodLabel string    `json:"periodLabel"`
	ChartData   ChartData `json:"chartData"`
	DashboardSummary
	TopProducts []TopProduct `json:"topProducts"`
	Growth      float64      `json:"growth"`
}
