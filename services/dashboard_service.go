package services

import (
	"context"
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.uber.org/zap"
)

// DashboardService computes vendor analytics.
type DashboardService interface {
	Dashboard(ctx context.Context, p auth.Principal, period models.Period, ref time.Time) (*models.Dashboard, error)
}

type dashboardServiceImpl struct {
	orders   repository.OrderRepository
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewDashboardService creates a DashboardService bucketing in loc (UTC when nil).
func NewDashboardService(orders repository.OrderRepository, loc *time.Location, logger *zap.Logger) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardServiceImpl{orders: orders, location: loc, now: time.Now, logger: logger}
}

// Dashboard aggregates the window ending at ref (now when zero) and compares it with the
// preceding window of the same length. The two reads are independent.
func (s *dashboardServiceImpl) Dashboard(ctx context.Context, p auth.Principal, period models.Period, ref time.Time) (*models.Dashboard, error) {
	if period == "" {
		period = models.PeriodDaily
	}
	span, _, ok := PeriodWindow(period)
	if !ok {
		return nil, apperrors.InvalidRequest("Invalid period")
	}

	scope, err := Authorize(p, CapVendorConsole)
	if err != nil {
		return nil, err
	}

	if ref.IsZero() {
		ref = s.now()
	}
	ref = ref.UTC()
	from := ref.Add(-span)
	// ref itself is inside the window; stored times have millisecond precision.
	until := ref.Add(time.Millisecond)

	current := models.OrderFilter{CreatedFrom: &from, CreatedBefore: &until}
	scope.Apply(&current)
	orders, err := s.orders.Find(ctx, current, repository.Page{})
	if err != nil {
		return nil, apperrors.ServerError("Failed to load dashboard", err)
	}
	if len(orders) == 0 {
		return nil, apperrors.NotFound("No sales data found for the selected period")
	}

	prevFrom := from.Add(-span)
	previous := models.OrderFilter{CreatedFrom: &prevFrom, CreatedBefore: &from}
	scope.Apply(&previous)
	previousSales, err := s.orders.SumSales(ctx, previous)
	if err != nil {
		return nil, apperrors.ServerError("Failed to load dashboard", err)
	}

	dashboard := BuildDashboard(orders, period, from, ref, s.location, previousSales)
	return &dashboard, nil
}
