package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

// VendorController serves the vendor console: availability, queue, history and dashboard.
type VendorController struct {
	vendorService    services.VendorService
	orderService     services.OrderService
	dashboardService services.DashboardService
}

// NewVendorController creates a new VendorController.
func NewVendorController(vendorService services.VendorService, orderService services.OrderService, dashboardService services.DashboardService) *VendorController {
	return &VendorController{
		vendorService:    vendorService,
		orderService:     orderService,
		dashboardService: dashboardService,
	}
}

// Dashboard handles GET /vendor/dashboard?period=&timeRef=.
func (vc *VendorController) Dashboard(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var ref time.Time
	if raw := strings.TrimSpace(ctx.Query("timeRef")); raw != "" {
		t, _, ok := parseInstant(raw)
		if !ok {
			_ = ctx.Error(apperrors.InvalidRequest("Invalid timeRef"))
			return
		}
		ref = t
	}
	period := models.Period(ctx.DefaultQuery("period", string(models.PeriodDaily)))

	dashboard, err := vc.dashboardService.Dashboard(ctx.Request.Context(), p, period, ref)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// SetStatus handles POST /vendor/status.
func (vc *VendorController) SetStatus(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req models.VendorStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	vendor, err := vc.vendorService.SetStatus(ctx.Request.Context(), p, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Vendor status updated", "isAvailable": vendor.IsAvailable})
}

// GetStatus handles GET /vendor/status/:vendorType. The route is public.
func (vc *VendorController) GetStatus(ctx *gin.Context) {
	vendor, err := vc.vendorService.GetStatus(ctx.Request.Context(), ctx.Param("vendorType"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Status fetched successfully",
		"isAvailable": vendor.IsAvailable,
		"vendorType":  vendor.Type,
	})
}

// Queue handles GET /vendor/orders.
func (vc *VendorController) Queue(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	q, err := listQuery(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	orders, err := vc.orderService.VendorQueue(ctx.Request.Context(), p, q)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// History handles GET /vendor/history.
func (vc *VendorController) History(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	q, err := historyQuery(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	history, err := vc.orderService.VendorHistory(ctx.Request.Context(), p, q)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}
