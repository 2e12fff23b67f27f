package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

// OrderController handles HTTP requests for the order lifecycle.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /orders.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req models.CreateOrderRequest
	if !bindJSON(ctx, &req) {
		return
	}

	order, err := oc.orderService.CreateOrder(ctx.Request.Context(), p, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"orderId": order.OrderID,
		"order":   order,
	})
}

// ListOrders handles GET /orders.
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	q, err := listQuery(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	orders, err := oc.orderService.ListOwn(ctx.Request.Context(), p, q)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// History handles GET /orders/history.
func (oc *OrderController) History(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	q, err := historyQuery(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	history, err := oc.orderService.OwnerHistory(ctx.Request.Context(), p, q)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// ActiveQueue handles GET /orders/admin.
func (oc *OrderController) ActiveQueue(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	q, err := listQuery(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	orders, err := oc.orderService.ActiveQueue(ctx.Request.Context(), p, q)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PATCH /orders/:id/status.
func (oc *OrderController) UpdateStatus(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req models.UpdateStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	order, err := oc.orderService.UpdateStatus(ctx.Request.Context(), p, ctx.Param("id"), req.Status)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
		"order":   order,
	})
}

// GetOrder handles GET /orders/:id.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	order, err := oc.orderService.GetOrder(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}
