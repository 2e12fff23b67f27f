package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

// OfficeController handles administrative office requests (bonafide, transcripts, ...).
type OfficeController struct {
	officeService services.OfficeService
}

func NewOfficeController(officeService services.OfficeService) *OfficeController {
	return &OfficeController{officeService: officeService}
}

// CreateRequest handles POST /office/requests.
func (oc *OfficeController) CreateRequest(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req models.CreateOfficeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	created, err := oc.officeService.Create(ctx.Request.Context(), p, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListMine handles GET /office/requests.
func (oc *OfficeController) ListMine(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	requests, err := oc.officeService.ListMine(ctx.Request.Context(), p)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// UpdateStatus handles PATCH /office/requests/:id (admin only).
func (oc *OfficeController) UpdateStatus(ctx *gin.Context) {
	var req models.UpdateOfficeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := oc.officeService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}
