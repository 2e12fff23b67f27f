package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

type CartController struct {
	cartService   services.CartService
	uploadService services.UploadService
}

func NewCartController(cartService services.CartService, uploadService services.UploadService) *CartController {
	return &CartController{cartService: cartService, uploadService: uploadService}
}

// SyncCart handles POST /cart/sync. The stored cart is replaced wholesale.
func (cc *CartController) SyncCart(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req models.SyncCartRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := cc.cartService.Sync(ctx.Request.Context(), p, &req); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// LatestCart handles GET /cart/latest.
func (cc *CartController) LatestCart(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	cart, err := cc.cartService.Latest(ctx.Request.Context(), p)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// PresignDocument handles POST /cart/documents/presign.
func (cc *CartController) PresignDocument(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req models.PresignRequest
	if !bindJSON(ctx, &req) {
		return
	}

	upload, err := cc.uploadService.PresignPrintDocument(ctx.Request.Context(), p, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, upload)
}
