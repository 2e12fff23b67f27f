package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

// ProductController handles HTTP requests for the outlet catalogs.
type ProductController struct {
	catalogService services.CatalogService
	uploadService  services.UploadService
}

// NewProductController creates a new ProductController.
func NewProductController(catalogService services.CatalogService, uploadService services.UploadService) *ProductController {
	return &ProductController{catalogService: catalogService, uploadService: uploadService}
}

// ListByType handles GET /products/:type.
func (pc *ProductController) ListByType(ctx *gin.Context) {
	resp, err := pc.catalogService.ListByType(ctx.Request.Context(), ctx.Param("type"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	if !resp.IsAvailable {
		ctx.JSON(http.StatusOK, gin.H{"message": resp.Message, "isAvailable": false})
		return
	}
	products := resp.Products
	if products == nil {
		products = []models.Product{}
	}
	ctx.JSON(http.StatusOK, gin.H{"isAvailable": true, "products": products})
}

// GetProduct handles GET /products/id/:id.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	product, err := pc.catalogService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products (vendor/admin).
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(ctx, &req) {
		return
	}

	product, err := pc.catalogService.Create(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id (vendor/admin).
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(ctx, &req) {
		return
	}

	product, err := pc.catalogService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id (vendor/admin).
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	if err := pc.catalogService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// PresignImage handles POST /products/images/presign (vendor/admin).
func (pc *ProductController) PresignImage(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req models.PresignRequest
	if !bindJSON(ctx, &req) {
		return
	}

	upload, err := pc.uploadService.PresignProductImage(ctx.Request.Context(), p, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, upload)
}
