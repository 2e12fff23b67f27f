package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.uber.org/zap"
)

// CatalogService serves outlet product listings and product maintenance.
type CatalogService interface {
	ListByType(ctx context.Context, productType string) (*models.CatalogResponse, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type catalogServiceImpl struct {
	products repository.ProductRepository
	vendors  repository.VendorRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewCatalogService(products repository.ProductRepository, vendors repository.VendorRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{products: products, vendors: vendors, now: time.Now, logger: logger}
}

// ListByType returns an outlet's products, or an unavailable notice while the outlet is offline.
func (s *catalogServiceImpl) ListByType(ctx context.Context, productType string) (*models.CatalogResponse, error) {
	vt := models.VendorType(strings.TrimSpace(productType))
	if !vt.Outlet() {
		return nil, apperrors.InvalidRequest("Invalid vendor type")
	}

	vendor, err := s.vendors.FindOrCreate(ctx, vt)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch products", err)
	}
	if !vendor.IsAvailable {
		return &models.CatalogResponse{IsAvailable: false, Message: "Vendor not available"}, nil
	}

	products, err := s.products.FindByType(ctx, models.ProductType(vt))
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch products", err)
	}
	return &models.CatalogResponse{IsAvailable: true, Products: products}, nil
}

func (s *catalogServiceImpl) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseObjectID(id, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "Product not found", "Failed to fetch product")
	}
	return product, nil
}

func (s *catalogServiceImpl) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	if !models.ProductType(req.Type).Valid() {
		return nil, apperrors.InvalidRequest("Invalid product type")
	}
	now := s.now().UTC()
	product := &models.Product{CreatedAt: now}
	applyProductRequest(product, req, now)

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.ServerError("Failed to create product", err)
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID.Hex()), zap.String("type", string(product.Type)))
	return product, nil
}

func (s *catalogServiceImpl) Update(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error) {
	if !models.ProductType(req.Type).Valid() {
		return nil, apperrors.InvalidRequest("Invalid product type")
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProductRequest(product, req, s.now().UTC())

	if err := s.products.Replace(ctx, product); err != nil {
		return nil, notFoundOr(err, "Product not found", "Failed to update product")
	}
	return product, nil
}

func (s *catalogServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "product")
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return notFoundOr(err, "Product not found", "Failed to delete product")
	}
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// applyProductRequest copies request fields onto p. Unset flags default to true on create
// and keep their stored value on update.
func applyProductRequest(p *models.Product, req *models.ProductRequest, now time.Time) {
	creating := p.ID.IsZero()
	p.Name = strings.TrimSpace(req.Name)
	p.Price = req.Price
	p.Description = req.Description
	p.Category = strings.TrimSpace(req.Category)
	p.ImageURL = req.ImageURL
	p.Type = models.ProductType(req.Type)
	switch {
	case req.InStock != nil:
		p.InStock = *req.InStock
	case creating:
		p.InStock = true
	}
	switch {
	case req.IsAvailable != nil:
		p.IsAvailable = *req.IsAvailable
	case creating:
		p.IsAvailable = true
	}
	p.UpdatedAt = now
}
