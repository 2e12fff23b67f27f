package services

import (
	"context"
	"strings"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/common/logger"
	"github.com/saikrishna7004/campus-360-backend/models"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.uber.org/zap"
)

// VendorService manages outlet availability.
type VendorService interface {
	GetStatus(ctx context.Context, vendorType string) (*models.Vendor, error)
	SetStatus(ctx context.Context, p auth.Principal, req *models.VendorStatusRequest) (*models.Vendor, error)
}

type vendorServiceImpl struct {
	vendors repository.VendorRepository
	metrics MetricsRecorder
	logger  *zap.Logger
}

func NewVendorService(vendors repository.VendorRepository, metrics MetricsRecorder, logger *zap.Logger) VendorService {
	return &vendorServiceImpl{vendors: vendors, metrics: metrics, logger: logger}
}

// GetStatus returns the outlet record, creating it offline on first access.
func (s *vendorServiceImpl) GetStatus(ctx context.Context, vendorType string) (*models.Vendor, error) {
	vt := models.VendorType(strings.TrimSpace(vendorType))
	if !vt.Outlet() {
		return nil, apperrors.InvalidRequest("Invalid vendor type")
	}
	vendor, err := s.vendors.FindOrCreate(ctx, vt)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch vendor status", err)
	}
	return vendor, nil
}

// SetStatus toggles an outlet. Non-admin callers may only toggle their own outlet; when the
// request names no outlet, the caller's own is used.
func (s *vendorServiceImpl) SetStatus(ctx context.Context, p auth.Principal, req *models.VendorStatusRequest) (*models.Vendor, error) {
	scope, err := Authorize(p, CapVendorConsole)
	if err != nil {
		return nil, err
	}
	if req.IsOnline == nil {
		return nil, apperrors.InvalidRequest("isOnline is required")
	}

	vt := models.VendorType(strings.TrimSpace(req.VendorType))
	if vt == "" && !scope.All {
		vt = scope.Vendor
	}
	if !vt.Outlet() {
		return nil, apperrors.InvalidRequest("Invalid vendor type")
	}
	if !scope.Allows(vt) {
		return nil, apperrors.Forbidden("Not authorized to update this vendor")
	}

	vendor, err := s.vendors.SetAvailability(ctx, vt, *req.IsOnline)
	if err != nil {
		return nil, apperrors.ServerError("Failed to update vendor status", err)
	}

	logger.Info(ctx, s.logger, "Vendor status updated",
		zap.String("vendor", string(vt)), zap.Bool("available", vendor.IsAvailable), zap.String("by", p.ID))
	recordCount(s.metrics, s.logger, aws_pkg.MetricVendorStatusToggled, map[string]string{"Vendor": string(vt)})
	return vendor, nil
}
