package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.uber.org/zap"
)

// OfficeService handles service requests raised with the campus office.
type OfficeService interface {
	Create(ctx context.Context, p auth.Principal, req *models.CreateOfficeRequest) (*models.OfficeRequest, error)
	ListMine(ctx context.Context, p auth.Principal) ([]models.OfficeRequest, error)
	UpdateStatus(ctx context.Context, id string, req *models.UpdateOfficeRequest) (*models.OfficeRequest, error)
}

type officeServiceImpl struct {
	requests repository.OfficeRequestRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewOfficeService(requests repository.OfficeRequestRepository, logger *zap.Logger) OfficeService {
	return &officeServiceImpl{requests: requests, now: time.Now, logger: logger}
}

// Create raises a request; a caller may hold one pending request per type.
func (s *officeServiceImpl) Create(ctx context.Context, p auth.Principal, req *models.CreateOfficeRequest) (*models.OfficeRequest, error) {
	requestType := strings.TrimSpace(req.Type)
	if requestType == "" {
		return nil, apperrors.InvalidRequest("Request type is required")
	}

	_, err := s.requests.FindPending(ctx, p.ID, requestType)
	if err == nil {
		return nil, apperrors.InvalidRequest("Request already exists for this type.")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ServerError("Failed to create request", err)
	}

	now := s.now().UTC()
	request := &models.OfficeRequest{
		UserID:      p.ID,
		Type:        requestType,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.OfficePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.ServerError("Failed to create request", err)
	}
	return request, nil
}

func (s *officeServiceImpl) ListMine(ctx context.Context, p auth.Principal) ([]models.OfficeRequest, error) {
	requests, err := s.requests.FindByUser(ctx, p.ID)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch requests", err)
	}
	return requests, nil
}

func (s *officeServiceImpl) UpdateStatus(ctx context.Context, id string, req *models.UpdateOfficeRequest) (*models.OfficeRequest, error) {
	oid, err := parseObjectID(id, "request")
	if err != nil {
		return nil, err
	}
	status := models.OfficeRequestStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.InvalidRequest("Invalid status")
	}

	request, err := s.requests.UpdateStatus(ctx, oid, status, s.now().UTC())
	if err != nil {
		return nil, notFoundOr(err, "Request not found", "Failed to update request")
	}
	s.logger.Info("Office request updated", zap.String("request_id", id), zap.String("status", string(status)))
	return request, nil
}
