package services

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"go.uber.org/zap"
)

// Presigner issues direct upload URLs. *aws.S3Presigner satisfies it.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (*aws_pkg.PresignedUpload, error)
}

// UploadService hands out presigned upload URLs for print documents and product images.
type UploadService interface {
	PresignPrintDocument(ctx context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error)
	PresignProductImage(ctx context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error)
}

const mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var printDocumentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	mimeDocx:             ".docx",
	"image/png":          ".png",
	"image/jpeg":         ".jpg",
}

var productImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type uploadServiceImpl struct {
	presigner Presigner
	expiry    time.Duration
	logger    *zap.Logger
}

// NewUploadService creates an UploadService. A nil presigner means uploads are not configured.
func NewUploadService(presigner Presigner, expiry time.Duration, logger *zap.Logger) UploadService {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &uploadServiceImpl{presigner: presigner, expiry: expiry, logger: logger}
}

func (s *uploadServiceImpl) PresignPrintDocument(ctx context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error) {
	if _, err := principalUserID(p); err != nil {
		return nil, err
	}
	return s.presign(ctx, "print-documents/"+p.ID, printDocumentTypes, req)
}

func (s *uploadServiceImpl) PresignProductImage(ctx context.Context, _ auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error) {
	return s.presign(ctx, "products", productImageTypes, req)
}

func (s *uploadServiceImpl) presign(ctx context.Context, prefix string, allowed map[string]string, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error) {
	if s.presigner == nil {
		return nil, apperrors.ServiceUnavailable("File uploads are not configured")
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	defaultExt, ok := allowed[contentType]
	if !ok {
		return nil, apperrors.InvalidRequest("Unsupported file type")
	}
	ext := strings.ToLower(path.Ext(req.FileName))
	if ext == "" || len(ext) > 6 {
		ext = defaultExt
	}

	key := prefix + "/" + uuid.NewString() + ext
	upload, err := s.presigner.PresignPut(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, apperrors.ServerError("Failed to generate upload URL", err)
	}
	s.logger.Debug("Upload presigned", zap.String("key", key), zap.String("content_type", contentType))
	return upload, nil
}
