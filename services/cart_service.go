package services

import (
	"context"
	"errors"
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/common/logger"
	"github.com/saikrishna7004/campus-360-backend/models"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.uber.org/zap"
)

// CartService keeps one authoritative cart per user. A sync overwrites the stored cart
// wholesale; two devices syncing concurrently resolve as last writer wins.
type CartService interface {
	Sync(ctx context.Context, p auth.Principal, req *models.SyncCartRequest) error
	Latest(ctx context.Context, p auth.Principal) (*models.LatestCart, error)
}

type cartServiceImpl struct {
	carts   repository.CartRepository
	metrics MetricsRecorder
	now     func() time.Time
	logger  *zap.Logger
}

func NewCartService(carts repository.CartRepository, metrics MetricsRecorder, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, metrics: metrics, now: time.Now, logger: logger}
}

// FlattenCart merges vendor groups into one item list, stamping each item with its group's vendor.
func FlattenCart(groups []models.CartGroup) []models.CartItem {
	items := []models.CartItem{}
	for _, g := range groups {
		for _, it := range g.Items {
			it.Vendor = g.Vendor
			if it.Quantity <= 0 {
				it.Quantity = 1
			}
			items = append(items, it)
		}
	}
	return items
}

func (s *cartServiceImpl) Sync(ctx context.Context, p auth.Principal, req *models.SyncCartRequest) error {
	userID, err := principalUserID(p)
	if err != nil {
		return err
	}

	groups, err := req.Groups()
	if err != nil {
		return apperrors.InvalidRequest("Invalid cart format")
	}
	items := FlattenCart(groups)
	documents := req.Documents
	if documents == nil {
		documents = []models.CartDocument{}
	}

	if err := s.carts.Replace(ctx, userID, items, documents, s.now().UTC()); err != nil {
		return apperrors.ServerError("Failed to sync cart", err)
	}

	logger.Info(ctx, s.logger, "Cart synced",
		zap.String("user_id", p.ID), zap.Int("items", len(items)), zap.Int("documents", len(documents)))
	recordCount(s.metrics, s.logger, aws_pkg.MetricCartSyncs, nil)
	return nil
}

// Latest returns the stored cart, or an empty one when the user has never synced.
func (s *cartServiceImpl) Latest(ctx context.Context, p auth.Principal) (*models.LatestCart, error) {
	userID, err := principalUserID(p)
	if err != nil {
		return nil, err
	}

	latest := &models.LatestCart{
		Cart:      models.LatestCartItems{Items: []models.CartItem{}},
		Documents: []models.CartDocument{},
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return latest, nil
	}
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch cart", err)
	}

	if cart.Items != nil {
		latest.Cart.Items = cart.Items
	}
	if cart.Documents != nil {
		latest.Documents = cart.Documents
	}
	return latest, nil
}
