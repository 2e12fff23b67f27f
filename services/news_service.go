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

// NewsService manages news items. At most one item is the banner.
type NewsService interface {
	List(ctx context.Context) ([]models.News, error)
	Get(ctx context.Context, id string) (*models.News, error)
	Create(ctx context.Context, req *models.NewsRequest) (*models.News, error)
	Update(ctx context.Context, id string, req *models.NewsRequest) (*models.News, error)
	Delete(ctx context.Context, id string) error
}

type newsServiceImpl struct {
	news   repository.NewsRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewNewsService(news repository.NewsRepository, logger *zap.Logger) NewsService {
	return &newsServiceImpl{news: news, now: time.Now, logger: logger}
}

func (s *newsServiceImpl) List(ctx context.Context) ([]models.News, error) {
	items, err := s.news.FindActive(ctx)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch news", err)
	}
	return items, nil
}

func (s *newsServiceImpl) Get(ctx context.Context, id string) (*models.News, error) {
	oid, err := parseObjectID(id, "news")
	if err != nil {
		return nil, err
	}
	item, err := s.news.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "News not found", "Failed to fetch news")
	}
	return item, nil
}

func (s *newsServiceImpl) Create(ctx context.Context, req *models.NewsRequest) (*models.News, error) {
	now := s.now().UTC()
	item := &models.News{IsActive: true, CreatedAt: now}
	applyNewsRequest(item, req, now)

	if err := s.news.Create(ctx, item); err != nil {
		return nil, apperrors.ServerError("Failed to create news", err)
	}
	if err := s.clearOtherBanners(ctx, item, now); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *newsServiceImpl) Update(ctx context.Context, id string, req *models.NewsRequest) (*models.News, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	applyNewsRequest(item, req, now)

	if err := s.news.Replace(ctx, item); err != nil {
		return nil, notFoundOr(err, "News not found", "Failed to update news")
	}
	if err := s.clearOtherBanners(ctx, item, now); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *newsServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "news")
	if err != nil {
		return err
	}
	if err := s.news.Delete(ctx, oid); err != nil {
		return notFoundOr(err, "News not found", "Failed to delete news")
	}
	return nil
}

func (s *newsServiceImpl) clearOtherBanners(ctx context.Context, item *models.News, now time.Time) error {
	if !item.IsBanner {
		return nil
	}
	if err := s.news.ClearBanners(ctx, item.ID, now); err != nil {
		return apperrors.ServerError("Failed to update banner", err)
	}
	s.logger.Info("Banner replaced", zap.String("news_id", item.ID.Hex()))
	return nil
}

func applyNewsRequest(n *models.News, req *models.NewsRequest, now time.Time) {
	n.Title = strings.TrimSpace(req.Title)
	n.Content = req.Content
	n.Image = req.Image
	n.IsBanner = req.IsBanner
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}
	n.UpdatedAt = now
}
