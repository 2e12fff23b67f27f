package services_test

import (
	"context"
	"testing"

	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func boolPtr(b bool) *bool { return &b }

func TestVendorService_GetStatus(t *testing.T) {
	repo := newFakeVendorRepo(nil)
	svc := services.NewVendorService(repo, nil, zap.NewNop())

	v, err := svc.GetStatus(context.Background(), "canteen")
	require.NoError(t, err)
	assert.False(t, v.IsAvailable)
	assert.Contains(t, repo.vendors, models.VendorCanteen)

	_, err = svc.GetStatus(context.Background(), "default")
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))
}

func TestVendorService_SetStatus(t *testing.T) {
	repo := newFakeVendorRepo(map[models.VendorType]bool{models.VendorCanteen: false, models.VendorStationery: false})
	svc := services.NewVendorService(repo, nil, zap.NewNop())
	ctx := context.Background()

	v, err := svc.SetStatus(ctx, vendorPrincipal(models.VendorCanteen), &models.VendorStatusRequest{IsOnline: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.VendorCanteen, v.Type)
	assert.True(t, repo.vendors[models.VendorCanteen].IsAvailable)

	v, err = svc.SetStatus(ctx, canteenPrincipal("print"), &models.VendorStatusRequest{IsOnline: boolPtr(true), VendorType: "stationery"})
	require.NoError(t, err)
	assert.True(t, v.IsAvailable)

	_, err = svc.SetStatus(ctx, adminPrincipal(), &models.VendorStatusRequest{IsOnline: boolPtr(false), VendorType: "canteen"})
	require.NoError(t, err)
	assert.False(t, repo.vendors[models.VendorCanteen].IsAvailable)
}

func TestVendorService_SetStatus_Rejections(t *testing.T) {
	repo := newFakeVendorRepo(map[models.VendorType]bool{models.VendorCanteen: true})
	svc := services.NewVendorService(repo, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, vendorPrincipal(models.VendorStationery), &models.VendorStatusRequest{IsOnline: boolPtr(false), VendorType: "canteen"})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = svc.SetStatus(ctx, studentPrincipal(primitive.NewObjectID()), &models.VendorStatusRequest{IsOnline: boolPtr(false)})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = svc.SetStatus(ctx, adminPrincipal(), &models.VendorStatusRequest{IsOnline: boolPtr(false)})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))

	_, err = svc.SetStatus(ctx, adminPrincipal(), &models.VendorStatusRequest{VendorType: "canteen"})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))

	assert.True(t, repo.vendors[models.VendorCanteen].IsAvailable)

	repo.err = errBoom
	_, err = svc.SetStatus(ctx, adminPrincipal(), &models.VendorStatusRequest{IsOnline: boolPtr(false), VendorType: "canteen"})
	assert.True(t, apperrors.Is(err, apperrors.KindServerError))
}
