package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/controllers"
	"github.com/saikrishna7004/campus-360-backend/models"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRouter(p auth.Principal, carts *mockCartService, uploads *mockUploadService) *gin.Engine {
	r := setupRouter(p)
	cc := controllers.NewCartController(carts, uploads)
	r.POST("/cart/sync", cc.SyncCart)
	r.GET("/cart/latest", cc.LatestCart)
	r.POST("/cart/documents/presign", cc.PresignDocument)
	return r
}

func TestCartController_Sync(t *testing.T) {
	var groups []models.CartGroup
	carts := &mockCartService{
		syncFn: func(_ context.Context, _ auth.Principal, req *models.SyncCartRequest) error {
			var err error
			groups, err = req.Groups()
			if err != nil {
				return apperrors.InvalidRequest("Invalid cart format")
			}
			return nil
		},
	}
	r := setupCartRouter(studentPrincipal(), carts, &mockUploadService{})

	w := performRequest(r, http.MethodPost, "/cart/sync",
		`{"carts":[{"vendor":"canteen","items":[{"_id":"p1","name":"Tea","price":10,"quantity":2}]}],"documents":[]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeJSON(t, w)["success"])
	require.Len(t, groups, 1)

	w = performRequest(r, http.MethodPost, "/cart/sync", `{"carts":{"vendor":"canteen"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid cart format", decodeJSON(t, w)["message"])
}

func TestCartController_Latest(t *testing.T) {
	carts := &mockCartService{
		latestFn: func(context.Context, auth.Principal) (*models.LatestCart, error) {
			return &models.LatestCart{Cart: models.LatestCartItems{Items: []models.CartItem{}}, Documents: []models.CartDocument{}}, nil
		},
	}
	r := setupCartRouter(studentPrincipal(), carts, &mockUploadService{})

	w := performRequest(r, http.MethodGet, "/cart/latest", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cart":{"items":[]},"documents":[]}`, w.Body.String())
}

func TestCartController_PresignDocument(t *testing.T) {
	uploads := &mockUploadService{
		documentFn: func(_ context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error) {
			return &aws_pkg.PresignedUpload{
				URL:       "https://bucket.s3.amazonaws.com/print-documents/" + p.ID + "/x.pdf?sig",
				Method:    http.MethodPut,
				Key:       "print-documents/" + p.ID + "/x.pdf",
				ExpiresIn: 900,
			}, nil
		},
	}
	r := setupCartRouter(studentPrincipal(), &mockCartService{}, uploads)

	w := performRequest(r, http.MethodPost, "/cart/documents/presign", `{"fileName":"notes.pdf","contentType":"application/pdf"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "print-documents/"+testUserID+"/x.pdf", body["key"])
	assert.Equal(t, "PUT", body["method"])

	w = performRequest(r, http.MethodPost, "/cart/documents/presign", `{"fileName":"notes.pdf"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_PresignDocument_Unconfigured(t *testing.T) {
	uploads := &mockUploadService{
		documentFn: func(context.Context, auth.Principal, *models.PresignRequest) (*aws_pkg.PresignedUpload, error) {
			return nil, apperrors.ServiceUnavailable("Uploads are not configured")
		},
	}
	r := setupCartRouter(studentPrincipal(), &mockCartService{}, uploads)

	w := performRequest(r, http.MethodPost, "/cart/documents/presign", `{"fileName":"notes.pdf","contentType":"application/pdf"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
