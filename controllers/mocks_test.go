package controllers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/controllers"
	"github.com/saikrishna7004/campus-360-backend/middleware"
	"github.com/saikrishna7004/campus-360-backend/models"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"github.com/saikrishna7004/campus-360-backend/services"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := controllers.RegisterValidators(); err != nil {
		panic(err)
	}
}

// --- Helpers ---

const testUserID = "665f1c2e9b1e8a3d4c5b6a70"

func studentPrincipal() auth.Principal {
	return auth.Principal{ID: testUserID, Role: auth.RoleStudent, Name: "Asha"}
}

func canteenPrincipal() auth.Principal {
	return auth.Principal{ID: testUserID, Role: auth.RoleCanteen, Name: "Ravi", Type: "food"}
}

// setupRouter returns an engine that attaches p (when non-empty) and renders errors like production.
func setupRouter(p auth.Principal) *gin.Engine {
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware(zap.NewNop()))
	r.Use(func(c *gin.Context) {
		if p.ID != "" {
			c.Set(middleware.PrincipalKey, p)
		}
		c.Next()
	})
	return r
}

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Mock OrderService ---

type mockOrderService struct {
	createFn        func(ctx context.Context, p auth.Principal, req *models.CreateOrderRequest) (*models.Order, error)
	updateStatusFn  func(ctx context.Context, p auth.Principal, ref, status string) (*models.Order, error)
	listOwnFn       func(ctx context.Context, p auth.Principal, q services.ListQuery) ([]models.Order, error)
	activeQueueFn   func(ctx context.Context, p auth.Principal, q services.ListQuery) ([]models.QueuedOrder, error)
	vendorQueueFn   func(ctx context.Context, p auth.Principal, q services.ListQuery) ([]models.QueuedOrder, error)
	getFn           func(ctx context.Context, p auth.Principal, ref string) (*models.Order, error)
	ownerHistoryFn  func(ctx context.Context, p auth.Principal, q services.HistoryQuery) (*models.OrderHistory, error)
	vendorHistoryFn func(ctx context.Context, p auth.Principal, q services.HistoryQuery) (*models.OrderHistory, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, p auth.Principal, req *models.CreateOrderRequest) (*models.Order, error) {
	return m.createFn(ctx, p, req)
}
func (m *mockOrderService) UpdateStatus(ctx context.Context, p auth.Principal, ref, status string) (*models.Order, error) {
	return m.updateStatusFn(ctx, p, ref, status)
}
func (m *mockOrderService) ListOwn(ctx context.Context, p auth.Principal, q services.ListQuery) ([]models.Order, error) {
	return m.listOwnFn(ctx, p, q)
}
func (m *mockOrderService) ActiveQueue(ctx context.Context, p auth.Principal, q services.ListQuery) ([]models.QueuedOrder, error) {
	return m.activeQueueFn(ctx, p, q)
}
func (m *mockOrderService) VendorQueue(ctx context.Context, p auth.Principal, q services.ListQuery) ([]models.QueuedOrder, error) {
	return m.vendorQueueFn(ctx, p, q)
}
func (m *mockOrderService) GetOrder(ctx context.Context, p auth.Principal, ref string) (*models.Order, error) {
	return m.getFn(ctx, p, ref)
}
func (m *mockOrderService) OwnerHistory(ctx context.Context, p auth.Principal, q services.HistoryQuery) (*models.OrderHistory, error) {
	return m.ownerHistoryFn(ctx, p, q)
}
func (m *mockOrderService) VendorHistory(ctx context.Context, p auth.Principal, q services.HistoryQuery) (*models.OrderHistory, error) {
	return m.vendorHistoryFn(ctx, p, q)
}

// --- Mock VendorService / DashboardService ---

type mockVendorService struct {
	getStatusFn func(ctx context.Context, vendorType string) (*models.Vendor, error)
	setStatusFn func(ctx context.Context, p auth.Principal, req *models.VendorStatusRequest) (*models.Vendor, error)
}

func (m *mockVendorService) GetStatus(ctx context.Context, vendorType string) (*models.Vendor, error) {
	return m.getStatusFn(ctx, vendorType)
}
func (m *mockVendorService) SetStatus(ctx context.Context, p auth.Principal, req *models.VendorStatusRequest) (*models.Vendor, error) {
	return m.setStatusFn(ctx, p, req)
}

type mockDashboardService struct {
	dashboardFn func(ctx context.Context, p auth.Principal, period models.Period, ref time.Time) (*models.Dashboard, error)
}

func (m *mockDashboardService) Dashboard(ctx context.Context, p auth.Principal, period models.Period, ref time.Time) (*models.Dashboard, error) {
	return m.dashboardFn(ctx, p, period, ref)
}

// --- Mock CartService / UploadService ---

type mockCartService struct {
	syncFn   func(ctx context.Context, p auth.Principal, req *models.SyncCartRequest) error
	latestFn func(ctx context.Context, p auth.Principal) (*models.LatestCart, error)
}

func (m *mockCartService) Sync(ctx context.Context, p auth.Principal, req *models.SyncCartRequest) error {
	return m.syncFn(ctx, p, req)
}
func (m *mockCartService) Latest(ctx context.Context, p auth.Principal) (*models.LatestCart, error) {
	return m.latestFn(ctx, p)
}

type mockUploadService struct {
	documentFn func(ctx context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error)
	imageFn    func(ctx context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error)
}

func (m *mockUploadService) PresignPrintDocument(ctx context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error) {
	return m.documentFn(ctx, p, req)
}
func (m *mockUploadService) PresignProductImage(ctx context.Context, p auth.Principal, req *models.PresignRequest) (*aws_pkg.PresignedUpload, error) {
	return m.imageFn(ctx, p, req)
}

// --- Mock UserService ---

type mockUserService struct {
	registerFn func(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	loginFn    func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	refreshFn  func(ctx context.Context, p auth.Principal) (*models.LoginResponse, error)
	pendingFn  func(ctx context.Context) ([]models.User, error)
	approveFn  func(ctx context.Context, id string, req *models.ApproveUserRequest) (*models.User, error)
}

func (m *mockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return m.registerFn(ctx, req)
}
func (m *mockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	return m.loginFn(ctx, req)
}
func (m *mockUserService) Refresh(ctx context.Context, p auth.Principal) (*models.LoginResponse, error) {
	return m.refreshFn(ctx, p)
}
func (m *mockUserService) Pending(ctx context.Context) ([]models.User, error) {
	return m.pendingFn(ctx)
}
func (m *mockUserService) Approve(ctx context.Context, id string, req *models.ApproveUserRequest) (*models.User, error) {
	return m.approveFn(ctx, id, req)
}

// --- Mock CatalogService ---

type mockCatalogService struct {
	listFn   func(ctx context.Context, productType string) (*models.CatalogResponse, error)
	getFn    func(ctx context.Context, id string) (*models.Product, error)
	createFn func(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	updateFn func(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockCatalogService) ListByType(ctx context.Context, productType string) (*models.CatalogResponse, error) {
	return m.listFn(ctx, productType)
}
func (m *mockCatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	return m.getFn(ctx, id)
}
func (m *mockCatalogService) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	return m.createFn(ctx, req)
}
func (m *mockCatalogService) Update(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockCatalogService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- Mock LibraryService ---

type mockLibraryService struct {
	listFn     func(ctx context.Context) ([]models.Book, error)
	addFn      func(ctx context.Context, req *models.BookRequest) (*models.Book, error)
	deleteFn   func(ctx context.Context, id string) error
	borrowFn   func(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error)
	returnFn   func(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error)
	borrowedFn func(ctx context.Context, p auth.Principal) ([]models.BorrowedBook, error)
}

func (m *mockLibraryService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return m.listFn(ctx)
}
func (m *mockLibraryService) AddBook(ctx context.Context, req *models.BookRequest) (*models.Book, error) {
	return m.addFn(ctx, req)
}
func (m *mockLibraryService) DeleteBook(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
func (m *mockLibraryService) Borrow(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error) {
	return m.borrowFn(ctx, p, bookID)
}
func (m *mockLibraryService) Return(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error) {
	return m.returnFn(ctx, p, bookID)
}
func (m *mockLibraryService) Borrowed(ctx context.Context, p auth.Principal) ([]models.BorrowedBook, error) {
	return m.borrowedFn(ctx, p)
}

// --- Mock NewsService / OfficeService ---

type mockNewsService struct {
	listFn   func(ctx context.Context) ([]models.News, error)
	getFn    func(ctx context.Context, id string) (*models.News, error)
	createFn func(ctx context.Context, req *models.NewsRequest) (*models.News, error)
	updateFn func(ctx context.Context, id string, req *models.NewsRequest) (*models.News, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockNewsService) List(ctx context.Context) ([]models.News, error) { return m.listFn(ctx) }
func (m *mockNewsService) Get(ctx context.Context, id string) (*models.News, error) {
	return m.getFn(ctx, id)
}
func (m *mockNewsService) Create(ctx context.Context, req *models.NewsRequest) (*models.News, error) {
	return m.createFn(ctx, req)
}
func (m *mockNewsService) Update(ctx context.Context, id string, req *models.NewsRequest) (*models.News, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockNewsService) Delete(ctx context.Context, id string) error { return m.deleteFn(ctx, id) }

type mockOfficeService struct {
	createFn   func(ctx context.Context, p auth.Principal, req *models.CreateOfficeRequest) (*models.OfficeRequest, error)
	listMineFn func(ctx context.Context, p auth.Principal) ([]models.OfficeRequest, error)
	updateFn   func(ctx context.Context, id string, req *models.UpdateOfficeRequest) (*models.OfficeRequest, error)
}

func (m *mockOfficeService) Create(ctx context.Context, p auth.Principal, req *models.CreateOfficeRequest) (*models.OfficeRequest, error) {
	return m.createFn(ctx, p, req)
}
func (m *mockOfficeService) ListMine(ctx context.Context, p auth.Principal) ([]models.OfficeRequest, error) {
	return m.listMineFn(ctx, p)
}
func (m *mockOfficeService) UpdateStatus(ctx context.Context, id string, req *models.UpdateOfficeRequest) (*models.OfficeRequest, error) {
	return m.updateFn(ctx, id, req)
}
