package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/common/logger"
	"github.com/saikrishna7004/campus-360-backend/models"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50

	// totalTolerance absorbs float rounding between client and server totals.
	totalTolerance = 0.01
)

// ListQuery filters the owner list and the staff queues.
type ListQuery struct {
	Statuses     []models.OrderStatus
	UpdatedAfter *time.Time
}

// HistoryQuery selects one page of order history.
type HistoryQuery struct {
	Page          int
	Limit         int
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	Statuses      []models.OrderStatus
}

// OrderConfig tunes the order lifecycle.
type OrderConfig struct {
	// LenientTransitions allows any status to be written from any status.
	LenientTransitions bool
	// EnforceTotal rejects orders whose totalAmount differs from the item sum.
	EnforceTotal bool
	// EventTopic is the Kafka topic or SNS topic ARN for order events. Empty disables publishing.
	EventTopic string
	// Location is used for the date part of order ids. Defaults to UTC.
	Location *time.Location
	// Now and Suffix are injectable for tests.
	Now    func() time.Time
	Suffix func() int
}

// OrderService defines the order lifecycle operations.
type OrderService interface {
	CreateOrder(ctx context.Context, p auth.Principal, req *models.CreateOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, p auth.Principal, ref, status string) (*models.Order, error)
	ListOwn(ctx context.Context, p auth.Principal, q ListQuery) ([]models.Order, error)
	ActiveQueue(ctx context.Context, p auth.Principal, q ListQuery) ([]models.QueuedOrder, error)
	VendorQueue(ctx context.Context, p auth.Principal, q ListQuery) ([]models.QueuedOrder, error)
	GetOrder(ctx context.Context, p auth.Principal, ref string) (*models.Order, error)
	OwnerHistory(ctx context.Context, p auth.Principal, q HistoryQuery) (*models.OrderHistory, error)
	VendorHistory(ctx context.Context, p auth.Principal, q HistoryQuery) (*models.OrderHistory, error)
}

type orderServiceImpl struct {
	orders    repository.OrderRepository
	vendors   repository.VendorRepository
	users     repository.UserRepository
	publisher EventPublisher
	metrics   MetricsRecorder
	cfg       OrderConfig
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orders repository.OrderRepository,
	vendors repository.VendorRepository,
	users repository.UserRepository,
	publisher EventPublisher,
	metrics MetricsRecorder,
	cfg OrderConfig,
	logger *zap.Logger,
) OrderService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Suffix == nil {
		cfg.Suffix = func() int { return 1000 + rand.IntN(9000) }
	}
	return &orderServiceImpl{
		orders:    orders,
		vendors:   vendors,
		users:     users,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}
}

// NewOrderID formats an order id: ORD, the date as YYMMDD, then a 4-digit suffix.
func NewOrderID(at time.Time, suffix int) string {
	return fmt.Sprintf("ORD%s%04d", at.Format("060102"), suffix%10000)
}

// CreateOrder validates and persists a new order in the preparing state.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, p auth.Principal, req *models.CreateOrderRequest) (*models.Order, error) {
	userID, err := principalUserID(p)
	if err != nil {
		return nil, err
	}

	if len(req.Items) == 0 || req.TotalAmount <= 0 || strings.TrimSpace(req.Vendor) == "" {
		return nil, apperrors.InvalidRequest("Missing required fields")
	}
	vendor := models.VendorType(strings.TrimSpace(req.Vendor))
	if !vendor.ValidForOrder() {
		return nil, apperrors.InvalidRequest("Invalid vendor")
	}
	for _, it := range req.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Price < 0 {
			return nil, apperrors.InvalidRequest("Invalid order item")
		}
	}

	if err := s.ensureVendorAvailable(ctx, vendor); err != nil {
		recordCount(s.metrics, s.logger, aws_pkg.MetricOrdersRejected, map[string]string{"Vendor": string(vendor)})
		return nil, err
	}

	items, unmatched := buildOrderItems(req.Items, req.Documents)
	for _, id := range unmatched {
		logger.Warn(ctx, s.logger, "Print item has no matching document",
			zap.String("product_id", id), zap.String("user_id", p.ID))
	}

	now := s.cfg.Now().UTC()
	order := &models.Order{
		OrderID:       NewOrderID(now.In(s.cfg.Location), s.cfg.Suffix()),
		User:          userID,
		Vendor:        vendor,
		Items:         items,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: models.DefaultPaymentMethod,
		Status:        models.StatusPreparing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if computed := order.ItemsTotal(); math.Abs(computed-req.TotalAmount) > totalTolerance {
		if s.cfg.EnforceTotal {
			return nil, apperrors.InvalidRequest("Total amount does not match items")
		}
		logger.Warn(ctx, s.logger, "Order total differs from item sum",
			zap.Float64("client_total", req.TotalAmount), zap.Float64("computed_total", computed))
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.ServerError("Failed to create order", err)
	}

	logger.Info(ctx, s.logger, "Order created",
		zap.String("order_id", order.OrderID), zap.String("vendor", string(vendor)), zap.Int("items", len(items)))
	recordCount(s.metrics, s.logger, aws_pkg.MetricOrdersCreated, map[string]string{"Vendor": string(vendor)})
	s.publish(ctx, models.EventOrderCreated, order, "")
	return order, nil
}

func (s *orderServiceImpl) ensureVendorAvailable(ctx context.Context, vendor models.VendorType) error {
	if !vendor.Outlet() {
		return apperrors.VendorUnavailable()
	}
	v, err := s.vendors.FindByType(ctx, vendor)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.VendorUnavailable()
	}
	if err != nil {
		return apperrors.ServerError("Failed to check vendor status", err)
	}
	if !v.IsAvailable {
		return apperrors.VendorUnavailable()
	}
	return nil
}

// buildOrderItems converts client lines into tagged items, attaching uploaded documents to
// print items. Print items with no matching document pass through without document
// details; their product ids are returned.
func buildOrderItems(inputs []models.OrderItemInput, docs []models.CartDocument) ([]models.OrderItem, []string) {
	byID := make(map[string]models.CartDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	items := make([]models.OrderItem, 0, len(inputs))
	var unmatched []string
	for _, in := range inputs {
		item := models.OrderItem{
			Kind:      models.ItemKindOf(in.ProductID),
			ProductID: in.ProductID,
			Name:      in.Name,
			Quantity:  in.Quantity,
			Price:     in.Price,
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}

		if item.Kind == models.ItemKindPrint {
			if doc, ok := byID[in.ProductID]; ok {
				item.IsPrintItem = true
				item.DocumentDetails = &models.DocumentDetails{
					URL:             doc.URL,
					Name:            doc.Name,
					PrintingOptions: doc.PrintingOptions,
				}
			} else {
				unmatched = append(unmatched, in.ProductID)
			}
		}
		items = append(items, item)
	}
	return items, unmatched
}

// UpdateStatus moves an order to a new status after checking the caller's scope.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, p auth.Principal, ref, status string) (*models.Order, error) {
	to, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, apperrors.InvalidStatus()
	}

	scope, err := Authorize(p, CapOrderTransition)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByRef(ctx, ref)
	if err != nil {
		return nil, notFoundOr(err, "Order not found", "Failed to update order status")
	}
	if !scope.Allows(order.Vendor) {
		return nil, apperrors.Forbidden("Not authorized to update this order")
	}

	from := order.Status
	var guard *models.OrderStatus
	if !s.cfg.LenientTransitions {
		if err := ValidateTransition(from, to); err != nil {
			return nil, err
		}
		guard = &from
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, guard, to, s.cfg.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) && guard != nil {
		return nil, apperrors.InvalidTransition("Order status changed, reload and retry")
	}
	if err != nil {
		return nil, notFoundOr(err, "Order not found", "Failed to update order status")
	}

	logger.Info(ctx, s.logger, "Order status updated",
		zap.String("order_id", updated.OrderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("by", p.ID))
	recordCount(s.metrics, s.logger, aws_pkg.MetricOrderStatusChanged, map[string]string{"Status": string(to)})
	s.publish(ctx, models.EventOrderStatusChanged, updated, from)
	return updated, nil
}

// ListOwn returns the caller's orders, newest first.
func (s *orderServiceImpl) ListOwn(ctx context.Context, p auth.Principal, q ListQuery) ([]models.Order, error) {
	userID, err := principalUserID(p)
	if err != nil {
		return nil, err
	}
	filter := models.OrderFilter{User: &userID, Statuses: q.Statuses, UpdatedAfter: q.UpdatedAfter}
	orders, err := s.orders.Find(ctx, filter, repository.Page{})
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch orders", err)
	}
	return orders, nil
}

// ActiveQueue is the staff queue; it defaults to preparing and ready orders.
func (s *orderServiceImpl) ActiveQueue(ctx context.Context, p auth.Principal, q ListQuery) ([]models.QueuedOrder, error) {
	return s.queue(ctx, p, CapActiveQueue, q)
}

// VendorQueue is the vendor console queue with the same defaults.
func (s *orderServiceImpl) VendorQueue(ctx context.Context, p auth.Principal, q ListQuery) ([]models.QueuedOrder, error) {
	return s.queue(ctx, p, CapVendorConsole, q)
}

func (s *orderServiceImpl) queue(ctx context.Context, p auth.Principal, c Capability, q ListQuery) ([]models.QueuedOrder, error) {
	scope, err := Authorize(p, c)
	if err != nil {
		return nil, err
	}

	filter := models.OrderFilter{Statuses: q.Statuses, UpdatedAfter: q.UpdatedAfter}
	if len(filter.Statuses) == 0 {
		filter.Statuses = models.ActiveStatuses
	}
	scope.Apply(&filter)

	orders, err := s.orders.Find(ctx, filter, repository.Page{})
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch orders", err)
	}
	owners, err := s.owners(ctx, orders)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch orders", err)
	}

	queued := make([]models.QueuedOrder, 0, len(orders))
	for _, o := range orders {
		for i := range o.Items {
			item := &o.Items[i]
			if item.DocumentDetails != nil {
				item.IsPrintItem = true
				item.DocumentDetails.PrintingOptions = item.DocumentDetails.PrintingOptions.WithDefaults()
			}
		}
		queued = append(queued, models.QueuedOrder{Order: o, User: owners[o.User]})
	}
	return queued, nil
}

func (s *orderServiceImpl) owners(ctx context.Context, orders []models.Order) (map[primitive.ObjectID]*models.OrderUser, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, o := range orders {
		if !seen[o.User] {
			seen[o.User] = true
			ids = append(ids, o.User)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	owners := make(map[primitive.ObjectID]*models.OrderUser, len(users))
	for _, u := range users {
		owners[u.ID] = &models.OrderUser{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return owners, nil
}

// GetOrder returns one order to its owner or an admin.
func (s *orderServiceImpl) GetOrder(ctx context.Context, p auth.Principal, ref string) (*models.Order, error) {
	order, err := s.orders.FindByRef(ctx, ref)
	if err != nil {
		return nil, notFoundOr(err, "Order not found", "Failed to fetch order")
	}
	if order.User.Hex() != p.ID && p.Role != auth.RoleAdmin {
		return nil, apperrors.Forbidden("Access denied")
	}
	return order, nil
}

// OwnerHistory pages through the caller's own orders.
func (s *orderServiceImpl) OwnerHistory(ctx context.Context, p auth.Principal, q HistoryQuery) (*models.OrderHistory, error) {
	userID, err := principalUserID(p)
	if err != nil {
		return nil, err
	}
	return s.history(ctx, models.OrderFilter{User: &userID}, q)
}

// VendorHistory pages through the orders in the caller's vendor scope.
func (s *orderServiceImpl) VendorHistory(ctx context.Context, p auth.Principal, q HistoryQuery) (*models.OrderHistory, error) {
	scope, err := Authorize(p, CapVendorConsole)
	if err != nil {
		return nil, err
	}
	var filter models.OrderFilter
	scope.Apply(&filter)
	return s.history(ctx, filter, q)
}

func (s *orderServiceImpl) history(ctx context.Context, filter models.OrderFilter, q HistoryQuery) (*models.OrderHistory, error) {
	page, limit := NormalizePage(q.Page, q.Limit)
	filter.Statuses = q.Statuses
	filter.CreatedFrom = q.CreatedFrom
	filter.CreatedBefore = q.CreatedBefore

	orders, err := s.orders.Find(ctx, filter, repository.Page{Skip: int64((page - 1) * limit), Limit: int64(limit)})
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch order history", err)
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch order history", err)
	}
	summary, err := s.orders.Summarize(ctx, filter)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch order history", err)
	}
	summary.TotalRevenue = round2(summary.TotalRevenue)
	summary.AverageOrderValue = round2(summary.AverageOrderValue)

	return &models.OrderHistory{
		Orders:      orders,
		Summary:     summary,
		HasMore:     int64(page*limit) < total,
		Page:        page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		TotalOrders: total,
	}, nil
}

// NormalizePage applies the history paging defaults and cap.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return page, limit
}

// publish sends an order event best-effort; failures are logged and never returned.
func (s *orderServiceImpl) publish(ctx context.Context, eventType string, order *models.Order, previous models.OrderStatus) {
	if s.publisher == nil || s.cfg.EventTopic == "" {
		return
	}

	evt := models.OrderEvent{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		OrderID:        order.OrderID,
		Vendor:         order.Vendor,
		User:           order.User.Hex(),
		Status:         order.Status,
		PreviousStatus: previous,
		TotalAmount:    order.TotalAmount,
		OccurredAt:     s.cfg.Now().UTC(),
	}
	data, err := json.Marshal(evt)
	if err != nil {
		logger.Error(ctx, s.logger, "Failed to marshal order event", err)
		return
	}

	if kp, ok := s.publisher.(KeyedPublisher); ok {
		err = kp.PublishKeyed(ctx, s.cfg.EventTopic, []byte(order.OrderID), data)
	} else {
		err = s.publisher.Publish(ctx, s.cfg.EventTopic, data)
	}
	if err != nil {
		logger.Warn(ctx, s.logger, "Failed to publish order event",
			zap.String("event_type", eventType), zap.String("order_id", order.OrderID), zap.Error(err))
	}
}
