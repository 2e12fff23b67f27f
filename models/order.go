package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ActiveStatuses are the states shown in vendor queues by default.
var ActiveStatuses = []OrderStatus{StatusPreparing, StatusReady}

// ParseOrderStatus returns the status named by s, or false if s is not one of the four known states.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(strings.TrimSpace(s)); st {
	case StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return st, true
	}
	return "", false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// VendorType identifies a campus outlet.
type VendorType string

const (
	VendorCanteen    VendorType = "canteen"
	VendorStationery VendorType = "stationery"
	// VendorDefault is accepted on orders for legacy clients but has no availability record.
	VendorDefault VendorType = "default"
)

// Outlet reports whether v is an outlet with an availability record.
func (v VendorType) Outlet() bool {
	return v == VendorCanteen || v == VendorStationery
}

// ValidForOrder reports whether v may appear on an order.
func (v VendorType) ValidForOrder() bool {
	return v.Outlet() || v == VendorDefault
}

// DefaultPaymentMethod is stamped on every order.
const DefaultPaymentMethod = "Google Pay UPI"

// PrintingOptions describe how a print job should be produced.
type PrintingOptions struct {
	NumberOfCopies int    `bson:"numberOfCopies" json:"numberOfCopies"`
	ColorType      string `bson:"colorType" json:"colorType"`
	PrintSides     string `bson:"printSides" json:"printSides"`
	PageSize       string `bson:"pageSize" json:"pageSize"`
	NumberOfPages  int    `bson:"numberOfPages" json:"numberOfPages"`
	AdditionalInfo string `bson:"additionalInfo" json:"additionalInfo"`
	DocumentURL    string `bson:"documentUrl,omitempty" json:"documentUrl,omitempty"`
	DocumentName   string `bson:"documentName,omitempty" json:"documentName,omitempty"`
}

// WithDefaults fills unset fields with the print counter's defaults.
func (o PrintingOptions) WithDefaults() PrintingOptions {
	if o.NumberOfCopies <= 0 {
		o.NumberOfCopies = 1
	}
	if o.ColorType == "" {
		o.ColorType = "bw"
	}
	if o.PrintSides == "" {
		o.PrintSides = "single"
	}
	if o.PageSize == "" {
		o.PageSize = "A4"
	}
	if o.NumberOfPages <= 0 {
		o.NumberOfPages = 1
	}
	return o
}

// DocumentDetails is the uploaded source of a print job attached to an order line.
type DocumentDetails struct {
	URL             string          `bson:"url" json:"url"`
	Name            string          `bson:"name" json:"name"`
	PrintingOptions PrintingOptions `bson:"printingOptions" json:"printingOptions"`
}

// ItemKind discriminates catalog products from ad-hoc print jobs.
type ItemKind string

const (
	ItemKindCatalog ItemKind = "catalog"
	ItemKindPrint   ItemKind = "print"
)

// printItemPrefix marks print-job references in product ids sent by existing clients.
const printItemPrefix = "print_"

// ItemKindOf classifies a client-supplied product id.
func ItemKindOf(productID string) ItemKind {
	if strings.HasPrefix(productID, printItemPrefix) {
		return ItemKindPrint
	}
	return ItemKindCatalog
}

// OrderItem is one line of an order.
type OrderItem struct {
	Kind            ItemKind         `bson:"kind" json:"kind"`
	ProductID       string           `bson:"productId" json:"productId"`
	Name            string           `bson:"name" json:"name"`
	Quantity        int              `bson:"quantity" json:"quantity"`
	Price           float64          `bson:"price" json:"price"`
	IsPrintItem     bool             `bson:"isPrintItem" json:"isPrintItem"`
	DocumentDetails *DocumentDetails `bson:"documentDetails,omitempty" json:"documentDetails,omitempty"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is the persisted order document.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Vendor        VendorType         `bson:"vendor" json:"vendor"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Status        OrderStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ItemsTotal recomputes the order total from its lines.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.LineTotal()
	}
	return total
}

// OrderUser is the owner summary shown in vendor queues.
type OrderUser struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// QueuedOrder is an order with its owner populated.
type QueuedOrder struct {
	Order
	User *OrderUser `json:"user"`
}

// OrderItemInput is a line item as sent by clients.
type OrderItemInput struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	Items       []OrderItemInput `json:"items"`
	TotalAmount float64          `json:"totalAmount"`
	Vendor      string           `json:"vendor"`
	Documents   []CartDocument   `json:"documents"`
}

// UpdateStatusRequest is the payload for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	User         *primitive.ObjectID
	Vendor       VendorType
	Statuses     []OrderStatus
	UpdatedAfter *time.Time

	// CreatedFrom is inclusive, CreatedBefore exclusive.
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
}

// HistorySummary aggregates the orders matched by a history filter.
type HistorySummary struct {
	TotalOrders       int64   `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// OrderHistory is one page of order history.
type OrderHistory struct {
	Orders      []Order        `json:"orders"`
	Summary     HistorySummary `json:"summary"`
	HasMore     bool           `json:"hasMore"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	TotalOrders int64          `json:"totalOrders"`
}
