package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidCartFormat is returned when the carts payload is not an array of vendor groups.
var ErrInvalidCartFormat = errors.New("invalid cart format")

// CartItem is one flattened cart line.
type CartItem struct {
	ID              string           `bson:"_id" json:"_id"`
	Name            string           `bson:"name" json:"name"`
	Price           float64          `bson:"price" json:"price"`
	Quantity        int              `bson:"quantity" json:"quantity"`
	Vendor          string           `bson:"vendor" json:"vendor"`
	ImageURL        string           `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsPrintItem     bool             `bson:"isPrintItem" json:"isPrintItem"`
	PrintingOptions *PrintingOptions `bson:"printingOptions,omitempty" json:"printingOptions,omitempty"`
}

// CartDocument is an uploaded print-job descriptor.
type CartDocument struct {
	ID              string          `bson:"id" json:"id"`
	Name            string          `bson:"name" json:"name"`
	URL             string          `bson:"url" json:"url"`
	PrintingOptions PrintingOptions `bson:"printingOptions" json:"printingOptions"`
	CartItemID      string          `bson:"cartItemId,omitempty" json:"cartItemId,omitempty"`
}

// Cart is the single authoritative cart of a user.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Items     []CartItem         `bson:"items" json:"items"`
	Documents []CartDocument     `bson:"documents" json:"documents"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartGroup is the per-vendor grouping clients keep locally.
type CartGroup struct {
	Vendor string     `json:"vendor"`
	Items  []CartItem `json:"items"`
}

// SyncCartRequest is the payload of a cart sync.
type SyncCartRequest struct {
	Carts     json.RawMessage `json:"carts"`
	Documents []CartDocument  `json:"documents"`
}

// Groups decodes the carts payload, which must be a JSON array.
func (r SyncCartRequest) Groups() ([]CartGroup, error) {
	raw := bytes.TrimSpace(r.Carts)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidCartFormat
	}
	var groups []CartGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, ErrInvalidCartFormat
	}
	return groups, nil
}

// LatestCart is the response shape of a cart fetch.
type LatestCart struct {
	Cart      LatestCartItems `json:"cart"`
	Documents []CartDocument  `json:"documents"`
}

type LatestCartItems struct {
	Items []CartItem `json:"items"`
}

// PresignRequest asks for a direct upload URL.
type PresignRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}
