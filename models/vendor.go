package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor holds the availability switch of one outlet.
type Vendor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type        VendorType         `bson:"type" json:"type"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VendorStatusRequest toggles an outlet online or offline.
type VendorStatusRequest struct {
	IsOnline   *bool  `json:"isOnline" binding:"required"`
	VendorType string `json:"vendorType"`
}
