package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductType is the catalog a product belongs to.
type ProductType string

const (
	ProductCanteen    ProductType = "canteen"
	ProductBookstore  ProductType = "bookstore"
	ProductStationery ProductType = "stationery"
)

func (t ProductType) Valid() bool {
	return t == ProductCanteen || t == ProductBookstore || t == ProductStationery
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	Type        ProductType        `bson:"type" json:"type"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductRequest creates or fully replaces a product.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    string  `json:"imageUrl"`
	InStock     *bool   `json:"inStock"`
	IsAvailable *bool   `json:"isAvailable"`
	Type        string  `json:"type" binding:"required,producttype"`
}

// CatalogResponse is the product listing for an outlet.
type CatalogResponse struct {
	IsAvailable bool      `json:"isAvailable"`
	Message     string    `json:"message,omitempty"`
	Products    []Product `json:"products,omitempty"`
}
