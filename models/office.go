package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OfficeRequestStatus string

const (
	OfficePending   OfficeRequestStatus = "Pending"
	OfficeApproved  OfficeRequestStatus = "Approved"
	OfficeRejected  OfficeRequestStatus = "Rejected"
	OfficeCompleted OfficeRequestStatus = "Completed"
)

func (s OfficeRequestStatus) Valid() bool {
	switch s {
	case OfficePending, OfficeApproved, OfficeRejected, OfficeCompleted:
		return true
	}
	return false
}

// OfficeRequest is a service request raised with the campus office.
type OfficeRequest struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID      string              `bson:"userId" json:"userId"`
	Type        string              `bson:"type" json:"type"`
	Reason      string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Status      OfficeRequestStatus `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type CreateOfficeRequest struct {
	Type        string `json:"type" binding:"required"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type UpdateOfficeRequest struct {
	Status string `json:"status" binding:"required"`
}
