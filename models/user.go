package models

import (
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStatus gates login.
type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
	UserRejected UserStatus = "rejected"
)

func (s UserStatus) Valid() bool {
	return s == UserPending || s == UserApproved || s == UserRejected
}

// User is a registered account.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Role       auth.Role          `bson:"role" json:"role"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	VendorType VendorType         `bson:"vendorType,omitempty" json:"vendorType,omitempty"`
	Status     UserStatus         `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Principal converts the stored account into the token principal.
func (u *User) Principal() auth.Principal {
	return auth.Principal{
		ID:         u.ID.Hex(),
		Role:       u.Role,
		Name:       u.Name,
		Type:       u.Type,
		VendorType: string(u.VendorType),
	}
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=student vendor admin canteen"`
	Type       string `json:"type"`
	VendorType string `json:"vendorType" binding:"omitempty,vendortype"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ApproveUserRequest struct {
	Status string `json:"status"`
}

// LoginResponse carries a fresh token and the account it was issued for.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
