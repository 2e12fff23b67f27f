package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/common/logger"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs bearer tokens. *auth.TokenManager satisfies it.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, error)
}

// UserService handles registration, login and account approval.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Refresh(ctx context.Context, p auth.Principal) (*models.LoginResponse, error)
	Pending(ctx context.Context) ([]models.User, error)
	Approve(ctx context.Context, id string, req *models.ApproveUserRequest) (*models.User, error)
}

type userServiceImpl struct {
	users  repository.UserRepository
	tokens TokenIssuer
	now    func() time.Time
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, tokens TokenIssuer, logger *zap.Logger) UserService {
	return &userServiceImpl{users: users, tokens: tokens, now: time.Now, logger: logger}
}

// Register creates a pending account; an admin approves it before login succeeds.
func (s *userServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := auth.Role(req.Role)
	if role == "" {
		role = auth.RoleStudent
	}
	if !role.Valid() {
		return nil, apperrors.InvalidRequest("Invalid role")
	}
	vendorType := models.VendorType(req.VendorType)
	if role == auth.RoleVendor && !vendorType.Outlet() {
		return nil, apperrors.InvalidRequest("vendorType is required for vendor accounts")
	}
	if role != auth.RoleVendor {
		vendorType = ""
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.InvalidRequest("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ServerError("Failed to register user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ServerError("Failed to register user", err)
	}

	now := s.now().UTC()
	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   string(hash),
		Role:       role,
		Type:       req.Type,
		VendorType: vendorType,
		Status:     models.UserPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.InvalidRequest("Email already registered")
		}
		return nil, apperrors.ServerError("Failed to register user", err)
	}

	logger.Info(ctx, s.logger, "User registered", zap.String("user_id", user.ID.Hex()), zap.String("role", string(role)))
	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to log in")
	}
	if user.Status != models.UserApproved {
		return nil, apperrors.Forbidden("Account not approved")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return s.issue(user)
}

// Refresh reissues a token for the caller after re-reading the account.
func (s *userServiceImpl) Refresh(ctx context.Context, p auth.Principal) (*models.LoginResponse, error) {
	id, err := principalUserID(p)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("Invalid token")
	}
	if err != nil {
		return nil, apperrors.ServerError("Failed to verify token", err)
	}
	if user.Status != models.UserApproved {
		return nil, apperrors.Forbidden("Account not approved")
	}
	return s.issue(user)
}

func (s *userServiceImpl) issue(user *models.User) (*models.LoginResponse, error) {
	token, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return nil, apperrors.ServerError("Failed to issue token", err)
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Pending lists accounts awaiting a decision, including rejected ones.
func (s *userServiceImpl) Pending(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindByStatuses(ctx, []models.UserStatus{models.UserPending, models.UserRejected})
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch users", err)
	}
	return users, nil
}

func (s *userServiceImpl) Approve(ctx context.Context, id string, req *models.ApproveUserRequest) (*models.User, error) {
	oid, err := parseObjectID(id, "user")
	if err != nil {
		return nil, err
	}
	status := models.UserApproved
	if req != nil && req.Status != "" {
		status = models.UserStatus(req.Status)
	}
	if !status.Valid() {
		return nil, apperrors.InvalidRequest("Invalid status")
	}

	user, err := s.users.UpdateStatus(ctx, oid, status, s.now().UTC())
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to update user")
	}
	logger.Info(ctx, s.logger, "User status updated", zap.String("user_id", id), zap.String("status", string(status)))
	return user, nil
}
