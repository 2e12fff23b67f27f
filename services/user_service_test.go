package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"github.com/saikrishna7004/campus-360-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(users ...*models.User) (*fakeUserRepo, *auth.TokenManager, services.UserService) {
	repo := newFakeUserRepo(users...)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return repo, tokens, services.NewUserService(repo, tokens, zap.NewNop())
}

func approvedUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Asha",
		Email:    email,
		Password: string(hash),
		Role:     auth.RoleCanteen,
		Type:     "food",
		Status:   models.UserApproved,
	}
}

func TestUserService_Register(t *testing.T) {
	repo, _, svc := newUserFixture()

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: " Asha ", Email: "Asha@Campus.EDU", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@campus.edu", user.Email)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, auth.RoleStudent, user.Role)
	assert.Equal(t, models.UserPending, user.Status)
	assert.NotEqual(t, "secret1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
	assert.Len(t, repo.users, 1)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{Name: "B", Email: "asha@campus.edu", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", apperrors.From(err).Message)
}

func TestUserService_Register_Roles(t *testing.T) {
	_, _, svc := newUserFixture()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Name: "V", Email: "v@campus.edu", Password: "secret1", Role: "vendor"})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))

	v, err := svc.Register(context.Background(), &models.RegisterRequest{Name: "V", Email: "v@campus.edu", Password: "secret1", Role: "vendor", VendorType: "canteen"})
	require.NoError(t, err)
	assert.Equal(t, models.VendorCanteen, v.VendorType)

	s, err := svc.Register(context.Background(), &models.RegisterRequest{Name: "S", Email: "s@campus.edu", Password: "secret1", VendorType: "canteen"})
	require.NoError(t, err)
	assert.Empty(t, s.VendorType)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{Name: "X", Email: "x@campus.edu", Password: "secret1", Role: "root"})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))
}

func TestUserService_Register_DuplicateOnInsert(t *testing.T) {
	repo, _, svc := newUserFixture()
	repo.createErr = repository.ErrDuplicate

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Name: "A", Email: "a@campus.edu", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", apperrors.From(err).Message)
}

func TestUserService_Login(t *testing.T) {
	user := approvedUser(t, "asha@campus.edu", "secret1")
	_, tokens, svc := newUserFixture(user)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ASHA@campus.edu", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	p, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), p.ID)
	assert.Equal(t, auth.RoleCanteen, p.Role)
	assert.Equal(t, "food", p.Type)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "asha@campus.edu", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "nobody@campus.edu", Password: "secret1"})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUserService_Login_NotApproved(t *testing.T) {
	user := approvedUser(t, "asha@campus.edu", "secret1")
	user.Status = models.UserPending
	_, _, svc := newUserFixture(user)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "asha@campus.edu", Password: "secret1"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	assert.Equal(t, "Account not approved", apperrors.From(err).Message)
}

func TestUserService_Refresh(t *testing.T) {
	user := approvedUser(t, "asha@campus.edu", "secret1")
	repo, _, svc := newUserFixture(user)

	resp, err := svc.Refresh(context.Background(), user.Principal())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Refresh(context.Background(), studentPrincipal(primitive.NewObjectID()))
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	repo.users[user.ID].Status = models.UserRejected
	_, err = svc.Refresh(context.Background(), user.Principal())
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestUserService_PendingAndApprove(t *testing.T) {
	pending := &models.User{ID: primitive.NewObjectID(), Email: "p@campus.edu", Status: models.UserPending}
	rejected := &models.User{ID: primitive.NewObjectID(), Email: "r@campus.edu", Status: models.UserRejected}
	approved := &models.User{ID: primitive.NewObjectID(), Email: "a@campus.edu", Status: models.UserApproved}
	_, _, svc := newUserFixture(pending, rejected, approved)

	users, err := svc.Pending(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	u, err := svc.Approve(context.Background(), pending.ID.Hex(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.UserApproved, u.Status)

	u, err = svc.Approve(context.Background(), approved.ID.Hex(), &models.ApproveUserRequest{Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, models.UserRejected, u.Status)

	_, err = svc.Approve(context.Background(), pending.ID.Hex(), &models.ApproveUserRequest{Status: "banned"})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))

	_, err = svc.Approve(context.Background(), "not-an-id", nil)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))

	_, err = svc.Approve(context.Background(), primitive.NewObjectID().Hex(), nil)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
