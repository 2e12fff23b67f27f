package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

// UserController handles registration, login and account approval.
type UserController struct {
	userService services.UserService
}

func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Register handles POST /users/register.
func (uc *UserController) Register(ctx *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := uc.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "user": user})
}

// Login handles POST /users/login.
func (uc *UserController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := uc.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// VerifyToken handles GET /users/verify_token by reissuing a token for the caller.
func (uc *UserController) VerifyToken(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	resp, err := uc.userService.Refresh(ctx.Request.Context(), p)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Pending handles GET /users/pending (admin only).
func (uc *UserController) Pending(ctx *gin.Context) {
	users, err := uc.userService.Pending(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Approve handles PUT /users/:id/approve (admin only). An empty body approves.
func (uc *UserController) Approve(ctx *gin.Context) {
	var req models.ApproveUserRequest
	if ctx.Request.ContentLength > 0 && !bindJSON(ctx, &req) {
		return
	}

	user, err := uc.userService.Approve(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User approved", "user": user})
}
