package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avelkov/bloghub/config"
	"github.com/avelkov/bloghub/middleware"
	"github.com/avelkov/bloghub/services"
	"github.com/avelkov/bloghub/utils"
)

// AuthController handles account endpoints: signup, login, user
// administration and profiles.
type AuthController struct {
	users *services.UserService
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{users: services.NewUserService(db)}
}

// Signup registers a new account with the default role.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=2,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := a.users.Signup(services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Created(ctx, gin.H{"user": user})
}

// Login verifies credentials and issues a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	user, err := a.users.Signin(req.Email, req.Password)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(config.Get().JWTSecret, user.ID, user.Role, utils.TokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to issue token")
		return
	}
	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// ListUsers returns every account. Admin only.
func (a *AuthController) ListUsers(ctx *gin.Context) {
	users, err := a.users.GetAllUsers()
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"users": users})
}

// PromoteUser grants the admin role to the target account.
func (a *AuthController) PromoteUser(ctx *gin.Context) {
	user, err := a.users.PromoteUser(ctx.Param("id"))
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// DemoteUser reverts the target account to the default role.
func (a *AuthController) DemoteUser(ctx *gin.Context) {
	user, err := a.users.DemoteUser(ctx.Param("id"))
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// DeleteUser removes the target account and everything it owns.
func (a *AuthController) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := a.users.DeleteUser(id); err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "user deleted"})
}

// ViewProfile returns the caller's own account.
func (a *AuthController) ViewProfile(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}
	user, err := a.users.ViewProfile(callerID)
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// UpdateProfile applies a partial update to the caller's own account.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	user, err := a.users.UpdateUser(callerID, services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}
