package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hanjiho/tripmate/services"
	"github.com/hanjiho/tripmate/utils"
)

const tokenDuration = 24 * time.Hour

// AuthController handles member registration and login sessions.
type AuthController struct {
	members *services.MemberService
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{members: services.NewMemberService(db)}
}

// Register creates a new member account.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Nickname string `json:"nickname" binding:"required,min=2,max=64"`
		Password string `json:"password" binding:"required,min=8"`
		Nation   string `json:"nation"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	member, err := a.members.Register(
		strings.ToLower(strings.TrimSpace(req.Email)),
		strings.TrimSpace(req.Nickname),
		req.Password,
		strings.TrimSpace(req.Nation),
	)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"member": member})
}

// Login verifies credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	member, err := a.members.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !utils.CheckPassword(member.PasswordHash, req.Password) {
		// identical response for unknown email and wrong password
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(member.ID, member.Email, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "member": member})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 {
		token := strings.TrimSpace(parts[1])
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated member's own account.
func (a *AuthController) Me(ctx *gin.Context) {
	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	member, err := a.members.FindByEmail(email)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"member": member})
}
