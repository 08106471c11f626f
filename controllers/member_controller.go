package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hanjiho/tripmate/middleware"
	"github.com/hanjiho/tripmate/services"
	"github.com/hanjiho/tripmate/utils"
)

// MemberController exposes member lookup and the follow graph.
type MemberController struct {
	members *services.MemberService
	follows *services.FollowService
}

// NewMemberController creates a new MemberController instance.
func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{
		members: services.NewMemberService(db),
		follows: services.NewFollowService(db),
	}
}

// GetMember returns the public profile of the member behind the email.
func (m *MemberController) GetMember(ctx *gin.Context) {
	email := strings.TrimSpace(ctx.Param("email"))
	if email == "" {
		utils.Error(ctx, http.StatusBadRequest, 40040, "missing email")
		return
	}
	member, err := m.members.FindByEmail(email)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"member": member})
}

// UpdateProfile changes the authenticated member's mutable profile fields.
func (m *MemberController) UpdateProfile(ctx *gin.Context) {
	var req struct {
		Nickname     string `json:"nickname"`
		Nation       string `json:"nation"`
		Introduction string `json:"introduction"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}
	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	member, err := m.members.UpdateProfile(email, strings.TrimSpace(req.Nickname),
		strings.TrimSpace(req.Nation), utils.Sanitize(req.Introduction))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"member": member})
}

// Follow makes the authenticated member follow the member behind the email
// path parameter.
func (m *MemberController) Follow(ctx *gin.Context) {
	followeeEmail := strings.TrimSpace(ctx.Param("email"))
	if followeeEmail == "" {
		utils.Error(ctx, http.StatusBadRequest, 40040, "missing email")
		return
	}
	followerEmail, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := m.follows.Follow(followerEmail, followeeEmail); err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "member followed"})
}

// Unfollow removes the authenticated member's follow of the member behind
// the email path parameter.
func (m *MemberController) Unfollow(ctx *gin.Context) {
	followeeEmail := strings.TrimSpace(ctx.Param("email"))
	if followeeEmail == "" {
		utils.Error(ctx, http.StatusBadRequest, 40040, "missing email")
		return
	}
	followerEmail, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := m.follows.Unfollow(followerEmail, followeeEmail); err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "member unfollowed"})
}

// getEmail pulls the authenticated email out of the gin context. The service
// layer trusts this value as the acting identity for every mutation.
func getEmail(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextEmailKey)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
