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

const travelDateLayout = "2006-01-02"

// RecruitmentController exposes the recruitment posting lifecycle.
type RecruitmentController struct {
	recruitments *services.RecruitmentService
}

// NewRecruitmentController creates a new RecruitmentController instance.
func NewRecruitmentController(db *gorm.DB) *RecruitmentController {
	return &RecruitmentController{recruitments: services.NewRecruitmentService(db)}
}

// CreateRecruitment opens a new recruitment owned by the authenticated member.
func (r *RecruitmentController) CreateRecruitment(ctx *gin.Context) {
	var req struct {
		Title           string `json:"title" binding:"required,min=1"`
		Content         string `json:"content" binding:"required"`
		TravelNation    string `json:"travel_nation"`
		TravelStartDate string `json:"travel_start_date" binding:"required"`
		TravelEndDate   string `json:"travel_end_date" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40051, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)

	start, err := time.Parse(travelDateLayout, req.TravelStartDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "invalid travel start date")
		return
	}
	end, err := time.Parse(travelDateLayout, req.TravelEndDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40053, "invalid travel end date")
		return
	}
	if end.Before(start) {
		utils.Error(ctx, http.StatusBadRequest, 40054, "travel end date precedes start date")
		return
	}

	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	recruitment, err := r.recruitments.Create(email, title, content, req.TravelNation, start, end)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"recruitment": recruitment})
}

// GetRecruitment returns a single recruitment with its writer.
func (r *RecruitmentController) GetRecruitment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40055, "invalid recruitment id")
		return
	}
	recruitment, err := r.recruitments.FindByID(id)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"recruitment": recruitment})
}

// UpdateRecruitment applies a partial update to the owner's open recruitment.
func (r *RecruitmentController) UpdateRecruitment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40055, "invalid recruitment id")
		return
	}
	var req struct {
		Title           *string `json:"title"`
		Content         *string `json:"content"`
		TravelNation    *string `json:"travel_nation"`
		TravelStartDate *string `json:"travel_start_date"`
		TravelEndDate   *string `json:"travel_end_date"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	patch := services.RecruitmentPatch{TravelNation: req.TravelNation}
	if req.Title != nil {
		title := utils.Sanitize(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, 40051, "title cannot be empty")
			return
		}
		patch.Title = &title
	}
	if req.Content != nil {
		content := utils.Sanitize(*req.Content)
		patch.Content = &content
	}
	if req.TravelStartDate != nil {
		start, err := time.Parse(travelDateLayout, *req.TravelStartDate)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40052, "invalid travel start date")
			return
		}
		patch.TravelStartDate = &start
	}
	if req.TravelEndDate != nil {
		end, err := time.Parse(travelDateLayout, *req.TravelEndDate)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40053, "invalid travel end date")
			return
		}
		patch.TravelEndDate = &end
	}

	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	recruitment, err := r.recruitments.Update(id, email, patch)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"recruitment": recruitment})
}

// CloseRecruitment ends the owner's open recruitment.
func (r *RecruitmentController) CloseRecruitment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40055, "invalid recruitment id")
		return
	}
	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	recruitment, err := r.recruitments.Close(id, email)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"recruitment": recruitment})
}

// DeleteRecruitment soft-deletes the owner's open recruitment.
func (r *RecruitmentController) DeleteRecruitment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40055, "invalid recruitment id")
		return
	}
	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := r.recruitments.Delete(id, email); err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "recruitment deleted"})
}
