package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hanjiho/tripmate/services"
	"github.com/hanjiho/tripmate/utils"
)

// FeedController exposes the cursor-paginated feed and feed authoring.
type FeedController struct {
	feeds *services.FeedService
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{feeds: services.NewFeedService(db)}
}

// ListFeeds returns one feed page. The cursor is the last feed id the client
// has seen; omitting it starts from the most recent post. nickname and tag
// select the optional filter mode.
func (f *FeedController) ListFeeds(ctx *gin.Context) {
	cursor, ok := parseCursor(ctx.Query("cursor"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid cursor")
		return
	}
	filter := services.FeedFilter{
		Nickname: strings.TrimSpace(ctx.Query("nickname")),
		TagName:  strings.TrimSpace(ctx.Query("tag")),
	}

	cacheKey := fmt.Sprintf("cache:feed:list:cursor=%d:nickname=%s:tag=%s",
		cursor, filter.Nickname, filter.TagName)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	feeds, err := f.feeds.FetchPage(cursor, filter)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	payload := gin.H{
		"items":     feeds,
		"page_size": services.FeedPageSize,
	}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 0)
	utils.Success(ctx, payload)
}

// GetFeed returns a single post with author and tags.
func (f *FeedController) GetFeed(ctx *gin.Context) {
	feedID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid feed id")
		return
	}
	feed, err := f.feeds.FindByID(feedID)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"feed": feed})
}

// CreateFeed allows authenticated members to post to the feed.
func (f *FeedController) CreateFeed(ctx *gin.Context) {
	var req struct {
		Contents string   `json:"contents" binding:"required"`
		Location string   `json:"location"`
		Tags     []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}

	contents := utils.Sanitize(req.Contents)
	if strings.TrimSpace(contents) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40013, "contents cannot be empty")
		return
	}

	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	feed, err := f.feeds.Create(email, contents, req.Location, req.Tags)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:list:")
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"feed": feed})
}

// UpdateFeed allows the writer to edit contents, location and tags.
func (f *FeedController) UpdateFeed(ctx *gin.Context) {
	feedID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid feed id")
		return
	}
	var req struct {
		Contents string   `json:"contents" binding:"required"`
		Location string   `json:"location"`
		Tags     []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "invalid request payload")
		return
	}

	contents := utils.Sanitize(req.Contents)
	if strings.TrimSpace(contents) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40013, "contents cannot be empty")
		return
	}

	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	feed, err := f.feeds.Update(email, feedID, contents, req.Location, req.Tags)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:list:")
	utils.Success(ctx, gin.H{"feed": feed})
}

// DeleteFeed allows the writer to delete their post.
func (f *FeedController) DeleteFeed(ctx *gin.Context) {
	feedID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid feed id")
		return
	}
	email, ok := getEmail(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := f.feeds.Delete(email, feedID); err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:list:")
	utils.Success(ctx, gin.H{"message": "feed deleted"})
}

// parseCursor parses an optional cursor query value; empty means "from the
// most recent post".
func parseCursor(raw string) (uint, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func parseID(raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
