package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// feedPage 动态分页参数按 feed 配置规范化
func (h *FeedHandler) feedPage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return h.feedService.NormalizePage(page, pageSize)
}

// Feed 自己与关注的人的动态
// GET /api/v1/feed
func (h *FeedHandler) Feed(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, pageSize := h.feedPage(c)

	items, total, err := h.feedService.Feed(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// UserActivities 某个用户的动态
// GET /api/v1/users/:id/activities
func (h *FeedHandler) UserActivities(c *gin.Context) {
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := h.feedPage(c)

	items, total, err := h.feedService.UserActivities(c.Request.Context(), viewer, userID, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}
