package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// Detail 内容详情
// GET /api/v1/content/:type/:id
func (h *ContentHandler) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ref, ok := parseTarget(c, c.Param("type"), id, model.ContentKinds...)
	if !ok {
		return
	}

	detail, err := h.contentService.Detail(viewerID(c), ref)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, detail)
}

// Search 搜索图书和电影
// GET /api/v1/search?q=
func (h *ContentHandler) Search(c *gin.Context) {
	results, err := h.contentService.Search(c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, results)
}

// Discover 发现页
// GET /api/v1/discover?type=popular|top_rated
func (h *ContentHandler) Discover(c *gin.Context) {
	items, err := h.contentService.Discover(c.Query("type"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, items)
}
