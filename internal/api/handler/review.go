package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

type ReviewHandler struct {
	interactionService *service.InteractionService
	socialService      *service.SocialService
}

func NewReviewHandler(interactionService *service.InteractionService, socialService *service.SocialService) *ReviewHandler {
	return &ReviewHandler{
		interactionService: interactionService,
		socialService:      socialService,
	}
}

// Create 发表评论
// POST /api/v1/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	ref, ok := parseTarget(c, req.ContentType, req.ObjectID, model.ContentKinds...)
	if !ok {
		return
	}

	item, err := h.interactionService.RecordReview(userID, ref, req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, item)
}

// List 当前用户的评论
// GET /api/v1/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)

	items, total, err := h.interactionService.ListReviews(userID, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 评论详情
// GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.interactionService.GetReview(userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, item)
}

// Update 修改评论
// PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.interactionService.UpdateReview(userID, id, req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, item)
}

// Delete 删除评论
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.interactionService.DeleteReview(userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// Like 切换评论点赞，评论不存在时回退到同 ID 的评分
// POST /api/v1/reviews/:id/like
func (h *ReviewHandler) Like(c *gin.Context) {
	toggleLike(c, h.socialService, model.KindReview)
}
