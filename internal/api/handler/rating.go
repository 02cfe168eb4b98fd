package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

type RatingHandler struct {
	interactionService *service.InteractionService
	socialService      *service.SocialService
}

func NewRatingHandler(interactionService *service.InteractionService, socialService *service.SocialService) *RatingHandler {
	return &RatingHandler{
		interactionService: interactionService,
		socialService:      socialService,
	}
}

// Create 评分，重复评分只更新分数
// POST /api/v1/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}
	ref, ok := parseTarget(c, req.ContentType, req.ObjectID, model.ContentKinds...)
	if !ok {
		return
	}

	item, created, err := h.interactionService.RecordRating(userID, ref, req.Score)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if created {
		response.Created(c, item)
		return
	}
	response.Success(c, item)
}

// List 当前用户的评分
// GET /api/v1/ratings
func (h *RatingHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)

	items, total, err := h.interactionService.ListRatings(userID, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Delete 删除评分
// DELETE /api/v1/ratings/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.interactionService.DeleteRating(userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// Like 切换评分点赞
// POST /api/v1/ratings/:id/like
func (h *RatingHandler) Like(c *gin.Context) {
	toggleLike(c, h.socialService, model.KindRating)
}

// toggleLike 评分和评论共用的点赞切换
func toggleLike(c *gin.Context, social *service.SocialService, kind model.TargetKind) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := social.ToggleLike(userID, model.TargetRef{Kind: kind, ID: id})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, resp)
}
