package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

type FollowHandler struct {
	interactionService *service.InteractionService
}

func NewFollowHandler(interactionService *service.InteractionService) *FollowHandler {
	return &FollowHandler{
		interactionService: interactionService,
	}
}

// Create 关注用户
// POST /api/v1/follows
func (h *FollowHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateFollowRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.interactionService.Follow(userID, req.Following)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, item)
}

// List 当前用户的关注
// GET /api/v1/follows
func (h *FollowHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.interactionService.ListFollows(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, items)
}

// Delete 取消关注
// DELETE /api/v1/follows/:id
func (h *FollowHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.interactionService.Unfollow(userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
