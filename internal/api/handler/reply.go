package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

type ReplyHandler struct {
	socialService *service.SocialService
}

func NewReplyHandler(socialService *service.SocialService) *ReplyHandler {
	return &ReplyHandler{
		socialService: socialService,
	}
}

// Create 回复评分或评论
// POST /api/v1/replies
func (h *ReplyHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if !bindJSON(c, &req) {
		return
	}
	ref, ok := parseTarget(c, req.ContentType, req.ObjectID, model.SocialKinds...)
	if !ok {
		return
	}

	reply, err := h.socialService.AddReply(userID, ref, req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, reply)
}

// Delete 删除回复
// DELETE /api/v1/replies/:id
func (h *ReplyHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.socialService.DeleteReply(userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
