package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/service"
)

type ListHandler struct {
	listService        *service.ListService
	interactionService *service.InteractionService
}

func NewListHandler(listService *service.ListService, interactionService *service.InteractionService) *ListHandler {
	return &ListHandler{
		listService:        listService,
		interactionService: interactionService,
	}
}

// List 当前用户的全部列表
// GET /api/v1/lists
func (h *ListHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	lists, err := h.listService.ListsForUser(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, lists)
}

// Create 创建自定义列表
// POST /api/v1/lists
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.listService.CreateList(userID, req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, list)
}

// Delete 删除自定义列表
// DELETE /api/v1/lists/:id
func (h *ListHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.listService.DeleteList(userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// AddItem 把内容加入列表，已存在时返回原条目
// POST /api/v1/listitems
func (h *ListHandler) AddItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.AddListItemRequest
	if !bindJSON(c, &req) {
		return
	}
	ref, ok := parseTarget(c, req.ContentType, req.ObjectID, model.ContentKinds...)
	if !ok {
		return
	}

	item, created, err := h.interactionService.AddListItem(userID, req.ListID, ref)
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

// RemoveItem 从列表移除条目
// DELETE /api/v1/listitems/:id
func (h *ListHandler) RemoveItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.interactionService.RemoveListItem(userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
