package dto

// CreateListRequest 创建列表请求
type CreateListRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddListItemRequest 添加列表条目请求
type AddListItemRequest struct {
	TargetInput
	ListID int64 `json:"list" binding:"required,min=1"`
}

// ListItemDetail 列表条目
type ListItemDetail struct {
	ID             int64           `json:"id"`
	ListID         int64           `json:"list"`
	ContentDetails *ContentSummary `json:"content_details"`
	AddedAt        string          `json:"added_at"`
}

// ListDetail 列表及其条目
type ListDetail struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	IsPredefined bool              `json:"is_predefined"`
	Items        []*ListItemDetail `json:"items"`
}
