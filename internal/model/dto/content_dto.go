package dto

// ContentSummary 图书/电影摘要
type ContentSummary struct {
	ID          int64  `json:"id"`
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Authors     string `json:"authors,omitempty"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	PosterPath  string `json:"poster_path,omitempty"`
	Overview    string `json:"overview,omitempty"`
}

// ContentDetail 内容详情（含实时计算的聚合字段）
type ContentDetail struct {
	*ContentSummary
	ExternalID   string          `json:"external_id"`
	PageCount    *int            `json:"page_count,omitempty"`
	AverageScore *float64        `json:"average_score"`
	UserScore    *int            `json:"user_score"`
	Reviews      []*NestedReview `json:"reviews"`
}

// NestedReview 内容详情中的评论
type NestedReview struct {
	ID        int64      `json:"id"`
	User      *UserBrief `json:"user"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"created_at"`
}

// DiscoverItem 发现页条目
type DiscoverItem struct {
	*ContentSummary
	AverageScore    *float64 `json:"avg_score"`
	ReviewCount     int64    `json:"review_count"`
	ListItemCount   int64    `json:"list_item_count"`
	PopularityScore int64    `json:"popularity_score"`
}
