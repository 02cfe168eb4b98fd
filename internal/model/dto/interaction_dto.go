package dto

// TargetInput 客户端传入的多态目标
type TargetInput struct {
	ContentType string `json:"content_type" binding:"required"`
	ObjectID    int64  `json:"object_id" binding:"required,min=1"`
}

// CreateRatingRequest 评分请求
type CreateRatingRequest struct {
	TargetInput
	Score int `json:"score"`
}

// RatingItem 评分
type RatingItem struct {
	ID         int64        `json:"id"`
	User       *UserBrief   `json:"user"`
	Score      int          `json:"score"`
	LikesCount int64        `json:"likes_count"`
	IsLiked    bool         `json:"is_liked"`
	CreatedAt  string       `json:"created_at"`
	Replies    []*ReplyItem `json:"replies"`
}

// CreateReviewRequest 评论请求
type CreateReviewRequest struct {
	TargetInput
	Text string `json:"text" binding:"required,min=1"`
}

// UpdateReviewRequest 修改评论请求
type UpdateReviewRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// ReviewItem 评论
type ReviewItem struct {
	ID         int64        `json:"id"`
	User       *UserBrief   `json:"user"`
	Text       string       `json:"text"`
	LikesCount int64        `json:"likes_count"`
	IsLiked    bool         `json:"is_liked"`
	CreatedAt  string       `json:"created_at"`
	UpdatedAt  string       `json:"updated_at"`
	Replies    []*ReplyItem `json:"replies"`
}

// CreateReplyRequest 回复请求
type CreateReplyRequest struct {
	TargetInput
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// ReplyItem 回复
type ReplyItem struct {
	ID        int64      `json:"id"`
	User      *UserBrief `json:"user"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"created_at"`
}

// LikeResponse 点赞切换结果
type LikeResponse struct {
	Status     string `json:"status"` // liked, unliked
	LikesCount int64  `json:"likes_count"`
}

// CreateFollowRequest 关注请求
type CreateFollowRequest struct {
	Following int64 `json:"following" binding:"required,min=1"`
}

// FollowItem 关注关系
type FollowItem struct {
	ID               int64      `json:"id"`
	Following        int64      `json:"following"`
	FollowingDetails *UserBrief `json:"following_details"`
	CreatedAt        string     `json:"created_at"`
}
