package dto

// ActivityItem 动态条目。Details 为空表示引用的互动或内容已不存在。
type ActivityItem struct {
	ID                  int64       `json:"id"`
	User                *UserBrief  `json:"user"`
	ActivityType        int         `json:"activity_type"`
	ActivityTypeDisplay string      `json:"activity_type_display"`
	CreatedAt           string      `json:"created_at"`
	ObjectID            int64       `json:"object_id"`
	InteractionID       *int64      `json:"interaction_id"`
	Details             interface{} `json:"content_object_details"`
}

// RatingActivityDetails 评分动态
type RatingActivityDetails struct {
	ContentType string          `json:"content_type"`
	ContentData *ContentSummary `json:"content_data"`
	Score       int             `json:"score"`
	RatingID    int64           `json:"rating_id"`
	LikesCount  int64           `json:"likes_count"`
	IsLiked     bool            `json:"is_liked"`
	Replies     []*ReplyItem    `json:"replies"`
}

// ReviewActivityDetails 评论动态
type ReviewActivityDetails struct {
	ContentType   string          `json:"content_type"`
	ContentData   *ContentSummary `json:"content_data"`
	ReviewDetails *ReviewItem     `json:"review_details"`
	ReviewExcerpt string          `json:"review_excerpt"`
}

// ListAddActivityDetails 加入列表动态
type ListAddActivityDetails struct {
	ContentType string          `json:"content_type"`
	ContentData *ContentSummary `json:"content_data"`
	ListName    string          `json:"list_name"`
}

// FollowActivityDetails 关注动态
type FollowActivityDetails struct {
	FollowedUser *UserBrief `json:"followed_user"`
}
