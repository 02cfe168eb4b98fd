package model

import (
	"time"
)

const (
	MinScore = 1
	MaxScore = 10
)

// Rating 评分，每个用户对同一目标只有一条
type Rating struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	UserID     int64      `gorm:"not null;uniqueIndex:idx_ratings_user_target,priority:1" json:"user_id"`
	TargetKind TargetKind `gorm:"size:20;not null;uniqueIndex:idx_ratings_user_target,priority:2;index:idx_ratings_target,priority:1" json:"target_kind"`
	TargetID   int64      `gorm:"not null;uniqueIndex:idx_ratings_user_target,priority:3;index:idx_ratings_target,priority:2" json:"target_id"`
	Score      int        `gorm:"not null" json:"score"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) Ref() TargetRef {
	return TargetRef{Kind: KindRating, ID: r.ID}
}

// Target 被评分的内容
func (r *Rating) Target() TargetRef {
	return TargetRef{Kind: r.TargetKind, ID: r.TargetID}
}

// Review 评论，同一目标可以有多条
type Review struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	TargetKind TargetKind `gorm:"size:20;not null;index:idx_reviews_target,priority:1" json:"target_kind"`
	TargetID   int64      `gorm:"not null;index:idx_reviews_target,priority:2" json:"target_id"`
	Text       string     `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) Ref() TargetRef {
	return TargetRef{Kind: KindReview, ID: r.ID}
}

func (r *Review) Target() TargetRef {
	return TargetRef{Kind: r.TargetKind, ID: r.TargetID}
}

// Follow 关注关系（有序对）
type Follow struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	FollowerID  int64     `gorm:"not null;uniqueIndex:idx_follows_pair,priority:1" json:"follower_id"`
	FollowingID int64     `gorm:"not null;uniqueIndex:idx_follows_pair,priority:2;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Following *User `gorm:"foreignKey:FollowingID" json:"following_details,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) Ref() TargetRef {
	return TargetRef{Kind: KindFollow, ID: f.ID}
}
