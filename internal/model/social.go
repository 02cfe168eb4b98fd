package model

import (
	"time"
)

// Like 点赞，只记录集合成员关系，不记录时间
type Like struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	UserID     int64      `gorm:"not null;uniqueIndex:idx_likes_user_target,priority:1" json:"user_id"`
	TargetKind TargetKind `gorm:"size:20;not null;uniqueIndex:idx_likes_user_target,priority:2;index:idx_likes_target,priority:1" json:"target_kind"`
	TargetID   int64      `gorm:"not null;uniqueIndex:idx_likes_user_target,priority:3;index:idx_likes_target,priority:2" json:"target_id"`
}

func (Like) TableName() string {
	return "likes"
}

// Reply 对评分或评论的回复，按创建时间升序展示
type Reply struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	TargetKind TargetKind `gorm:"size:20;not null;index:idx_replies_target,priority:1" json:"target_kind"`
	TargetID   int64      `gorm:"not null;index:idx_replies_target,priority:2" json:"target_id"`
	Text       string     `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Reply) TableName() string {
	return "replies"
}

func (r *Reply) Target() TargetRef {
	return TargetRef{Kind: r.TargetKind, ID: r.TargetID}
}
