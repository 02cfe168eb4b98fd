package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Password2 string `json:"password2" binding:"required"`
	FirstName string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  string `json:"last_name,omitempty" binding:"omitempty,max=150"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User  *UserInfo `json:"user"`
	Token string    `json:"token"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string `json:"key"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url"`
	CreatedAt string `json:"created_at,omitempty"`
}

// UserBrief 嵌套展示用的用户摘要
type UserBrief struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfileRequest 更新用户信息请求
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,max=200"`
}

// UserProfile 用户主页
type UserProfile struct {
	UserDetails   *UserInfo      `json:"user_details"`
	Stats         *FollowStats   `json:"stats"`
	ProfileStatus *ProfileStatus `json:"profile_status"`
}

// FollowStats 关注统计
type FollowStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// ProfileStatus 当前用户与主页用户的关系
type ProfileStatus struct {
	IsOwner     bool `json:"is_owner"`
	IsFollowing bool `json:"is_following"`
}
