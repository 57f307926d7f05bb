package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID              int64      `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email,omitempty"`
	AvatarURL       string     `json:"avatar_url"`
	Bio             string     `json:"bio"`
	VipLevel        int        `json:"vip_level"`
	PointsBalance   int        `json:"points_balance"`
	DownloadCredits int        `json:"download_credits"`
	QuotaInfo       *QuotaInfo `json:"quota_info,omitempty"`
	CreatedAt       string     `json:"created_at,omitempty"`
}

// QuotaInfo 每日配额信息
type QuotaInfo struct {
	DailyQuota     int    `json:"daily_quota"`
	QuotaUsedToday int    `json:"quota_used_today"`
	QuotaRemaining int    `json:"quota_remaining"`
	CanConsume     bool   `json:"can_consume"`
	ResetDate      string `json:"reset_date,omitempty"`
}

// UpdateProfileRequest 更新用户信息请求
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Bio      *string `json:"bio,omitempty" binding:"omitempty,max=500"`
}
