package model

import (
	"time"
)

type User struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	Username        string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email           *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash    *string    `gorm:"size:255" json:"-"`
	AvatarURL       string     `gorm:"size:500" json:"avatar_url"`
	Bio             string     `gorm:"type:text" json:"bio"`
	VipLevel        int        `gorm:"default:0" json:"vip_level"`
	VipExpiresAt    *time.Time `json:"vip_expires_at,omitempty"`
	PointsBalance   int        `gorm:"default:0" json:"points_balance"`
	DownloadCredits int        `gorm:"default:0" json:"download_credits"`
	DailyQuotaLimit int        `gorm:"default:0" json:"daily_quota_limit"`
	DailyQuotaUsed  int        `gorm:"default:0" json:"daily_quota_used"`
	QuotaResetDate  string     `gorm:"size:10" json:"quota_reset_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsVip VIP 判定：等级大于 0 且未过期
func (u *User) IsVip() bool {
	if u.VipLevel <= 0 {
		return false
	}
	if u.VipExpiresAt != nil && u.VipExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// QuotaRemaining 当日剩余配额（不考虑是否需要重置）
func (u *User) QuotaRemaining() int {
	remain := u.DailyQuotaLimit - u.DailyQuotaUsed
	if remain < 0 {
		return 0
	}
	return remain
}
