package model

import (
	"time"
)

// PurchaseRecord 幂等记录：同一用户对同一文件当天只扣费一次。
// (user_id, file_id, purchase_date) 唯一，重复写入走合并而不是新增。
type PurchaseRecord struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"uniqueIndex:uk_user_file_day,priority:1;not null" json:"user_id"`
	FileID       int64     `gorm:"uniqueIndex:uk_user_file_day,priority:2;not null" json:"file_id"`
	PurchaseDate string    `gorm:"size:10;uniqueIndex:uk_user_file_day,priority:3;not null" json:"purchase_date"`
	CostType     string    `gorm:"size:30;not null" json:"cost_type"`
	PointsCost   int       `gorm:"default:0" json:"points_cost"`
	QuotaCost    int       `gorm:"default:0" json:"quota_cost"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PurchaseRecord) TableName() string {
	return "purchase_records"
}
