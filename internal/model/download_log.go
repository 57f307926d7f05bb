package model

import (
	"time"
)

// DownloadLog 下载审计日志，由 worker 从队列消费后落库
type DownloadLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"index;not null" json:"user_id"`
	FileID     int64     `gorm:"index;not null" json:"file_id"`
	ResourceID int64     `gorm:"index" json:"resource_id"`
	CostType   string    `gorm:"size:30" json:"cost_type"`
	Cost       int       `gorm:"default:0" json:"cost"`
	CreatedAt  time.Time `json:"created_at"`
}

func (DownloadLog) TableName() string {
	return "download_logs"
}
