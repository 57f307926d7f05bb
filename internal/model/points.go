package model

import (
	"time"
)

// PointRecord 积分流水，只增不改。
// 约束：任一时刻用户 points_balance 等于其全部流水 delta 之和，
// 修改余额必须同事务追加流水。
type PointRecord struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"index;not null" json:"user_id"`
	Delta      int       `gorm:"not null" json:"delta"` // 负数为扣减，正数为入账
	Reason     string    `gorm:"size:200" json:"reason"`
	ResourceID int64     `gorm:"index" json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PointRecord) TableName() string {
	return "point_records"
}
