package model

import (
	"time"
)

// Resource 资源，文件的归属单位，作者从这里确定
type Resource struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	AuthorID    int64     `gorm:"index;not null" json:"author_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Resource) TableName() string {
	return "resources"
}

// ResourceFile 资源文件及其定价策略，一次鉴权过程中视为只读
type ResourceFile struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	ResourceID       int64     `gorm:"index;not null" json:"resource_id"`
	FileName         string    `gorm:"size:255;not null" json:"file_name"`
	ObjectKey        string    `gorm:"size:500" json:"-"`
	FileSize         int64     `gorm:"default:0" json:"file_size"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	RequiredPoints   int       `gorm:"default:0" json:"required_points"`    // 0 表示无积分要求
	RequiredVipLevel int       `gorm:"default:0" json:"required_vip_level"` // 0 表示无 VIP 要求
	Downloads        int64     `gorm:"default:0" json:"downloads"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (ResourceFile) TableName() string {
	return "resource_files"
}
