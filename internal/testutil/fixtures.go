package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:        fmt.Sprintf("testuser_%d", time.Now().UnixNano()%100000000),
		Email:           &email,
		PasswordHash:    &passwordHash,
		VipLevel:        0,
		PointsBalance:   0,
		DownloadCredits: 0,
		DailyQuotaLimit: 10,
		DailyQuotaUsed:  0,
		QuotaResetDate:  time.Now().Format("2006-01-02"),
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithVip 设置 VIP 等级与每日配额
func WithVip(level, dailyQuota int) func(*model.User) {
	return func(u *model.User) {
		u.VipLevel = level
		u.DailyQuotaLimit = dailyQuota
	}
}

// WithPoints 设置积分余额
func WithPoints(balance int) func(*model.User) {
	return func(u *model.User) {
		u.PointsBalance = balance
	}
}

// WithDownloadCredits 设置下载次数余额
func WithDownloadCredits(n int) func(*model.User) {
	return func(u *model.User) {
		u.DownloadCredits = n
	}
}

// WithQuotaUsed 设置当日已用配额
func WithQuotaUsed(used int) func(*model.User) {
	return func(u *model.User) {
		u.DailyQuotaUsed = used
	}
}

// WithQuotaResetDate 设置配额重置日期（模拟跨天）
func WithQuotaResetDate(date string) func(*model.User) {
	return func(u *model.User) {
		u.QuotaResetDate = date
	}
}

// TestResource 创建测试资源
func TestResource(t *testing.T, db *gorm.DB, authorID int64, opts ...func(*model.Resource)) *model.Resource {
	t.Helper()

	resource := &model.Resource{
		AuthorID:    authorID,
		Title:       fmt.Sprintf("测试资源_%d", time.Now().UnixNano()%100000000),
		Description: "测试用资源",
		IsActive:    true,
	}

	for _, opt := range opts {
		opt(resource)
	}

	if err := db.Create(resource).Error; err != nil {
		t.Fatalf("Failed to create test resource: %v", err)
	}

	return resource
}

// TestResourceFile 创建测试资源文件
func TestResourceFile(t *testing.T, db *gorm.DB, resourceID int64, opts ...func(*model.ResourceFile)) *model.ResourceFile {
	t.Helper()

	file := &model.ResourceFile{
		ResourceID: resourceID,
		FileName:   fmt.Sprintf("file_%d.zip", time.Now().UnixNano()%100000000),
		ObjectKey:  "",
		FileSize:   1024,
		IsActive:   true,
	}

	for _, opt := range opts {
		opt(file)
	}

	wantActive := file.IsActive

	if err := db.Create(file).Error; err != nil {
		t.Fatalf("Failed to create test resource file: %v", err)
	}

	// IsActive 带 default:true 标签，GORM 在 INSERT 时会跳过零值字段，
	// false 需要在创建后显式写入（Create 还会把数据库默认值回填进结构体）
	if !wantActive {
		if err := db.Model(file).Update("is_active", false).Error; err != nil {
			t.Fatalf("Failed to deactivate test resource file: %v", err)
		}
	}

	return file
}

// WithPricing 设置文件定价
func WithPricing(requiredPoints, requiredVipLevel int) func(*model.ResourceFile) {
	return func(f *model.ResourceFile) {
		f.RequiredPoints = requiredPoints
		f.RequiredVipLevel = requiredVipLevel
	}
}

// WithInactive 下架文件
func WithInactive() func(*model.ResourceFile) {
	return func(f *model.ResourceFile) {
		f.IsActive = false
	}
}
