package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓库，支付流程内所有读改写走同一事务
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFields 只更新给定的列。用户行上的经济字段（余额、配额）只允许
// 条件更新修改，资料类更新一律走这里，不做整行回写。
func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ResetQuotaForDay 惰性重置：仅当记录的重置日期不是 today 时清零。
// WHERE 条件保证同一天并发触发时只有一次生效，不会覆盖当日已用量。
func (r *UserRepository) ResetQuotaForDay(id int64, today string) error {
	return r.db.Model(&model.User{}).
		Where("id = ? AND quota_reset_date <> ?", id, today).
		Updates(map[string]interface{}{
			"daily_quota_used": 0,
			"quota_reset_date": today,
		}).Error
}

// ConsumeQuota 原子消耗一次每日配额。
// 条件里带上 today，跨零点的请求会因为重置日期不匹配而落空并由上层重试。
// 返回 false 表示配额不足或状态已变化。
func (r *UserRepository) ConsumeQuota(id int64, today string) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND quota_reset_date = ? AND daily_quota_used < daily_quota_limit", id, today).
		Update("daily_quota_used", gorm.Expr("daily_quota_used + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeductDownloadCredits 原子扣减下载次数余额，不足时返回 false，余额不会为负
func (r *UserRepository) DeductDownloadCredits(id int64, n int) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND download_credits >= ?", id, n).
		Update("download_credits", gorm.Expr("download_credits - ?", n))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeductPoints 原子扣减积分，不足时返回 false，余额不会为负
func (r *UserRepository) DeductPoints(id int64, amount int) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND points_balance >= ?", id, amount).
		Update("points_balance", gorm.Expr("points_balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddPoints 积分入账（作者分成）
func (r *UserRepository) AddPoints(id int64, amount int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("points_balance", gorm.Expr("points_balance + ?", amount)).Error
}

// ResetAllQuotas 全量重置每日配额（每日定时任务）
func (r *UserRepository) ResetAllQuotas(today string) error {
	return r.db.Model(&model.User{}).Where("1 = 1").Updates(map[string]interface{}{
		"daily_quota_used": 0,
		"quota_reset_date": today,
	}).Error
}
