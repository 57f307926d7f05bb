package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/internal/model"
)

type PointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓库
func (r *PointsRepository) WithTx(tx *gorm.DB) *PointsRepository {
	return &PointsRepository{db: tx}
}

// Append 追加一条积分流水，流水只增不改
func (r *PointsRepository) Append(record *model.PointRecord) error {
	return r.db.Create(record).Error
}

// SumByUser 用户全部流水 delta 之和，对账用：应当等于 points_balance
func (r *PointsRepository) SumByUser(userID int64) (int64, error) {
	var sum *int64
	err := r.db.Model(&model.PointRecord{}).Where("user_id = ?", userID).
		Select("SUM(delta)").Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// ListByUser 按时间倒序分页查询积分流水
func (r *PointsRepository) ListByUser(userID int64, page, pageSize int) ([]*model.PointRecord, int64, error) {
	var total int64
	var records []*model.PointRecord

	query := r.db.Model(&model.PointRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&records).Error
	return records, total, err
}
