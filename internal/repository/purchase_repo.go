package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/internal/model"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓库
func (r *PurchaseRepository) WithTx(tx *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: tx}
}

// FindByDay 查询用户对某文件在指定日期的购买记录，不存在时返回 (nil, nil)
func (r *PurchaseRepository) FindByDay(userID, fileID int64, day string) (*model.PurchaseRecord, error) {
	var record model.PurchaseRecord
	err := r.db.Where("user_id = ? AND file_id = ? AND purchase_date = ?", userID, fileID, day).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// RecordOrMerge 写入幂等记录；键已存在时按字段取最大值合并并覆盖 cost_type。
// 合并满足交换律，重复调用或并发重试不会放大成本，真正的扣费由
// 用户行上的条件更新保证，这里只负责"当天已购"标记的唯一性。
func (r *PurchaseRepository) RecordOrMerge(userID, fileID int64, day string, costType model.CostType, pointsCost, quotaCost int) error {
	existing, err := r.FindByDay(userID, fileID, day)
	if err != nil {
		return err
	}
	if existing == nil {
		record := &model.PurchaseRecord{
			UserID:       userID,
			FileID:       fileID,
			PurchaseDate: day,
			CostType:     string(costType),
			PointsCost:   pointsCost,
			QuotaCost:    quotaCost,
		}
		err = r.db.Create(record).Error
		if err == nil {
			return nil
		}
		// 唯一索引冲突：并发请求先写入了同一键，改走合并
		existing, ferr := r.FindByDay(userID, fileID, day)
		if ferr != nil || existing == nil {
			return err
		}
		return r.merge(existing, costType, pointsCost, quotaCost)
	}
	return r.merge(existing, costType, pointsCost, quotaCost)
}

func (r *PurchaseRepository) merge(existing *model.PurchaseRecord, costType model.CostType, pointsCost, quotaCost int) error {
	if pointsCost < existing.PointsCost {
		pointsCost = existing.PointsCost
	}
	if quotaCost < existing.QuotaCost {
		quotaCost = existing.QuotaCost
	}
	return r.db.Model(&model.PurchaseRecord{}).Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"cost_type":   string(costType),
			"points_cost": pointsCost,
			"quota_cost":  quotaCost,
		}).Error
}

// ListByUser 按日期倒序分页查询用户的购买记录（审计用）
func (r *PurchaseRepository) ListByUser(userID int64, page, pageSize int) ([]*model.PurchaseRecord, int64, error) {
	var total int64
	var records []*model.PurchaseRecord

	query := r.db.Model(&model.PurchaseRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&records).Error
	return records, total, err
}
