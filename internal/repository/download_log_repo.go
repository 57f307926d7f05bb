package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/internal/model"
)

type DownloadLogRepository struct {
	db *gorm.DB
}

func NewDownloadLogRepository(db *gorm.DB) *DownloadLogRepository {
	return &DownloadLogRepository{db: db}
}

func (r *DownloadLogRepository) Create(log *model.DownloadLog) error {
	return r.db.Create(log).Error
}

func (r *DownloadLogRepository) CountByFile(fileID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.DownloadLog{}).Where("file_id = ?", fileID).Count(&count).Error
	return count, err
}
