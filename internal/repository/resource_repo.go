package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/internal/model"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) CreateResource(resource *model.Resource) error {
	return r.db.Create(resource).Error
}

func (r *ResourceRepository) CreateFile(file *model.ResourceFile) error {
	return r.db.Create(file).Error
}

func (r *ResourceRepository) GetResourceByID(id int64) (*model.Resource, error) {
	var resource model.Resource
	err := r.db.Where("id = ?", id).First(&resource).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *ResourceRepository) GetFileByID(id int64) (*model.ResourceFile, error) {
	var file model.ResourceFile
	err := r.db.Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListFilesByResource 列出资源下的文件（含已下架，由上层过滤展示）
func (r *ResourceRepository) ListFilesByResource(resourceID int64) ([]*model.ResourceFile, error) {
	var files []*model.ResourceFile
	err := r.db.Where("resource_id = ?", resourceID).Order("id ASC").Find(&files).Error
	return files, err
}

// IncrementDownloads 下载计数 +1（统计用，不参与扣费判定）
func (r *ResourceRepository) IncrementDownloads(fileID int64) error {
	return r.db.Model(&model.ResourceFile{}).Where("id = ?", fileID).
		Update("downloads", gorm.Expr("downloads + 1")).Error
}
