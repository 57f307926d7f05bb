package service

import (
	"errors"
	"io"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/model"
	"github.com/qs3c/resdl_go_server/internal/model/dto"
	"github.com/qs3c/resdl_go_server/internal/pkg/oss"
	"github.com/qs3c/resdl_go_server/internal/repository"
)

type UserService struct {
	userRepo   *repository.UserRepository
	pointsRepo *repository.PointsRepository
	ossClient  *oss.Client
	cfg        *config.Config
}

func NewUserService(userRepo *repository.UserRepository, pointsRepo *repository.PointsRepository, ossClient *oss.Client, cfg *config.Config) *UserService {
	return &UserService{
		userRepo:   userRepo,
		pointsRepo: pointsRepo,
		ossClient:  ossClient,
		cfg:        cfg,
	}
}

// GetProfile 获取用户详情（含配额快照）
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.buildUserInfoWithQuota(user), nil
}

// UpdateProfile 更新用户信息。
// 只更新改动的列，整行回写会把读取时的旧余额/配额覆盖掉并发提交的扣费。
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}

	// 检查用户名是否已被占用
	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		fields["username"] = *req.Username
	}

	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}

	user, err = s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	return s.buildUserInfoWithQuota(user), nil
}

// ListPointRecords 积分流水分页查询
func (s *UserService) ListPointRecords(userID int64, page, pageSize int) ([]*dto.PointRecordItem, int64, error) {
	records, total, err := s.pointsRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.PointRecordItem, len(records))
	for i, r := range records {
		items[i] = &dto.PointRecordItem{
			ID:         r.ID,
			Delta:      r.Delta,
			Reason:     r.Reason,
			ResourceID: r.ResourceID,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		}
	}
	return items, total, nil
}

// UploadAvatar 上传用户头像到 OSS
func (s *UserService) UploadAvatar(userID int64, file io.Reader, filename string) (string, error) {
	if s.ossClient == nil {
		return "", errors.New("OSS 客户端未配置")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	avatarURL, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"avatar_url": avatarURL,
	}); err != nil {
		return "", err
	}

	return avatarURL, nil
}

func (s *UserService) buildUserInfoWithQuota(user *model.User) *dto.UserInfo {
	info := buildUserInfo(user)
	info.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	info.QuotaInfo = &dto.QuotaInfo{
		DailyQuota:     user.DailyQuotaLimit,
		QuotaUsedToday: user.DailyQuotaUsed,
		QuotaRemaining: user.QuotaRemaining(),
		CanConsume:     user.QuotaRemaining() > 0,
		ResetDate:      user.QuotaResetDate,
	}
	return info
}
