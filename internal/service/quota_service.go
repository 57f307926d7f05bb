package service

import (
	"time"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/model"
	"github.com/qs3c/resdl_go_server/internal/model/dto"
	"github.com/qs3c/resdl_go_server/internal/repository"
)

// todayString 计费日，服务器本地时区的自然日
func todayString() string {
	return time.Now().Format("2006-01-02")
}

type QuotaService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewQuotaService(userRepo *repository.UserRepository, cfg *config.Config) *QuotaService {
	return &QuotaService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// EnsureToday 惰性重置后返回最新用户状态。
// 定时任务可能尚未执行，任何读配额的路径都先经过这里。
func (s *QuotaService) EnsureToday(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	today := todayString()
	if user.QuotaResetDate != today {
		if err := s.userRepo.ResetQuotaForDay(userID, today); err != nil {
			return nil, err
		}
		user, err = s.userRepo.GetByID(userID)
		if err != nil {
			return nil, err
		}
	}

	return user, nil
}

// GetQuotaInfo 获取用户当日配额信息
func (s *QuotaService) GetQuotaInfo(userID int64) (*dto.QuotaInfo, error) {
	user, err := s.EnsureToday(userID)
	if err != nil {
		return nil, err
	}

	remain := user.QuotaRemaining()
	return &dto.QuotaInfo{
		DailyQuota:     user.DailyQuotaLimit,
		QuotaUsedToday: user.DailyQuotaUsed,
		QuotaRemaining: remain,
		CanConsume:     remain > 0,
		ResetDate:      user.QuotaResetDate,
	}, nil
}

// ResetAllQuotas 重置所有用户的每日配额（每日定时任务/手动触发）
func (s *QuotaService) ResetAllQuotas() error {
	return s.userRepo.ResetAllQuotas(todayString())
}
