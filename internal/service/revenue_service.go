package service

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/model"
	"github.com/qs3c/resdl_go_server/internal/repository"
)

// RevenueService 作者分成：按平台抽成比例从积分收入中分给作者。
// 只会在支付事务内部被调用。
type RevenueService struct {
	userRepo   *repository.UserRepository
	pointsRepo *repository.PointsRepository
	cfg        *config.Config
}

func NewRevenueService(userRepo *repository.UserRepository, pointsRepo *repository.PointsRepository, cfg *config.Config) *RevenueService {
	return &RevenueService{
		userRepo:   userRepo,
		pointsRepo: pointsRepo,
		cfg:        cfg,
	}
}

// Split 计算并入账作者分成，返回分成数额。
// 自己下载自己的资源不分成；分成 = floor(扣费积分 * (1 - 抽成))，
// 向下取整（平台有利方向），为 0 时不写流水。
func (s *RevenueService) Split(tx *gorm.DB, pointsCharged int, authorID, payerID int64, file *model.ResourceFile) (int, error) {
	if authorID == payerID || pointsCharged <= 0 {
		return 0, nil
	}

	credit := int(math.Floor(float64(pointsCharged) * (1 - s.cfg.Billing.PlatformFeeRate)))
	if credit <= 0 {
		return 0, nil
	}

	if err := s.userRepo.WithTx(tx).AddPoints(authorID, credit); err != nil {
		return 0, err
	}

	entry := &model.PointRecord{
		UserID:     authorID,
		Delta:      credit,
		Reason:     fmt.Sprintf("资源文件《%s》售出分成", file.FileName),
		ResourceID: file.ResourceID,
	}
	if err := s.pointsRepo.WithTx(tx).Append(entry); err != nil {
		return 0, err
	}

	return credit, nil
}
