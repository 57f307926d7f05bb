package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/model"
	"github.com/qs3c/resdl_go_server/internal/repository"
)

var (
	// ErrPaymentConflict 鉴权到扣费之间余额/配额被并发请求消耗，整体回滚，可重试
	ErrPaymentConflict = errors.New("余额或配额状态已变化，扣费未执行")
	ErrUnknownCostPlan = errors.New("未知的扣费计划")
)

// PaymentService 扣费执行器。一个计划的全部落账动作
// （配额/次数/积分扣减、流水、作者分成、幂等记录）在同一个事务内完成，
// 任何一步失败整体回滚，不留半账。
type PaymentService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	purchaseRepo *repository.PurchaseRepository
	pointsRepo   *repository.PointsRepository
	revenue      *RevenueService
	cfg          *config.Config
}

func NewPaymentService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	purchaseRepo *repository.PurchaseRepository,
	pointsRepo *repository.PointsRepository,
	revenue *RevenueService,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		db:           db,
		userRepo:     userRepo,
		purchaseRepo: purchaseRepo,
		pointsRepo:   pointsRepo,
		revenue:      revenue,
		cfg:          cfg,
	}
}

// Execute 执行扣费计划。当日已购计划直接成功返回，不再动账。
// 扣减全部走带条件的单条 UPDATE：并发的第二个请求要么排在事务后面
// 看到新状态，要么条件落空返回 ErrPaymentConflict。
func (s *PaymentService) Execute(file *model.ResourceFile, authorID, userID int64, plan model.CostPlan) error {
	if plan.Type == model.CostTypeDownloadedToday {
		return nil
	}
	if plan.Type == model.CostTypeFree && plan.Cost == 0 {
		return nil
	}

	today := todayString()

	return s.db.Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)

		// 惰性重置与扣减同事务，避免跨零点并发时丢失重置
		if err := users.ResetQuotaForDay(userID, today); err != nil {
			return err
		}

		pointsCost, quotaCost := 0, 0

		switch plan.Type {
		case model.CostTypeDailyLimit, model.CostTypeVipDownloadCount:
			ok, err := users.ConsumeQuota(userID, today)
			if err != nil {
				return err
			}
			if !ok {
				return ErrPaymentConflict
			}
			quotaCost = plan.Cost

		case model.CostTypeDownloadCount:
			ok, err := users.DeductDownloadCredits(userID, plan.Cost)
			if err != nil {
				return err
			}
			if !ok {
				return ErrPaymentConflict
			}
			quotaCost = plan.Cost

		case model.CostTypePoints, model.CostTypeVipDiscountedPoints:
			ok, err := users.DeductPoints(userID, plan.Cost)
			if err != nil {
				return err
			}
			if !ok {
				return ErrPaymentConflict
			}

			debit := &model.PointRecord{
				UserID:     userID,
				Delta:      -plan.Cost,
				Reason:     fmt.Sprintf("下载资源文件《%s》", file.FileName),
				ResourceID: file.ResourceID,
			}
			if err := s.pointsRepo.WithTx(tx).Append(debit); err != nil {
				return err
			}

			if _, err := s.revenue.Split(tx, plan.Cost, authorID, userID, file); err != nil {
				return err
			}
			pointsCost = plan.Cost

		default:
			return ErrUnknownCostPlan
		}

		return s.purchaseRepo.WithTx(tx).
			RecordOrMerge(userID, file.ID, today, plan.Type, pointsCost, quotaCost)
	})
}
