package service

import (
	"errors"
	"log"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/model"
	"github.com/qs3c/resdl_go_server/internal/repository"
)

// 鉴权拒绝原因，直接透出给前端
var (
	ErrFileInactive     = errors.New("文件已下架或不可用")
	ErrVipLevelTooLow   = errors.New("VIP 等级不足")
	ErrPointsNotEnough  = errors.New("积分不足")
	ErrQuotaExhausted   = errors.New("今日下载配额已用完")
	ErrCreditsExhausted = errors.New("下载次数不足")
	ErrNothingAvailable = errors.New("今日下载配额与下载次数均已用完")
	ErrPricingMisconfig = errors.New("定价配置异常，禁止下载")
)

// Verdict 鉴权结论：是否放行、拒绝原因、放行时的扣费计划
type Verdict struct {
	Allowed bool
	Reason  string
	Plan    model.CostPlan
}

func deny(reason error) *Verdict {
	return &Verdict{Allowed: false, Reason: reason.Error()}
}

func allow(plan model.CostPlan) *Verdict {
	return &Verdict{Allowed: true, Plan: plan}
}

// EntitlementService 下载鉴权器。只读，不产生任何扣费副作用；
// 惰性配额重置由调用方通过 QuotaService.EnsureToday 先行完成。
type EntitlementService struct {
	purchaseRepo *repository.PurchaseRepository
	cfg          *config.Config
}

func NewEntitlementService(purchaseRepo *repository.PurchaseRepository, cfg *config.Config) *EntitlementService {
	return &EntitlementService{
		purchaseRepo: purchaseRepo,
		cfg:          cfg,
	}
}

// Evaluate 依序判定，命中即返回。分支顺序是业务规则的一部分：
// 当日已购 > 下架 > 免费文件 > 积分+VIP > 仅 VIP > 仅积分，
// 积分+VIP 文件中 VIP 门槛优先于积分余额，兜底拒绝。
func (s *EntitlementService) Evaluate(file *model.ResourceFile, user *model.User) (*Verdict, error) {
	// 1. 当天已扣费，重复下载免费
	record, err := s.purchaseRepo.FindByDay(user.ID, file.ID, todayString())
	if err != nil {
		return nil, err
	}
	if record != nil {
		return allow(model.CostPlan{Type: model.CostTypeDownloadedToday, Cost: 0}), nil
	}

	// 2. 下架文件一律拒绝
	if !file.IsActive {
		return deny(ErrFileInactive), nil
	}

	vipLevel := effectiveVipLevel(user)

	switch {
	// 3. 免费文件：VIP 优先走每日配额，配额用完回退下载次数；
	//    非 VIP 只看下载次数
	case file.RequiredPoints == 0 && file.RequiredVipLevel == 0:
		if vipLevel > 0 {
			if user.QuotaRemaining() > 0 {
				return allow(model.CostPlan{Type: model.CostTypeDailyLimit, Cost: 1}), nil
			}
			if user.DownloadCredits > 0 {
				return allow(model.CostPlan{Type: model.CostTypeDownloadCount, Cost: 1}), nil
			}
			return deny(ErrNothingAvailable), nil
		}
		if user.DownloadCredits > 0 {
			return allow(model.CostPlan{Type: model.CostTypeDownloadCount, Cost: 1}), nil
		}
		return deny(ErrCreditsExhausted), nil

	// 4. 积分 + VIP 双要求：VIP 门槛优先，积分多少都救不了等级不足；
	//    达标后只消耗每日配额，不回退下载次数
	case file.RequiredPoints > 0 && file.RequiredVipLevel > 0:
		if vipLevel < file.RequiredVipLevel {
			return deny(ErrVipLevelTooLow), nil
		}
		if user.QuotaRemaining() > 0 {
			return allow(model.CostPlan{Type: model.CostTypeVipDownloadCount, Cost: 1}), nil
		}
		return deny(ErrQuotaExhausted), nil

	// 5. 仅 VIP 要求：同分支 4，少一个积分字段而已
	case file.RequiredPoints == 0 && file.RequiredVipLevel > 0:
		if vipLevel < file.RequiredVipLevel {
			return deny(ErrVipLevelTooLow), nil
		}
		if user.QuotaRemaining() > 0 {
			return allow(model.CostPlan{Type: model.CostTypeVipDownloadCount, Cost: 1}), nil
		}
		return deny(ErrQuotaExhausted), nil

	// 6. 仅积分要求：按 VIP 等级打折，折扣向上取整（平台有利方向）
	case file.RequiredPoints > 0 && file.RequiredVipLevel == 0:
		rate := s.cfg.Billing.DiscountRate(vipLevel)
		discounted := ceilDiv(file.RequiredPoints*rate, 10)
		if user.PointsBalance < discounted {
			return deny(ErrPointsNotEnough), nil
		}
		costType := model.CostTypePoints
		if vipLevel > 0 {
			costType = model.CostTypeVipDiscountedPoints
		}
		return allow(model.CostPlan{
			Type:           costType,
			Cost:           discounted,
			OriginalPoints: file.RequiredPoints,
		}), nil

	// 7. 负数等非法配置：记日志并拒绝，绝不放行
	default:
		log.Printf("Unresolvable pricing config: file=%d points=%d vip=%d",
			file.ID, file.RequiredPoints, file.RequiredVipLevel)
		return deny(ErrPricingMisconfig), nil
	}
}

// effectiveVipLevel 过期 VIP 按 0 级处理
func effectiveVipLevel(user *model.User) int {
	if !user.IsVip() {
		return 0
	}
	return user.VipLevel
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
