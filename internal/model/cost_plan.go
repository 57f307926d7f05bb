package model

// CostType 下载扣费方式，鉴权器产出的封闭集合
type CostType string

const (
	CostTypeFree                CostType = "free"                  // 无任何扣费
	CostTypeDownloadedToday     CostType = "downloaded_today"      // 当日已购，重复下载免费
	CostTypeDailyLimit          CostType = "daily_limit"           // 消耗 VIP 每日配额（免费文件）
	CostTypeDownloadCount       CostType = "download_count"        // 消耗下载次数余额
	CostTypeVipDownloadCount    CostType = "vip_download_count"    // 消耗 VIP 每日配额（VIP 文件）
	CostTypePoints              CostType = "points"                // 扣积分（原价）
	CostTypeVipDiscountedPoints CostType = "vip_discounted_points" // 扣积分（VIP 折后价）
)

// CostPlan 扣费计划：鉴权通过后交给执行器按计划落账。
// Cost 对配额/次数类计划是次数（恒为 1），对积分类计划是折后积分。
type CostPlan struct {
	Type           CostType `json:"type"`
	Cost           int      `json:"cost"`
	OriginalPoints int      `json:"original_points,omitempty"` // 积分类计划的原价
}

// ChargesPoints 是否为积分扣费计划
func (p CostPlan) ChargesPoints() bool {
	return p.Type == CostTypePoints || p.Type == CostTypeVipDiscountedPoints
}

// ChargesQuota 是否消耗每日配额
func (p CostPlan) ChargesQuota() bool {
	return p.Type == CostTypeDailyLimit || p.Type == CostTypeVipDownloadCount
}
