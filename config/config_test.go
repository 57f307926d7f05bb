package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBilling() *BillingConfig {
	return &BillingConfig{
		PlatformFeeRate:        0.2,
		DefaultDailyQuota:      0,
		DefaultDownloadCredits: 3,
		VipLevels: map[string]VipLevelConfig{
			"1": {Name: "VIP", DiscountRate: 9, DailyQuota: 10},
			"2": {Name: "SVIP", DiscountRate: 8, DailyQuota: 20},
			"3": {Name: "MAX", DiscountRate: 15, DailyQuota: 50},
		},
	}
}

func TestBillingConfig_DiscountRate(t *testing.T) {
	b := testBilling()

	assert.Equal(t, 10, b.DiscountRate(0), "非 VIP 原价")
	assert.Equal(t, 10, b.DiscountRate(-1))
	assert.Equal(t, 9, b.DiscountRate(1))
	assert.Equal(t, 8, b.DiscountRate(2))
	// 越界配置被夹到 [0, 10]
	assert.Equal(t, 10, b.DiscountRate(3))
	// 未配置的等级按原价
	assert.Equal(t, 10, b.DiscountRate(99))
}

func TestBillingConfig_DailyQuota(t *testing.T) {
	b := testBilling()

	assert.Equal(t, 0, b.DailyQuota(0))
	assert.Equal(t, 10, b.DailyQuota(1))
	assert.Equal(t, 20, b.DailyQuota(2))
	assert.Equal(t, 0, b.DailyQuota(99))
}
