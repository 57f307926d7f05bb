package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Billing  BillingConfig  `mapstructure:"billing"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
	URLExpireSecond int64  `mapstructure:"url_expire_second"`
}

type QueueConfig struct {
	DownloadQueue string `mapstructure:"download_queue"`
	MaxWorkers    int    `mapstructure:"max_workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// BillingConfig 计费配置：平台抽成与各 VIP 等级的折扣、配额
type BillingConfig struct {
	PlatformFeeRate        float64                   `mapstructure:"platform_fee_rate"`        // 平台抽成比例（0-1）
	DefaultDailyQuota      int                       `mapstructure:"default_daily_quota"`      // 注册默认每日下载配额
	DefaultDownloadCredits int                       `mapstructure:"default_download_credits"` // 注册默认下载次数余额
	VipLevels              map[string]VipLevelConfig `mapstructure:"vip_levels"`               // 按等级（"1"、"2"...）配置
}

type VipLevelConfig struct {
	Name         string `mapstructure:"name"`
	DiscountRate int    `mapstructure:"discount_rate"` // 积分折扣 0-10，10 为原价
	DailyQuota   int    `mapstructure:"daily_quota"`
}

// DiscountRate 查询指定 VIP 等级的积分折扣（0-10），未配置按原价
func (b *BillingConfig) DiscountRate(level int) int {
	if level <= 0 {
		return 10
	}
	lc, ok := b.VipLevels[strconv.Itoa(level)]
	if !ok {
		return 10
	}
	if lc.DiscountRate < 0 {
		return 0
	}
	if lc.DiscountRate > 10 {
		return 10
	}
	return lc.DiscountRate
}

// DailyQuota 查询指定 VIP 等级的每日配额，未配置回退默认值
func (b *BillingConfig) DailyQuota(level int) int {
	if level > 0 {
		if lc, ok := b.VipLevels[strconv.Itoa(level)]; ok {
			return lc.DailyQuota
		}
	}
	return b.DefaultDailyQuota
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
