package dto

// EntitlementInfo 鉴权结果（不执行扣费）
type EntitlementInfo struct {
	Allowed        bool   `json:"allowed"`
	Reason         string `json:"reason,omitempty"`
	CostType       string `json:"cost_type"`
	Cost           int    `json:"cost"`
	OriginalPoints int    `json:"original_points,omitempty"`
}

// DownloadResult 下载扣费结果
type DownloadResult struct {
	Allowed        bool   `json:"allowed"`
	Reason         string `json:"reason,omitempty"`
	CostType       string `json:"cost_type"`
	Cost           int    `json:"cost"`
	RemainingQuota int    `json:"remaining_quota"`
	DownloadURL    string `json:"download_url,omitempty"`
	FileName       string `json:"file_name,omitempty"`
}

// PointRecordItem 积分流水条目
type PointRecordItem struct {
	ID         int64  `json:"id"`
	Delta      int    `json:"delta"`
	Reason     string `json:"reason"`
	ResourceID int64  `json:"resource_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ResourceInfo 资源详情（只读）
type ResourceInfo struct {
	ID          int64               `json:"id"`
	AuthorID    int64               `json:"author_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Files       []*ResourceFileInfo `json:"files"`
}

// ResourceFileInfo 资源文件及定价信息
type ResourceFileInfo struct {
	ID               int64  `json:"id"`
	FileName         string `json:"file_name"`
	FileSize         int64  `json:"file_size"`
	RequiredPoints   int    `json:"required_points"`
	RequiredVipLevel int    `json:"required_vip_level"`
	Downloads        int64  `json:"downloads"`
}
