package worker

import (
	"context"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/model"
	"github.com/qs3c/resdl_go_server/internal/pkg/queue"
	"github.com/qs3c/resdl_go_server/internal/repository"
)

// Processor 下载事件处理器：消费队列里的下载事件，落审计日志
type Processor struct {
	logRepo *repository.DownloadLogRepository
	cfg     *config.Config
}

// NewProcessor 创建事件处理器
func NewProcessor(logRepo *repository.DownloadLogRepository, cfg *config.Config) *Processor {
	return &Processor{
		logRepo: logRepo,
		cfg:     cfg,
	}
}

// Process 处理单条下载事件
func (p *Processor) Process(ctx context.Context, msg *queue.DownloadMessage) error {
	entry := &model.DownloadLog{
		UserID:     msg.UserID,
		FileID:     msg.FileID,
		ResourceID: msg.ResourceID,
		CostType:   msg.CostType,
		Cost:       msg.Cost,
	}
	return p.logRepo.Create(entry)
}
