package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/model"
	"github.com/qs3c/resdl_go_server/internal/model/dto"
	"github.com/qs3c/resdl_go_server/internal/pkg/oss"
	"github.com/qs3c/resdl_go_server/internal/pkg/queue"
	"github.com/qs3c/resdl_go_server/internal/repository"
)

var (
	ErrResourceNotFound = errors.New("资源不存在")
	ErrFileNotFound     = errors.New("资源文件不存在")
)

// DownloadService 下载入口的编排层：鉴权、扣费、签发下载链接、投递审计事件
type DownloadService struct {
	resourceRepo *repository.ResourceRepository
	entitlement  *EntitlementService
	payment      *PaymentService
	quota        *QuotaService
	ossClient    *oss.Client
	eventQueue   *queue.Queue
	cfg          *config.Config
}

func NewDownloadService(
	resourceRepo *repository.ResourceRepository,
	entitlement *EntitlementService,
	payment *PaymentService,
	quota *QuotaService,
	ossClient *oss.Client,
	eventQueue *queue.Queue,
	cfg *config.Config,
) *DownloadService {
	return &DownloadService{
		resourceRepo: resourceRepo,
		entitlement:  entitlement,
		payment:      payment,
		quota:        quota,
		ossClient:    ossClient,
		eventQueue:   eventQueue,
		cfg:          cfg,
	}
}

// Entitlement 只鉴权不扣费，给前端展示"下载将消耗什么"
func (s *DownloadService) Entitlement(fileID, userID int64) (*dto.EntitlementInfo, error) {
	file, _, err := s.loadFile(fileID)
	if err != nil {
		return nil, err
	}

	user, err := s.quota.EnsureToday(userID)
	if err != nil {
		return nil, err
	}

	verdict, err := s.entitlement.Evaluate(file, user)
	if err != nil {
		return nil, err
	}

	return &dto.EntitlementInfo{
		Allowed:        verdict.Allowed,
		Reason:         verdict.Reason,
		CostType:       string(verdict.Plan.Type),
		Cost:           verdict.Plan.Cost,
		OriginalPoints: verdict.Plan.OriginalPoints,
	}, nil
}

// EvaluateAndCharge 鉴权并落账。拒绝以结构化结果返回而不是 error；
// 扣费冲突（ErrPaymentConflict）作为 error 上抛，调用方可整体重试。
func (s *DownloadService) EvaluateAndCharge(ctx context.Context, fileID, userID int64) (*dto.DownloadResult, error) {
	file, resource, err := s.loadFile(fileID)
	if err != nil {
		return nil, err
	}

	user, err := s.quota.EnsureToday(userID)
	if err != nil {
		return nil, err
	}

	verdict, err := s.entitlement.Evaluate(file, user)
	if err != nil {
		return nil, err
	}

	if !verdict.Allowed {
		return &dto.DownloadResult{
			Allowed: false,
			Reason:  verdict.Reason,
		}, nil
	}

	if err := s.payment.Execute(file, resource.AuthorID, userID, verdict.Plan); err != nil {
		return nil, err
	}

	// 扣费已提交，以下都是尽力而为的附加动作
	if err := s.resourceRepo.IncrementDownloads(file.ID); err != nil {
		log.Printf("Failed to bump download counter for file %d: %v", file.ID, err)
	}
	s.publishEvent(ctx, file, userID, verdict.Plan)

	result := &dto.DownloadResult{
		Allowed:  true,
		CostType: string(verdict.Plan.Type),
		Cost:     verdict.Plan.Cost,
		FileName: file.FileName,
	}

	if fresh, err := s.quota.EnsureToday(userID); err == nil {
		result.RemainingQuota = fresh.QuotaRemaining()
	}

	if s.ossClient != nil && file.ObjectKey != "" {
		url, err := s.ossClient.SignDownloadURL(file.ObjectKey, s.cfg.OSS.URLExpireSecond)
		if err != nil {
			log.Printf("Failed to sign download URL for file %d: %v", file.ID, err)
		} else {
			result.DownloadURL = url
		}
	}

	return result, nil
}

// GetResource 资源详情（只读），含文件与定价
func (s *DownloadService) GetResource(resourceID int64) (*dto.ResourceInfo, error) {
	resource, err := s.resourceRepo.GetResourceByID(resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if !resource.IsActive {
		return nil, ErrResourceNotFound
	}

	files, err := s.resourceRepo.ListFilesByResource(resourceID)
	if err != nil {
		return nil, err
	}

	info := &dto.ResourceInfo{
		ID:          resource.ID,
		AuthorID:    resource.AuthorID,
		Title:       resource.Title,
		Description: resource.Description,
		Files:       make([]*dto.ResourceFileInfo, 0, len(files)),
	}
	for _, f := range files {
		if !f.IsActive {
			continue
		}
		info.Files = append(info.Files, &dto.ResourceFileInfo{
			ID:               f.ID,
			FileName:         f.FileName,
			FileSize:         f.FileSize,
			RequiredPoints:   f.RequiredPoints,
			RequiredVipLevel: f.RequiredVipLevel,
			Downloads:        f.Downloads,
		})
	}

	return info, nil
}

func (s *DownloadService) loadFile(fileID int64) (*model.ResourceFile, *model.Resource, error) {
	file, err := s.resourceRepo.GetFileByID(fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}

	resource, err := s.resourceRepo.GetResourceByID(file.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrResourceNotFound
		}
		return nil, nil, err
	}

	return file, resource, nil
}

func (s *DownloadService) publishEvent(ctx context.Context, file *model.ResourceFile, userID int64, plan model.CostPlan) {
	if s.eventQueue == nil {
		return
	}

	msg := &queue.DownloadMessage{
		UserID:     userID,
		FileID:     file.ID,
		ResourceID: file.ResourceID,
		CostType:   string(plan.Type),
		Cost:       plan.Cost,
	}
	if err := s.eventQueue.Push(ctx, msg); err != nil {
		log.Printf("Failed to publish download event for file %d: %v", file.ID, err)
	}
}
