package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/resdl_go_server/internal/api/middleware"
	"github.com/qs3c/resdl_go_server/internal/pkg/response"
	"github.com/qs3c/resdl_go_server/internal/service"
)

type DownloadHandler struct {
	downloadService *service.DownloadService
}

func NewDownloadHandler(downloadService *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{
		downloadService: downloadService,
	}
}

// Entitlement 查询下载资格（不扣费）
// GET /api/v1/resources/files/:id/entitlement
func (h *DownloadHandler) Entitlement(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "文件 ID 无效")
		return
	}

	info, err := h.downloadService.Entitlement(fileID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, info)
}

// Download 鉴权并扣费，成功返回签名下载链接
// POST /api/v1/resources/files/:id/download
func (h *DownloadHandler) Download(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "文件 ID 无效")
		return
	}

	result, err := h.downloadService.EvaluateAndCharge(c.Request.Context(), fileID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !result.Allowed {
		response.PermissionError(c, result.Reason)
		return
	}

	response.Success(c, result)
}

// GetResource 资源详情
// GET /api/v1/resources/:id
func (h *DownloadHandler) GetResource(c *gin.Context) {
	resourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "资源 ID 无效")
		return
	}

	info, err := h.downloadService.GetResource(resourceID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, info)
}

func (h *DownloadHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFileNotFound), errors.Is(err, service.ErrResourceNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrPaymentConflict):
		response.PaymentError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
