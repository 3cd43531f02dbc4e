package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/services"
	"github.com/visitor_management/pkg/utils"
)

// NotificationHandler 封装了到访通知与审批相关的 HTTP 处理逻辑
type NotificationHandler struct {
	service services.NotificationService
}

// NewNotificationHandler 创建一个新的 NotificationHandler 实例
func NewNotificationHandler(service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// SendNotificationPayload 定义了发送到访通知请求的 JSON 结构体
type SendNotificationPayload struct {
	ContactID   int64  `json:"contactId" binding:"required,min=1"`
	VisitorID   *int64 `json:"visitorId,omitempty"` // 带上访客ID会为其签发一次性审批令牌
	VisitorName string `json:"visitorName" binding:"required,max=255"`
	Destination string `json:"destination" binding:"required,max=255"`
	Purpose     string `json:"purpose" binding:"required,max=255"`
}

// ApprovalResponsePayload 定义了审批响应请求的 JSON 结构体
type ApprovalResponsePayload struct {
	Response string `json:"response" binding:"required"` // approved 或 denied
}

// SendNotification godoc
// @Summary 通知员工访客已到访
// @Description 向联系人发送到访短信。请求带 visitorId 时为该访客签发一次性审批令牌并在短信中附审批链接。
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body SendNotificationPayload true "通知内容"
// @Success 200 {object} utils.SuccessResponse{data=services.NotificationResult} "通知发送结果"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "联系人或访客未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /notifications [post]
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var payload SendNotificationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.service.SendNotification(&services.NotificationRequest{
		ContactID:   payload.ContactID,
		VisitorID:   payload.VisitorID,
		VisitorName: payload.VisitorName,
		Destination: payload.Destination,
		Purpose:     payload.Purpose,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContactNotFound):
			utils.RespondNotFoundError(c, "联系人")
		case errors.Is(err, services.ErrVisitorNotFound):
			utils.RespondNotFoundError(c, "访客")
		default:
			utils.RespondInternalServerError(c, "发送到访通知失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusOK, result, "到访通知已发送")
}

// GetApprovalInfo godoc
// @Summary 按审批令牌查询待审批访客摘要
// @Description 员工点开短信里的审批链接时，前端用此接口展示访客信息。
// @Tags Notifications
// @Produce json
// @Param token path string true "一次性审批令牌"
// @Success 200 {object} utils.SuccessResponse{data=services.ApprovalInfo} "待审批访客摘要"
// @Failure 404 {object} utils.APIErrorResponse "审批不存在或链接已失效"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /approvals/{token} [get]
func (h *NotificationHandler) GetApprovalInfo(c *gin.Context) {
	token := c.Param("token")

	info, err := h.service.GetApprovalInfo(token)
	if err != nil {
		if errors.Is(err, services.ErrApprovalNotFound) {
			utils.RespondNotFoundError(c, "访客审批")
		} else {
			utils.RespondInternalServerError(c, "查询访客审批失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, info, "访客审批查询成功")
}

// RespondToApproval godoc
// @Summary 响应访客审批
// @Description 消费一次性令牌并记录 approved/denied。令牌消费后即失效，重复提交返回 400。
// @Tags Notifications
// @Accept json
// @Produce json
// @Param token path string true "一次性审批令牌"
// @Param payload body ApprovalResponsePayload true "审批响应"
// @Success 200 {object} utils.SuccessResponse{data=models.Visitor} "记录响应后的访客"
// @Failure 400 {object} utils.APIErrorResponse "响应值非法或审批已被响应过"
// @Failure 404 {object} utils.APIErrorResponse "审批不存在或链接已失效"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /approvals/{token}/respond [post]
func (h *NotificationHandler) RespondToApproval(c *gin.Context) {
	token := c.Param("token")

	var payload ApprovalResponsePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if !models.IsValidApprovalResponse(payload.Response) {
		utils.RespondValidationError(c, "响应值只能是 approved 或 denied")
		return
	}

	visitor, err := h.service.RespondToApproval(token, models.ApprovalStatus(payload.Response))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApprovalNotFound):
			utils.RespondNotFoundError(c, "访客审批")
		case errors.Is(err, services.ErrAlreadyResponded):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "提交审批响应失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visitor, "审批响应已记录")
}
