package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/email"
	"github.com/visitor_management/pkg/utils"
)

// ScheduledVisitHandler 封装了预约来访相关的 HTTP 处理逻辑
type ScheduledVisitHandler struct {
	repo repositories.ScheduledVisitRepository
}

// NewScheduledVisitHandler 创建一个新的 ScheduledVisitHandler 实例
func NewScheduledVisitHandler(repo repositories.ScheduledVisitRepository) *ScheduledVisitHandler {
	return &ScheduledVisitHandler{repo: repo}
}

// ScheduledVisitPayload 定义了创建预约来访请求的 JSON 结构体
type ScheduledVisitPayload struct {
	VisitorName     string  `json:"visitorName" binding:"required,max=255"`
	VisitorEmail    *string `json:"visitorEmail,omitempty" binding:"omitempty,email,max=255"`
	VisitorPhone    *string `json:"visitorPhone,omitempty" binding:"omitempty,max=50"`
	DestinationID   *int64  `json:"destinationId,omitempty"`
	DestinationName *string `json:"destinationName,omitempty" binding:"omitempty,max=255"`
	HostName        string  `json:"hostName" binding:"required,max=255"`
	Purpose         string  `json:"purpose" binding:"required,max=255"`
	ExpectedDate    string  `json:"expectedDate" binding:"required"` // YYYY-MM-DD 或 RFC3339
	Notes           *string `json:"notes,omitempty"`
}

// UpdateScheduledVisitPayload 定义了更新预约来访请求的 JSON 结构体，所有字段可选
type UpdateScheduledVisitPayload struct {
	VisitorName     *string `json:"visitorName,omitempty" binding:"omitempty,max=255"`
	VisitorEmail    *string `json:"visitorEmail,omitempty" binding:"omitempty,email,max=255"`
	VisitorPhone    *string `json:"visitorPhone,omitempty" binding:"omitempty,max=50"`
	DestinationID   *int64  `json:"destinationId,omitempty"`
	DestinationName *string `json:"destinationName,omitempty" binding:"omitempty,max=255"`
	HostName        *string `json:"hostName,omitempty" binding:"omitempty,max=255"`
	Purpose         *string `json:"purpose,omitempty" binding:"omitempty,max=255"`
	ExpectedDate    *string `json:"expectedDate,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          *string `json:"status,omitempty"` // pending / confirmed / cancelled / arrived
}

// CreateScheduledVisit godoc
// @Summary 创建预约来访
// @Tags ScheduledVisits
// @Accept json
// @Produce json
// @Param visit body ScheduledVisitPayload true "预约信息"
// @Success 201 {object} utils.SuccessResponse{data=models.ScheduledVisit} "创建成功的预约"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /scheduled-visits [post]
func (h *ScheduledVisitHandler) CreateScheduledVisit(c *gin.Context) {
	var payload ScheduledVisitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	expectedDate, err := utils.ParseDate(payload.ExpectedDate)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	visit := &models.ScheduledVisit{
		VisitorName:     payload.VisitorName,
		VisitorEmail:    payload.VisitorEmail,
		VisitorPhone:    payload.VisitorPhone,
		DestinationID:   payload.DestinationID,
		DestinationName: payload.DestinationName,
		HostName:        payload.HostName,
		Purpose:         payload.Purpose,
		ExpectedDate:    expectedDate,
		Notes:           payload.Notes,
		Status:          models.ScheduledVisitStatusPending,
	}

	created, err := h.repo.CreateScheduledVisit(visit)
	if err != nil {
		utils.RespondInternalServerError(c, "创建预约来访失败", err.Error())
		return
	}

	// 访客留了邮箱就发一封预约确认邮件。邮件失败不影响预约本身。
	if created.VisitorEmail != nil && *created.VisitorEmail != "" {
		destination := ""
		if created.DestinationName != nil {
			destination = *created.DestinationName
		}
		if err := email.SendScheduledVisitEmail(*created.VisitorEmail, created.VisitorName, created.HostName, destination, created.ExpectedDate); err != nil {
			log.Printf("预约确认邮件发送失败 (visit id=%d): %v", created.ID, err)
		}
	}

	utils.RespondSuccess(c, http.StatusCreated, created, "预约来访创建成功")
}

// GetScheduledVisits godoc
// @Summary 获取预约来访列表
// @Description 带 startDate/endDate 时按预计来访时间过滤，不带时返回全部。
// @Tags ScheduledVisits
// @Produce json
// @Param startDate query string false "范围开始 (YYYY-MM-DD)"
// @Param endDate query string false "范围结束 (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse{data=[]models.ScheduledVisit} "预约列表"
// @Failure 400 {object} utils.APIErrorResponse "日期格式错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /scheduled-visits [get]
func (h *ScheduledVisitHandler) GetScheduledVisits(c *gin.Context) {
	var startDate, endDate *time.Time
	if startStr, endStr := c.Query("startDate"), c.Query("endDate"); startStr != "" && endStr != "" {
		start, err := utils.ParseDate(startStr)
		if err != nil {
			utils.RespondValidationError(c, err.Error())
			return
		}
		end, err := utils.ParseDate(endStr)
		if err != nil {
			utils.RespondValidationError(c, err.Error())
			return
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		startDate, endDate = &start, &end
	}

	visits, err := h.repo.GetScheduledVisits(startDate, endDate)
	if err != nil {
		utils.RespondInternalServerError(c, "获取预约来访列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visits, "预约来访列表获取成功")
}

// GetScheduledVisitByID godoc
// @Summary 获取指定ID的预约来访
// @Tags ScheduledVisits
// @Produce json
// @Param id path int true "预约ID"
// @Success 200 {object} utils.SuccessResponse{data=models.ScheduledVisit} "预约详情"
// @Failure 404 {object} utils.APIErrorResponse "预约未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /scheduled-visits/{id} [get]
func (h *ScheduledVisitHandler) GetScheduledVisitByID(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	visit, err := h.repo.GetScheduledVisitByID(uri.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "预约来访")
		} else {
			utils.RespondInternalServerError(c, "获取预约来访失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visit, "预约来访获取成功")
}

// UpdateScheduledVisit godoc
// @Summary 更新指定ID的预约来访
// @Tags ScheduledVisits
// @Accept json
// @Produce json
// @Param id path int true "预约ID"
// @Param visit body UpdateScheduledVisitPayload true "要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.ScheduledVisit} "更新后的预约"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "预约未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /scheduled-visits/{id} [put]
func (h *ScheduledVisitHandler) UpdateScheduledVisit(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload UpdateScheduledVisitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if payload.VisitorName != nil {
		updates["visitor_name"] = *payload.VisitorName
	}
	if payload.VisitorEmail != nil {
		updates["visitor_email"] = *payload.VisitorEmail
	}
	if payload.VisitorPhone != nil {
		updates["visitor_phone"] = *payload.VisitorPhone
	}
	if payload.DestinationID != nil {
		updates["destination_id"] = *payload.DestinationID
	}
	if payload.DestinationName != nil {
		updates["destination_name"] = *payload.DestinationName
	}
	if payload.HostName != nil {
		updates["host_name"] = *payload.HostName
	}
	if payload.Purpose != nil {
		updates["purpose"] = *payload.Purpose
	}
	if payload.ExpectedDate != nil {
		expectedDate, err := utils.ParseDate(*payload.ExpectedDate)
		if err != nil {
			utils.RespondValidationError(c, err.Error())
			return
		}
		updates["expected_date"] = expectedDate
	}
	if payload.Notes != nil {
		updates["notes"] = *payload.Notes
	}
	if payload.Status != nil {
		if !models.IsValidScheduledVisitStatus(*payload.Status) {
			utils.RespondValidationError(c, "预约状态值非法")
			return
		}
		updates["status"] = *payload.Status
	}
	if len(updates) == 0 {
		utils.RespondValidationError(c, "请求体中没有可更新的字段")
		return
	}

	visit, err := h.repo.UpdateScheduledVisit(uri.ID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "预约来访")
		} else {
			utils.RespondInternalServerError(c, "更新预约来访失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visit, "预约来访更新成功")
}

// DeleteScheduledVisit godoc
// @Summary 删除指定ID的预约来访
// @Tags ScheduledVisits
// @Produce json
// @Param id path int true "预约ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "预约未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /scheduled-visits/{id} [delete]
func (h *ScheduledVisitHandler) DeleteScheduledVisit(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.repo.DeleteScheduledVisit(uri.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "预约来访")
		} else {
			utils.RespondInternalServerError(c, "删除预约来访失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "预约来访删除成功")
}
