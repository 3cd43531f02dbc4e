package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/internal/services"
	"github.com/visitor_management/pkg/utils"
)

// VisitorHandler 封装了访客相关的 HTTP 处理逻辑
type VisitorHandler struct {
	service      services.VisitorService
	kioskService services.KioskService
}

// NewVisitorHandler 创建一个新的 VisitorHandler 实例
func NewVisitorHandler(service services.VisitorService, kioskService services.KioskService) *VisitorHandler {
	return &VisitorHandler{service: service, kioskService: kioskService}
}

// RegisterVisitorPayload 定义了访客登记请求的 JSON 结构体
type RegisterVisitorPayload struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Purpose         string  `json:"purpose" binding:"required,max=255"`
	PersonToVisit   *string `json:"personToVisit,omitempty" binding:"omitempty,max=255"`
	DestinationID   *int64  `json:"destinationId,omitempty"`
	Destinations    string  `json:"destinations"` // 目的地ID的JSON数组字符串
	DestinationName *string `json:"destinationName,omitempty" binding:"omitempty,max=255"`
	Rfid            *string `json:"rfid,omitempty" binding:"omitempty,max=100"`
	PassNumber      *string `json:"passNumber,omitempty" binding:"omitempty,max=100"`
	PhotoImage      *string `json:"photoImage,omitempty"`  // base64 Data URL
	IDScanImage     *string `json:"idScanImage,omitempty"` // base64 Data URL
	IDOcrText       *string `json:"idOcrText,omitempty"`
}

// RegisterVisitor godoc
// @Summary 登记新访客
// @Description 创建一条 registered 状态的访客登记记录。RFID 卡不能已绑定在未离场的访客或在职员工身上。
// @Tags Visitors
// @Accept json
// @Produce json
// @Param visitor body RegisterVisitorPayload true "访客信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Visitor} "创建成功的访客记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或RFID卡已被占用"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors [post]
func (h *VisitorHandler) RegisterVisitor(c *gin.Context) {
	var payload RegisterVisitorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	visitor, err := h.service.RegisterVisitor(&services.VisitorRegistration{
		Name:            payload.Name,
		Purpose:         payload.Purpose,
		PersonToVisit:   payload.PersonToVisit,
		DestinationID:   payload.DestinationID,
		Destinations:    payload.Destinations,
		DestinationName: payload.DestinationName,
		Rfid:            payload.Rfid,
		PassNumber:      payload.PassNumber,
		PhotoImage:      payload.PhotoImage,
		IDScanImage:     payload.IDScanImage,
		IDOcrText:       payload.IDOcrText,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRfidInUseByVisitor), errors.Is(err, services.ErrRfidInUseByEmployee):
			utils.RespondRfidConflictError(c, err.Error())
		case errors.Is(err, utils.ErrInvalidRfidFormat):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "访客登记失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, visitor, "访客登记成功")
}

// GetVisitors godoc
// @Summary 获取访客列表
// @Description 按时间范围查询访客。停留时段与 [startDate, endDate] 有交集的记录都会返回，未入场的 registered 记录始终返回。不带参数时返回全部。
// @Tags Visitors
// @Accept json
// @Produce json
// @Param startDate query string false "范围开始 (YYYY-MM-DD)"
// @Param endDate query string false "范围结束 (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse{data=[]models.Visitor} "访客列表"
// @Failure 400 {object} utils.APIErrorResponse "日期格式错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors [get]
func (h *VisitorHandler) GetVisitors(c *gin.Context) {
	type GetVisitorsQuery struct {
		StartDate string `form:"startDate"`
		EndDate   string `form:"endDate"`
	}

	var queryParams GetVisitorsQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var startDate, endDate *time.Time
	if queryParams.StartDate != "" && queryParams.EndDate != "" {
		start, err := utils.ParseDate(queryParams.StartDate)
		if err != nil {
			utils.RespondValidationError(c, err.Error())
			return
		}
		end, err := utils.ParseDate(queryParams.EndDate)
		if err != nil {
			utils.RespondValidationError(c, err.Error())
			return
		}
		// 结束日期取当天末尾，保证整天都在范围内
		end = end.Add(24*time.Hour - time.Nanosecond)
		startDate, endDate = &start, &end
	}

	visitors, err := h.service.GetVisitors(startDate, endDate)
	if err != nil {
		utils.RespondInternalServerError(c, "获取访客列表失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, visitors, "访客列表获取成功")
}

// GetActiveVisitors godoc
// @Summary 获取当前在楼内的访客
// @Tags Visitors
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Visitor} "在楼访客列表"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors/active [get]
func (h *VisitorHandler) GetActiveVisitors(c *gin.Context) {
	visitors, err := h.service.GetActiveVisitors()
	if err != nil {
		utils.RespondInternalServerError(c, "获取在楼访客失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visitors, "在楼访客获取成功")
}

// GetVisitorByID godoc
// @Summary 获取指定ID的访客详情
// @Tags Visitors
// @Produce json
// @Param id path int true "访客数据库ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Visitor} "访客详情"
// @Failure 404 {object} utils.APIErrorResponse "访客未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors/{id} [get]
func (h *VisitorHandler) GetVisitorByID(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	visitor, err := h.service.GetVisitorByID(uri.ID)
	if err != nil {
		if errors.Is(err, services.ErrVisitorNotFound) {
			utils.RespondNotFoundError(c, "访客")
		} else {
			utils.RespondInternalServerError(c, "获取访客详情失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visitor, "访客详情获取成功")
}

// GetVisitorByRfid godoc
// @Summary 查询持有此RFID卡且尚未离场的访客
// @Tags Visitors
// @Produce json
// @Param rfid path string true "RFID卡号"
// @Success 200 {object} utils.SuccessResponse{data=models.Visitor} "访客详情"
// @Failure 404 {object} utils.APIErrorResponse "访客未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors/rfid/{rfid} [get]
func (h *VisitorHandler) GetVisitorByRfid(c *gin.Context) {
	rfid := c.Param("rfid")

	visitor, err := h.service.GetVisitorByRfid(rfid)
	if err != nil {
		if errors.Is(err, services.ErrVisitorNotFound) {
			utils.RespondNotFoundError(c, "访客")
		} else {
			utils.RespondInternalServerError(c, "查询访客失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visitor, "访客查询成功")
}

// CheckIn godoc
// @Summary 访客刷卡入场
// @Description 将一条尚未入场的登记记录流转为 checked_in 并记录入场时间。
// @Tags Visitors
// @Accept json
// @Produce json
// @Param payload body RfidPayload true "RFID卡号"
// @Success 200 {object} utils.SuccessResponse{data=models.Visitor} "入场后的访客记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "没有与此卡对应的待入场登记"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors/check-in [post]
func (h *VisitorHandler) CheckIn(c *gin.Context) {
	var payload RfidPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	visitor, err := h.service.CheckIn(payload.Rfid)
	if err != nil {
		if errors.Is(err, repositories.ErrVisitorNotFound) {
			utils.RespondNotFoundError(c, "与此卡对应的待入场访客")
		} else {
			utils.RespondInternalServerError(c, "访客入场失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visitor, "访客入场成功")
}

// CheckOut godoc
// @Summary 访客刷卡离场
// @Description 将一条已入场未离场的记录流转为 checked_out，并释放其占用的通行证。
// @Tags Visitors
// @Accept json
// @Produce json
// @Param payload body RfidPayload true "RFID卡号"
// @Success 200 {object} utils.SuccessResponse{data=models.Visitor} "离场后的访客记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "没有与此卡对应的在场访客"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors/check-out [post]
func (h *VisitorHandler) CheckOut(c *gin.Context) {
	var payload RfidPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	visitor, err := h.service.CheckOut(payload.Rfid)
	if err != nil {
		if errors.Is(err, repositories.ErrVisitorNotFound) {
			utils.RespondNotFoundError(c, "与此卡对应的在场访客")
		} else {
			utils.RespondInternalServerError(c, "访客离场失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, visitor, "访客离场成功")
}

// Kiosk godoc
// @Summary 门亭刷卡
// @Description 统一的刷卡入口：员工卡走考勤签到/签退切换，访客卡先尝试入场、再尝试离场。
// @Tags Kiosk
// @Accept json
// @Produce json
// @Param payload body RfidPayload true "RFID卡号"
// @Success 200 {object} utils.SuccessResponse{data=services.KioskResult} "刷卡处理结果"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "没有与此卡对应的人员记录"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors/kiosk [post]
func (h *VisitorHandler) Kiosk(c *gin.Context) {
	var payload RfidPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.kioskService.ProcessScan(payload.Rfid)
	if err != nil {
		if errors.Is(err, services.ErrRfidNotRecognized) {
			utils.RespondNotFoundError(c, "与此卡对应的人员记录")
		} else {
			utils.RespondInternalServerError(c, "门亭刷卡处理失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, result, "刷卡处理成功")
}

// DeleteVisitor godoc
// @Summary 删除指定ID的访客记录
// @Tags Visitors
// @Produce json
// @Param id path int true "访客数据库ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "访客未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /visitors/{id} [delete]
func (h *VisitorHandler) DeleteVisitor(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.service.DeleteVisitor(uri.ID); err != nil {
		if errors.Is(err, services.ErrVisitorNotFound) {
			utils.RespondNotFoundError(c, "访客")
		} else {
			utils.RespondInternalServerError(c, "删除访客失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "访客删除成功")
}
