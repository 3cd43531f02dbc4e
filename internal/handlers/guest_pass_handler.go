package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/utils"
)

// GuestPassHandler 封装了访客通行证相关的 HTTP 处理逻辑
type GuestPassHandler struct {
	repo repositories.GuestPassRepository
}

// NewGuestPassHandler 创建一个新的 GuestPassHandler 实例
func NewGuestPassHandler(repo repositories.GuestPassRepository) *GuestPassHandler {
	return &GuestPassHandler{repo: repo}
}

// GuestPassPayload 定义了创建通行证请求的 JSON 结构体
type GuestPassPayload struct {
	PassNumber  string  `json:"passNumber" binding:"required,max=100"`
	QrCode      *string `json:"qrCode,omitempty" binding:"omitempty,max=255"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

// UpdateGuestPassPayload 定义了更新通行证请求的 JSON 结构体，所有字段可选
type UpdateGuestPassPayload struct {
	QrCode      *string `json:"qrCode,omitempty" binding:"omitempty,max=255"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

// GeneratePassesPayload 定义了批量生成通行证请求的 JSON 结构体
type GeneratePassesPayload struct {
	Count int `json:"count" binding:"required,min=1,max=100"`
}

// CreateGuestPass godoc
// @Summary 创建单张通行证
// @Tags GuestPasses
// @Accept json
// @Produce json
// @Param pass body GuestPassPayload true "通行证信息"
// @Success 201 {object} utils.SuccessResponse{data=models.GuestPass} "创建成功的通行证"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或编号已存在"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /guest-passes [post]
func (h *GuestPassHandler) CreateGuestPass(c *gin.Context) {
	var payload GuestPassPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	pass := &models.GuestPass{
		PassNumber:  payload.PassNumber,
		QrCode:      payload.QrCode,
		IsAvailable: true,
	}
	if payload.IsAvailable != nil {
		pass.IsAvailable = *payload.IsAvailable
	}

	created, err := h.repo.CreateGuestPass(pass)
	if err != nil {
		if errors.Is(err, repositories.ErrPassNumberExists) {
			utils.RespondValidationError(c, err.Error())
		} else {
			utils.RespondInternalServerError(c, "创建通行证失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "通行证创建成功")
}

// GetGuestPasses godoc
// @Summary 获取所有通行证
// @Tags GuestPasses
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.GuestPass} "通行证列表"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /guest-passes [get]
func (h *GuestPassHandler) GetGuestPasses(c *gin.Context) {
	passes, err := h.repo.GetGuestPasses()
	if err != nil {
		utils.RespondInternalServerError(c, "获取通行证列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, passes, "通行证列表获取成功")
}

// GetGuestPassByID godoc
// @Summary 获取指定ID的通行证
// @Tags GuestPasses
// @Produce json
// @Param id path int true "通行证ID"
// @Success 200 {object} utils.SuccessResponse{data=models.GuestPass} "通行证详情"
// @Failure 404 {object} utils.APIErrorResponse "通行证未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /guest-passes/{id} [get]
func (h *GuestPassHandler) GetGuestPassByID(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	pass, err := h.repo.GetGuestPassByID(uri.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "通行证")
		} else {
			utils.RespondInternalServerError(c, "获取通行证失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, pass, "通行证获取成功")
}

// UpdateGuestPass godoc
// @Summary 更新指定ID的通行证
// @Description 通行证编号不可修改，可更新二维码内容或手动归还/占用可用状态。
// @Tags GuestPasses
// @Accept json
// @Produce json
// @Param id path int true "通行证ID"
// @Param pass body UpdateGuestPassPayload true "要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.GuestPass} "更新后的通行证"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "通行证未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /guest-passes/{id} [put]
func (h *GuestPassHandler) UpdateGuestPass(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload UpdateGuestPassPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if payload.QrCode != nil {
		updates["qr_code"] = *payload.QrCode
	}
	if payload.IsAvailable != nil {
		updates["is_available"] = *payload.IsAvailable
	}
	if len(updates) == 0 {
		utils.RespondValidationError(c, "请求体中没有可更新的字段")
		return
	}

	pass, err := h.repo.UpdateGuestPass(uri.ID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "通行证")
		} else {
			utils.RespondInternalServerError(c, "更新通行证失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, pass, "通行证更新成功")
}

// DeleteGuestPass godoc
// @Summary 删除指定ID的通行证
// @Tags GuestPasses
// @Produce json
// @Param id path int true "通行证ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "通行证未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /guest-passes/{id} [delete]
func (h *GuestPassHandler) DeleteGuestPass(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.repo.DeleteGuestPass(uri.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "通行证")
		} else {
			utils.RespondInternalServerError(c, "删除通行证失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "通行证删除成功")
}

// GenerateGuestPasses godoc
// @Summary 批量生成通行证
// @Description 生成指定数量的通行证放入可用池，编号形如 V0001，与已有编号不重复。
// @Tags GuestPasses
// @Accept json
// @Produce json
// @Param payload body GeneratePassesPayload true "生成数量"
// @Success 201 {object} utils.SuccessResponse{data=[]models.GuestPass} "新生成的通行证"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "可用编号不足或服务器内部错误"
// @Router /guest-passes/generate [post]
func (h *GuestPassHandler) GenerateGuestPasses(c *gin.Context) {
	var payload GeneratePassesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	passes, err := h.repo.GenerateGuestPasses(payload.Count)
	if err != nil {
		utils.RespondInternalServerError(c, "批量生成通行证失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, passes, "通行证批量生成成功")
}
