package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/utils"
)

// StaffContactHandler 封装了通知联系人相关的 HTTP 处理逻辑
type StaffContactHandler struct {
	repo repositories.StaffContactRepository
}

// NewStaffContactHandler 创建一个新的 StaffContactHandler 实例
func NewStaffContactHandler(repo repositories.StaffContactRepository) *StaffContactHandler {
	return &StaffContactHandler{repo: repo}
}

// StaffContactPayload 定义了创建联系人请求的 JSON 结构体
type StaffContactPayload struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Department   *string `json:"department,omitempty" binding:"omitempty,max=255"`
	MobileNumber string  `json:"mobileNumber" binding:"required,max=50"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// UpdateStaffContactPayload 定义了更新联系人请求的 JSON 结构体，所有字段可选
type UpdateStaffContactPayload struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Department   *string `json:"department,omitempty" binding:"omitempty,max=255"`
	MobileNumber *string `json:"mobileNumber,omitempty" binding:"omitempty,max=50"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// CreateStaffContact godoc
// @Summary 创建通知联系人
// @Tags StaffContacts
// @Accept json
// @Produce json
// @Param contact body StaffContactPayload true "联系人信息"
// @Success 201 {object} utils.SuccessResponse{data=models.StaffContact} "创建成功的联系人"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /staff-contacts [post]
func (h *StaffContactHandler) CreateStaffContact(c *gin.Context) {
	var payload StaffContactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	contact := &models.StaffContact{
		Name:         payload.Name,
		Department:   payload.Department,
		MobileNumber: payload.MobileNumber,
		Email:        payload.Email,
		IsActive:     true,
	}
	if payload.IsActive != nil {
		contact.IsActive = *payload.IsActive
	}

	created, err := h.repo.CreateStaffContact(contact)
	if err != nil {
		utils.RespondInternalServerError(c, "创建联系人失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "联系人创建成功")
}

// GetStaffContacts godoc
// @Summary 获取所有通知联系人
// @Tags StaffContacts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.StaffContact} "联系人列表"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /staff-contacts [get]
func (h *StaffContactHandler) GetStaffContacts(c *gin.Context) {
	contacts, err := h.repo.GetStaffContacts()
	if err != nil {
		utils.RespondInternalServerError(c, "获取联系人列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, contacts, "联系人列表获取成功")
}

// GetStaffContactByID godoc
// @Summary 获取指定ID的通知联系人
// @Tags StaffContacts
// @Produce json
// @Param id path int true "联系人ID"
// @Success 200 {object} utils.SuccessResponse{data=models.StaffContact} "联系人详情"
// @Failure 404 {object} utils.APIErrorResponse "联系人未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /staff-contacts/{id} [get]
func (h *StaffContactHandler) GetStaffContactByID(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	contact, err := h.repo.GetStaffContactByID(uri.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "联系人")
		} else {
			utils.RespondInternalServerError(c, "获取联系人失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, contact, "联系人获取成功")
}

// UpdateStaffContact godoc
// @Summary 更新指定ID的通知联系人
// @Tags StaffContacts
// @Accept json
// @Produce json
// @Param id path int true "联系人ID"
// @Param contact body UpdateStaffContactPayload true "要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.StaffContact} "更新后的联系人"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "联系人未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /staff-contacts/{id} [put]
func (h *StaffContactHandler) UpdateStaffContact(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload UpdateStaffContactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Department != nil {
		updates["department"] = *payload.Department
	}
	if payload.MobileNumber != nil {
		updates["mobile_number"] = *payload.MobileNumber
	}
	if payload.Email != nil {
		updates["email"] = *payload.Email
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if len(updates) == 0 {
		utils.RespondValidationError(c, "请求体中没有可更新的字段")
		return
	}

	contact, err := h.repo.UpdateStaffContact(uri.ID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "联系人")
		} else {
			utils.RespondInternalServerError(c, "更新联系人失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, contact, "联系人更新成功")
}

// DeleteStaffContact godoc
// @Summary 删除指定ID的通知联系人
// @Tags StaffContacts
// @Produce json
// @Param id path int true "联系人ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "联系人未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /staff-contacts/{id} [delete]
func (h *StaffContactHandler) DeleteStaffContact(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.repo.DeleteStaffContact(uri.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "联系人")
		} else {
			utils.RespondInternalServerError(c, "删除联系人失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "联系人删除成功")
}
