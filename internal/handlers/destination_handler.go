package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/utils"
)

// DestinationHandler 封装了到访地点相关的 HTTP 处理逻辑。
// 简单 CRUD 没有领域逻辑，直接调用仓库层。
type DestinationHandler struct {
	repo repositories.DestinationRepository
}

// NewDestinationHandler 创建一个新的 DestinationHandler 实例
func NewDestinationHandler(repo repositories.DestinationRepository) *DestinationHandler {
	return &DestinationHandler{repo: repo}
}

// DestinationPayload 定义了创建到访地点请求的 JSON 结构体
type DestinationPayload struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Floor       *string `json:"floor,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateDestinationPayload 定义了更新到访地点请求的 JSON 结构体，所有字段可选
type UpdateDestinationPayload struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Floor       *string `json:"floor,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateDestination godoc
// @Summary 创建到访地点
// @Tags Destinations
// @Accept json
// @Produce json
// @Param destination body DestinationPayload true "地点信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Destination} "创建成功的地点"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /destinations [post]
func (h *DestinationHandler) CreateDestination(c *gin.Context) {
	var payload DestinationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	destination := &models.Destination{
		Name:        payload.Name,
		Floor:       payload.Floor,
		Description: payload.Description,
		IsActive:    true,
	}
	if payload.IsActive != nil {
		destination.IsActive = *payload.IsActive
	}

	created, err := h.repo.CreateDestination(destination)
	if err != nil {
		utils.RespondInternalServerError(c, "创建到访地点失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "到访地点创建成功")
}

// GetDestinations godoc
// @Summary 获取所有到访地点
// @Tags Destinations
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Destination} "地点列表"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /destinations [get]
func (h *DestinationHandler) GetDestinations(c *gin.Context) {
	destinations, err := h.repo.GetDestinations()
	if err != nil {
		utils.RespondInternalServerError(c, "获取到访地点列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, destinations, "到访地点列表获取成功")
}

// GetDestinationByID godoc
// @Summary 获取指定ID的到访地点
// @Tags Destinations
// @Produce json
// @Param id path int true "地点ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Destination} "地点详情"
// @Failure 404 {object} utils.APIErrorResponse "地点未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /destinations/{id} [get]
func (h *DestinationHandler) GetDestinationByID(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	destination, err := h.repo.GetDestinationByID(uri.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "到访地点")
		} else {
			utils.RespondInternalServerError(c, "获取到访地点失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, destination, "到访地点获取成功")
}

// UpdateDestination godoc
// @Summary 更新指定ID的到访地点
// @Tags Destinations
// @Accept json
// @Produce json
// @Param id path int true "地点ID"
// @Param destination body UpdateDestinationPayload true "要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Destination} "更新后的地点"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "地点未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /destinations/{id} [put]
func (h *DestinationHandler) UpdateDestination(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload UpdateDestinationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Floor != nil {
		updates["floor"] = *payload.Floor
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if len(updates) == 0 {
		utils.RespondValidationError(c, "请求体中没有可更新的字段")
		return
	}

	destination, err := h.repo.UpdateDestination(uri.ID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "到访地点")
		} else {
			utils.RespondInternalServerError(c, "更新到访地点失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, destination, "到访地点更新成功")
}

// DeleteDestination godoc
// @Summary 删除指定ID的到访地点
// @Tags Destinations
// @Produce json
// @Param id path int true "地点ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "地点未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /destinations/{id} [delete]
func (h *DestinationHandler) DeleteDestination(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.repo.DeleteDestination(uri.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "到访地点")
		} else {
			utils.RespondInternalServerError(c, "删除到访地点失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "到访地点删除成功")
}
