package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/utils"
)

// SettingHandler 封装了站点配置相关的 HTTP 处理逻辑
type SettingHandler struct {
	repo repositories.SettingRepository
}

// NewSettingHandler 创建一个新的 SettingHandler 实例
func NewSettingHandler(repo repositories.SettingRepository) *SettingHandler {
	return &SettingHandler{repo: repo}
}

// UpsertSettingPayload 定义了写入配置项请求的 JSON 结构体
type UpsertSettingPayload struct {
	Key   string `json:"key" binding:"required,max=255"`
	Value string `json:"value" binding:"required"`
}

// GetSettings godoc
// @Summary 获取所有配置项
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Setting} "配置项列表"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /settings [get]
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.repo.GetSettings()
	if err != nil {
		utils.RespondInternalServerError(c, "获取配置项失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, settings, "配置项获取成功")
}

// GetSettingByKey godoc
// @Summary 获取指定键的配置项
// @Tags Settings
// @Produce json
// @Param key path string true "配置键"
// @Success 200 {object} utils.SuccessResponse{data=models.Setting} "配置项"
// @Failure 404 {object} utils.APIErrorResponse "配置项未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /settings/{key} [get]
func (h *SettingHandler) GetSettingByKey(c *gin.Context) {
	key := c.Param("key")

	setting, err := h.repo.GetSettingByKey(key)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "配置项")
		} else {
			utils.RespondInternalServerError(c, "获取配置项失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, setting, "配置项获取成功")
}

// UpsertSetting godoc
// @Summary 写入配置项
// @Description 按键写入：键已存在则更新值，否则创建新配置项。
// @Tags Settings
// @Accept json
// @Produce json
// @Param setting body UpsertSettingPayload true "配置项"
// @Success 200 {object} utils.SuccessResponse{data=models.Setting} "写入后的配置项"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /settings [post]
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	var payload UpsertSettingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	setting, err := h.repo.UpsertSetting(payload.Key, payload.Value)
	if err != nil {
		utils.RespondInternalServerError(c, "写入配置项失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, setting, "配置项写入成功")
}
