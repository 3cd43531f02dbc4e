package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/internal/services"
	"github.com/visitor_management/pkg/utils"
)

// EmployeeHandler 封装了员工相关的 HTTP 处理逻辑
type EmployeeHandler struct {
	service services.EmployeeService
}

// NewEmployeeHandler 创建一个新的 EmployeeHandler 实例
func NewEmployeeHandler(service services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// RegisterEmployeePayload 定义了员工登记请求的 JSON 结构体
type RegisterEmployeePayload struct {
	EmployeeID  string  `json:"employeeId" binding:"required,max=100"`
	Name        string  `json:"name" binding:"required,max=255"`
	Department  *string `json:"department,omitempty" binding:"omitempty,max=255"`
	Position    *string `json:"position,omitempty" binding:"omitempty,max=255"`
	Rfid        *string `json:"rfid,omitempty" binding:"omitempty,max=100"`
	PhotoImage  *string `json:"photoImage,omitempty"`  // base64 Data URL
	IDScanImage *string `json:"idScanImage,omitempty"` // base64 Data URL
}

// UpdateEmployeePayload 定义了员工更新请求的 JSON 结构体，所有字段可选
type UpdateEmployeePayload struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Department *string `json:"department,omitempty" binding:"omitempty,max=255"`
	Position   *string `json:"position,omitempty" binding:"omitempty,max=255"`
	Rfid       *string `json:"rfid,omitempty" binding:"omitempty,max=100"`
	IsActive   *bool   `json:"isActive,omitempty"`
}

// RegisterEmployee godoc
// @Summary 登记新员工
// @Description 创建一名在职员工。工号必须唯一，RFID 卡不能已绑定在未离场的访客或在职员工身上。
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee body RegisterEmployeePayload true "员工信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Employee} "创建成功的员工记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误、工号已存在或RFID卡已被占用"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees [post]
func (h *EmployeeHandler) RegisterEmployee(c *gin.Context) {
	var payload RegisterEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	employee, err := h.service.RegisterEmployee(&services.EmployeeRegistration{
		EmployeeID:  payload.EmployeeID,
		Name:        payload.Name,
		Department:  payload.Department,
		Position:    payload.Position,
		Rfid:        payload.Rfid,
		PhotoImage:  payload.PhotoImage,
		IDScanImage: payload.IDScanImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmployeeIDExists):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrRfidInUseByVisitor), errors.Is(err, services.ErrRfidInUseByEmployee):
			utils.RespondRfidConflictError(c, err.Error())
		case errors.Is(err, utils.ErrInvalidRfidFormat):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "员工登记失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, employee, "员工登记成功")
}

// GetEmployees godoc
// @Summary 获取所有员工列表
// @Tags Employees
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Employee} "员工列表"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees [get]
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	employees, err := h.service.GetEmployees()
	if err != nil {
		utils.RespondInternalServerError(c, "获取员工列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employees, "员工列表获取成功")
}

// GetActiveEmployees godoc
// @Summary 获取当前在岗的员工
// @Description 返回有未闭合考勤记录的在职员工，附带本次签到时间。
// @Tags Employees
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.ActiveEmployee} "在岗员工列表"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees/active [get]
func (h *EmployeeHandler) GetActiveEmployees(c *gin.Context) {
	employees, err := h.service.GetActiveEmployees()
	if err != nil {
		utils.RespondInternalServerError(c, "获取在岗员工失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employees, "在岗员工获取成功")
}

// GetEmployeeByID godoc
// @Summary 获取指定ID的员工详情
// @Tags Employees
// @Produce json
// @Param id path int true "员工数据库ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Employee} "员工详情"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	employee, err := h.service.GetEmployeeByID(uri.ID)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondNotFoundError(c, "员工")
		} else {
			utils.RespondInternalServerError(c, "获取员工详情失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employee, "员工详情获取成功")
}

// GetEmployeeByRfid godoc
// @Summary 查询持有此RFID卡的在职员工
// @Tags Employees
// @Produce json
// @Param rfid path string true "RFID卡号"
// @Success 200 {object} utils.SuccessResponse{data=models.Employee} "员工详情"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees/rfid/{rfid} [get]
func (h *EmployeeHandler) GetEmployeeByRfid(c *gin.Context) {
	rfid := c.Param("rfid")

	employee, err := h.service.GetEmployeeByRfid(rfid)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondNotFoundError(c, "员工")
		} else {
			utils.RespondInternalServerError(c, "查询员工失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employee, "员工查询成功")
}

// GetAttendanceLogs godoc
// @Summary 获取指定员工的考勤记录
// @Description 按签到时间倒序返回该员工的全部考勤记录。
// @Tags Employees
// @Produce json
// @Param id path int true "员工数据库ID"
// @Success 200 {object} utils.SuccessResponse{data=[]models.AttendanceLog} "考勤记录列表"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees/{id}/attendance [get]
func (h *EmployeeHandler) GetAttendanceLogs(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	logs, err := h.service.GetAttendanceLogs(uri.ID)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondNotFoundError(c, "员工")
		} else {
			utils.RespondInternalServerError(c, "获取考勤记录失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, logs, "考勤记录获取成功")
}

// UpdateEmployee godoc
// @Summary 更新指定ID的员工信息
// @Description 只更新请求体中出现的字段。将 isActive 置为 false 即离职，该员工的卡随即不再被门亭识别。
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "员工数据库ID"
// @Param employee body UpdateEmployeePayload true "要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Employee} "更新后的员工记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload UpdateEmployeePayload
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
	if payload.Position != nil {
		updates["position"] = *payload.Position
	}
	if payload.Rfid != nil {
		updates["rfid"] = *payload.Rfid
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if len(updates) == 0 {
		utils.RespondValidationError(c, "请求体中没有可更新的字段")
		return
	}

	employee, err := h.service.UpdateEmployee(uri.ID, updates)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondNotFoundError(c, "员工")
		} else {
			utils.RespondInternalServerError(c, "更新员工失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employee, "员工更新成功")
}

// DeleteEmployee godoc
// @Summary 删除指定ID的员工记录
// @Tags Employees
// @Produce json
// @Param id path int true "员工数据库ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	var uri IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.service.DeleteEmployee(uri.ID); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondNotFoundError(c, "员工")
		} else {
			utils.RespondInternalServerError(c, "删除员工失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "员工删除成功")
}
