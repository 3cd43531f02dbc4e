package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/handlers"
)

// SetupEmployeeRoutes 设置员工与考勤相关路由。
// 员工登记在前台完成、刷卡在门亭完成，与访客路由一样保持公开。
func SetupEmployeeRoutes(router *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	apiV1 := router.Group("/v1")
	{
		employeeGroup := apiV1.Group("/employees")
		{
			employeeGroup.POST("", employeeHandler.RegisterEmployee)
			employeeGroup.GET("", employeeHandler.GetEmployees)
			employeeGroup.GET("/active", employeeHandler.GetActiveEmployees)
			employeeGroup.GET("/rfid/:rfid", employeeHandler.GetEmployeeByRfid)
			employeeGroup.GET("/:id", employeeHandler.GetEmployeeByID)
			employeeGroup.GET("/:id/attendance", employeeHandler.GetAttendanceLogs)
			employeeGroup.PUT("/:id", employeeHandler.UpdateEmployee)
			employeeGroup.DELETE("/:id", employeeHandler.DeleteEmployee)
		}
	}
}
