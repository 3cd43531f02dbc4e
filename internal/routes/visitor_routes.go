package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/handlers"
)

// SetupVisitorRoutes 设置访客、门亭与到访通知相关路由。
// 前台与门亭设备不登录，这些路由保持公开。
func SetupVisitorRoutes(router *gin.RouterGroup, visitorHandler *handlers.VisitorHandler, notificationHandler *handlers.NotificationHandler) {
	apiV1 := router.Group("/v1")
	{
		visitorGroup := apiV1.Group("/visitors")
		{
			visitorGroup.POST("", visitorHandler.RegisterVisitor)
			visitorGroup.GET("", visitorHandler.GetVisitors)
			visitorGroup.GET("/active", visitorHandler.GetActiveVisitors)
			visitorGroup.POST("/check-in", visitorHandler.CheckIn)
			visitorGroup.POST("/check-out", visitorHandler.CheckOut)
			visitorGroup.POST("/kiosk", visitorHandler.Kiosk)
			visitorGroup.GET("/rfid/:rfid", visitorHandler.GetVisitorByRfid)
			visitorGroup.GET("/:id", visitorHandler.GetVisitorByID)
			visitorGroup.DELETE("/:id", visitorHandler.DeleteVisitor)
		}

		// 到访通知与短信审批链接
		apiV1.POST("/notifications", notificationHandler.SendNotification)
		approvalGroup := apiV1.Group("/approvals")
		{
			approvalGroup.GET("/:token", notificationHandler.GetApprovalInfo)
			approvalGroup.POST("/:token/respond", notificationHandler.RespondToApproval)
		}
	}
}
