package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/visitor_management/internal/auth"
	"github.com/visitor_management/internal/handlers"
)

// SetupAdminRoutes 设置后台管理路由。
// 地点、联系人、通行证、预约与站点配置只允许登录后的管理端操作。
func SetupAdminRoutes(
	router *gin.RouterGroup,
	destinationHandler *handlers.DestinationHandler,
	staffContactHandler *handlers.StaffContactHandler,
	guestPassHandler *handlers.GuestPassHandler,
	scheduledVisitHandler *handlers.ScheduledVisitHandler,
	settingHandler *handlers.SettingHandler,
) {
	apiV1 := router.Group("/v1")
	apiV1.Use(auth.JWTMiddleware())
	{
		destinationGroup := apiV1.Group("/destinations")
		{
			destinationGroup.POST("", destinationHandler.CreateDestination)
			destinationGroup.GET("", destinationHandler.GetDestinations)
			destinationGroup.GET("/:id", destinationHandler.GetDestinationByID)
			destinationGroup.PUT("/:id", destinationHandler.UpdateDestination)
			destinationGroup.DELETE("/:id", destinationHandler.DeleteDestination)
		}

		staffContactGroup := apiV1.Group("/staff-contacts")
		{
			staffContactGroup.POST("", staffContactHandler.CreateStaffContact)
			staffContactGroup.GET("", staffContactHandler.GetStaffContacts)
			staffContactGroup.GET("/:id", staffContactHandler.GetStaffContactByID)
			staffContactGroup.PUT("/:id", staffContactHandler.UpdateStaffContact)
			staffContactGroup.DELETE("/:id", staffContactHandler.DeleteStaffContact)
		}

		guestPassGroup := apiV1.Group("/guest-passes")
		{
			guestPassGroup.POST("", guestPassHandler.CreateGuestPass)
			guestPassGroup.GET("", guestPassHandler.GetGuestPasses)
			guestPassGroup.POST("/generate", guestPassHandler.GenerateGuestPasses)
			guestPassGroup.GET("/:id", guestPassHandler.GetGuestPassByID)
			guestPassGroup.PUT("/:id", guestPassHandler.UpdateGuestPass)
			guestPassGroup.DELETE("/:id", guestPassHandler.DeleteGuestPass)
		}

		scheduledVisitGroup := apiV1.Group("/scheduled-visits")
		{
			scheduledVisitGroup.POST("", scheduledVisitHandler.CreateScheduledVisit)
			scheduledVisitGroup.GET("", scheduledVisitHandler.GetScheduledVisits)
			scheduledVisitGroup.GET("/:id", scheduledVisitHandler.GetScheduledVisitByID)
			scheduledVisitGroup.PUT("/:id", scheduledVisitHandler.UpdateScheduledVisit)
			scheduledVisitGroup.DELETE("/:id", scheduledVisitHandler.DeleteScheduledVisit)
		}

		settingGroup := apiV1.Group("/settings")
		{
			settingGroup.GET("", settingHandler.GetSettings)
			settingGroup.POST("", settingHandler.UpsertSetting)
			settingGroup.GET("/:key", settingHandler.GetSettingByKey)
		}
	}
}
