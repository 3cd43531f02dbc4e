package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/visitor_management/configs"
	"github.com/visitor_management/internal/handlers"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/internal/services"
	"github.com/visitor_management/pkg/imagestore"
)

// SetupRoutes 初始化所有路由并完成各层依赖的组装
func SetupRoutes(router *gin.Engine, db *gorm.DB) {

	// 仓库层
	visitorRepo := repositories.NewGormVisitorRepository(db)
	employeeRepo := repositories.NewGormEmployeeRepository(db)
	attendanceRepo := repositories.NewGormAttendanceLogRepository(db)
	destinationRepo := repositories.NewGormDestinationRepository(db)
	staffContactRepo := repositories.NewGormStaffContactRepository(db)
	guestPassRepo := repositories.NewGormGuestPassRepository(db)
	scheduledVisitRepo := repositories.NewGormScheduledVisitRepository(db)
	settingRepo := repositories.NewGormSettingRepository(db)

	// 服务层
	images := imagestore.NewStore(configs.AppConfig.UploadsDir)
	visitorService := services.NewVisitorService(visitorRepo, employeeRepo, destinationRepo, images)
	kioskService := services.NewKioskService(attendanceRepo, visitorRepo)
	employeeService := services.NewEmployeeService(employeeRepo, visitorRepo, attendanceRepo, images)
	notificationService := services.NewNotificationService(staffContactRepo, visitorRepo)

	// 处理器层
	visitorHandler := handlers.NewVisitorHandler(visitorService, kioskService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	destinationHandler := handlers.NewDestinationHandler(destinationRepo)
	staffContactHandler := handlers.NewStaffContactHandler(staffContactRepo)
	guestPassHandler := handlers.NewGuestPassHandler(guestPassRepo)
	scheduledVisitHandler := handlers.NewScheduledVisitHandler(scheduledVisitRepo)
	settingHandler := handlers.NewSettingHandler(settingRepo)

	// 登记时拍的照片与证件扫描件通过静态目录对外提供
	router.Static("/uploads", configs.AppConfig.UploadsDir)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	SetupAuthRoutes(api)
	SetupVisitorRoutes(api, visitorHandler, notificationHandler)
	SetupEmployeeRoutes(api, employeeHandler)
	SetupAdminRoutes(api, destinationHandler, staffContactHandler, guestPassHandler, scheduledVisitHandler, settingHandler)
}
