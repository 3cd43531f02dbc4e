package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/visitor_management/configs"
	_ "github.com/visitor_management/docs"
	"github.com/visitor_management/internal/routes"
	"github.com/visitor_management/pkg/db"
)

// @title 访客管理系统 API
// @version 1.0
// @description 前台访客登记、RFID 门禁与员工考勤一体化系统的后端接口
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 加载环境变量配置
	configs.LoadConfig()

	// 初始化数据库连接
	db.InitDB()        // 从 pkg/db 调用 InitDB
	defer db.CloseDB() // 确保在 main 函数退出时关闭数据库连接

	router := gin.Default()

	// 设置API路由
	routes.SetupRoutes(router, db.GetDB())

	port := configs.AppConfig.ServerPort
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
