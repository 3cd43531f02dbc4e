package repositories

import (
	"path/filepath"
	"testing"

	"github.com/visitor_management/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 为每个测试打开一个独立的临时 sqlite 数据库并完成建表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&models.Visitor{},
		&models.Employee{},
		&models.AttendanceLog{},
		&models.Destination{},
		&models.StaffContact{},
		&models.GuestPass{},
		&models.ScheduledVisit{},
		&models.Setting{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("测试数据库建表失败: %v", err)
	}
	return db
}

func strPtr(s string) *string {
	return &s
}
