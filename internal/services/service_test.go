package services

import (
	"path/filepath"
	"testing"

	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/pkg/imagestore"
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
	)
	if err != nil {
		t.Fatalf("测试数据库建表失败: %v", err)
	}
	return db
}

// newTestImageStore 返回一个写到临时目录的图片存储
func newTestImageStore(t *testing.T) *imagestore.Store {
	t.Helper()
	return imagestore.NewStore(t.TempDir())
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(i int64) *int64 {
	return &i
}
