package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// ErrNoMatchingEmployee 表示没有持有此卡的在职员工，考勤刷卡无法处理
var ErrNoMatchingEmployee = errors.New("没有持有此卡的在职员工")

// AttendanceResult 是一次考勤刷卡的处理结果
type AttendanceResult struct {
	Employee models.Employee      // 刷卡的员工
	Log      models.AttendanceLog // 被开启或关闭的考勤记录
	IsTimeIn bool                 // true 表示本次刷卡是签到，false 表示签退
}

// AttendanceLogRepository 定义了考勤记录数据仓库的接口
type AttendanceLogRepository interface {
	// GetLogs 查询考勤记录，employeeDbID 为 0 时返回全部
	GetLogs(employeeDbID int64) ([]models.AttendanceLog, error)
	// ProcessScan 处理一次员工考勤刷卡：有未关闭的时段则签退关闭，
	// 否则开启一段新的 active 时段。这是一个无界的双态切换。
	ProcessScan(rfid string) (*AttendanceResult, error)
}

// gormAttendanceLogRepository 是 AttendanceLogRepository 的 GORM 实现
type gormAttendanceLogRepository struct {
	db *gorm.DB
}

// NewGormAttendanceLogRepository 创建一个新的 gormAttendanceLogRepository 实例
func NewGormAttendanceLogRepository(db *gorm.DB) AttendanceLogRepository {
	return &gormAttendanceLogRepository{db: db}
}

// GetLogs 查询考勤记录，按签到时间倒序
func (r *gormAttendanceLogRepository) GetLogs(employeeDbID int64) ([]models.AttendanceLog, error) {
	var logs []models.AttendanceLog
	queryBuilder := r.db.Model(&models.AttendanceLog{})
	if employeeDbID != 0 {
		queryBuilder = queryBuilder.Where("employee_db_id = ?", employeeDbID)
	}
	if err := queryBuilder.Order("time_in desc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ProcessScan 处理一次员工考勤刷卡。
// 关闭动作是一条带 time_out IS NULL 谓词的条件 UPDATE：并发的两次刷卡
// 只有一次能关到同一条记录，改不到行的那次会转为开启新时段。
func (r *gormAttendanceLogRepository) ProcessScan(rfid string) (*AttendanceResult, error) {
	trimmed := strings.TrimSpace(rfid)
	now := time.Now()

	var attendanceResult *AttendanceResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.Where("rfid = ? AND is_active = ?", trimmed, true).First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoMatchingEmployee
			}
			return err
		}

		// 尝试关闭最近一段未签退的时段
		var openLog models.AttendanceLog
		err := tx.Where("employee_db_id = ? AND status = ? AND time_out IS NULL",
			employee.ID, models.AttendanceLogStatusActive).
			Order("time_in desc").
			First(&openLog).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			result := tx.Model(&models.AttendanceLog{}).
				Where("id = ? AND time_out IS NULL", openLog.ID).
				Updates(map[string]interface{}{
					"time_out": now,
					"status":   models.AttendanceLogStatusCompleted,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				if err := tx.First(&openLog, openLog.ID).Error; err != nil {
					return err
				}
				attendanceResult = &AttendanceResult{Employee: employee, Log: openLog, IsTimeIn: false}
				return nil
			}
			// 并发刷卡已抢先关闭了这段，落到下面开启新时段
		}

		newLog := models.AttendanceLog{
			EmployeeDbID: employee.ID,
			Rfid:         trimmed,
			Date:         now,
			TimeIn:       now,
			Status:       models.AttendanceLogStatusActive,
		}
		if err := tx.Create(&newLog).Error; err != nil {
			return err
		}
		attendanceResult = &AttendanceResult{Employee: employee, Log: newLog, IsTimeIn: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attendanceResult, nil
}
