package repositories

import (
	"errors"
	"testing"

	"github.com/visitor_management/internal/models"
)

func createActiveEmployee(t *testing.T, repo EmployeeRepository, employeeID, name, rfid string) *models.Employee {
	t.Helper()
	employee, err := repo.CreateEmployee(&models.Employee{
		EmployeeID: employeeID,
		Name:       name,
		Rfid:       strPtr(rfid),
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	return employee
}

func TestProcessScanToggles(t *testing.T) {
	db := newTestDB(t)
	employeeRepo := NewGormEmployeeRepository(db)
	repo := NewGormAttendanceLogRepository(db)

	employee := createActiveEmployee(t, employeeRepo, "E001", "王五", "EMP001")

	// 第一次刷卡：开启时段
	result, err := repo.ProcessScan("EMP001")
	if err != nil {
		t.Fatalf("考勤刷卡失败: %v", err)
	}
	if !result.IsTimeIn {
		t.Error("第一次刷卡应为签到")
	}
	if result.Log.Status != models.AttendanceLogStatusActive {
		t.Errorf("签到后时段状态 = %q, 期望 active", result.Log.Status)
	}
	if result.Employee.ID != employee.ID {
		t.Errorf("刷卡员工 id=%d, 期望 id=%d", result.Employee.ID, employee.ID)
	}

	// 第二次刷卡：关闭时段
	result, err = repo.ProcessScan("EMP001")
	if err != nil {
		t.Fatalf("考勤刷卡失败: %v", err)
	}
	if result.IsTimeIn {
		t.Error("第二次刷卡应为签退")
	}
	if result.Log.TimeOut == nil {
		t.Error("签退后 TimeOut 不应为空")
	}
	if result.Log.Status != models.AttendanceLogStatusCompleted {
		t.Errorf("签退后时段状态 = %q, 期望 completed", result.Log.Status)
	}

	// 第三次刷卡：又开启一段新时段，一天可以有多段
	result, err = repo.ProcessScan("EMP001")
	if err != nil {
		t.Fatalf("考勤刷卡失败: %v", err)
	}
	if !result.IsTimeIn {
		t.Error("第三次刷卡应再次签到")
	}

	logs, err := repo.GetLogs(employee.ID)
	if err != nil {
		t.Fatalf("查询考勤记录失败: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("考勤记录数 = %d, 期望 2", len(logs))
	}
}

func TestProcessScanUnknownCard(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAttendanceLogRepository(db)

	if _, err := repo.ProcessScan("NOPE999"); !errors.Is(err, ErrNoMatchingEmployee) {
		t.Errorf("未知卡号应返回 ErrNoMatchingEmployee, 实际 %v", err)
	}
}

func TestProcessScanInactiveEmployee(t *testing.T) {
	db := newTestDB(t)
	employeeRepo := NewGormEmployeeRepository(db)
	repo := NewGormAttendanceLogRepository(db)

	if _, err := employeeRepo.CreateEmployee(&models.Employee{
		EmployeeID: "E001",
		Name:       "离职员工",
		Rfid:       strPtr("EMP001"),
		IsActive:   false,
	}); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	// 离职员工的卡不再被识别
	if _, err := repo.ProcessScan("EMP001"); !errors.Is(err, ErrNoMatchingEmployee) {
		t.Errorf("离职员工刷卡应返回 ErrNoMatchingEmployee, 实际 %v", err)
	}
}
