package repositories

import (
	"errors"
	"testing"

	"github.com/visitor_management/internal/models"
)

func TestCreateEmployeeDuplicateEmployeeID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormEmployeeRepository(db)

	createActiveEmployee(t, repo, "E001", "王五", "EMP001")

	if _, err := repo.CreateEmployee(&models.Employee{
		EmployeeID: "E001",
		Name:       "重复工号",
		IsActive:   true,
	}); !errors.Is(err, ErrEmployeeIDExists) {
		t.Errorf("重复工号应返回 ErrEmployeeIDExists, 实际 %v", err)
	}
}

func TestEmployeeFindActiveByRfid(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormEmployeeRepository(db)

	employee := createActiveEmployee(t, repo, "E001", "王五", "EMP001")

	found, err := repo.FindActiveByRfid("EMP001")
	if err != nil {
		t.Fatalf("查询出错: %v", err)
	}
	if found == nil || found.ID != employee.ID {
		t.Fatalf("在职员工应能按卡查到, found=%v", found)
	}

	// 离职后同一张卡不再命中
	if _, err := repo.UpdateEmployee(employee.ID, map[string]interface{}{"is_active": false}); err != nil {
		t.Fatalf("更新员工失败: %v", err)
	}
	found, err = repo.FindActiveByRfid("EMP001")
	if err != nil {
		t.Fatalf("查询出错: %v", err)
	}
	if found != nil {
		t.Error("离职员工的卡不应命中")
	}
}

func TestGetActiveEmployees(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormEmployeeRepository(db)
	attendanceRepo := NewGormAttendanceLogRepository(db)

	createActiveEmployee(t, repo, "E001", "在岗员工", "EMP001")
	createActiveEmployee(t, repo, "E002", "下班员工", "EMP002")

	// 在岗员工签到；下班员工签到后签退
	if _, err := attendanceRepo.ProcessScan("EMP001"); err != nil {
		t.Fatalf("考勤刷卡失败: %v", err)
	}
	if _, err := attendanceRepo.ProcessScan("EMP002"); err != nil {
		t.Fatalf("考勤刷卡失败: %v", err)
	}
	if _, err := attendanceRepo.ProcessScan("EMP002"); err != nil {
		t.Fatalf("考勤刷卡失败: %v", err)
	}

	active, err := repo.GetActiveEmployees()
	if err != nil {
		t.Fatalf("查询在岗员工失败: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("在岗员工数 = %d, 期望 1", len(active))
	}
	if active[0].Name != "在岗员工" {
		t.Errorf("在岗员工 = %q, 期望 在岗员工", active[0].Name)
	}
	if active[0].EntryTime.IsZero() {
		t.Error("在岗员工应带本次签到时间")
	}
}
