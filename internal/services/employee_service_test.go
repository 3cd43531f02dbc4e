package services

import (
	"errors"
	"testing"

	"github.com/visitor_management/internal/repositories"
)

func newEmployeeServiceForTest(t *testing.T) EmployeeService {
	t.Helper()
	db := newTestDB(t)
	visitorRepo := repositories.NewGormVisitorRepository(db)
	employeeRepo := repositories.NewGormEmployeeRepository(db)
	attendanceRepo := repositories.NewGormAttendanceLogRepository(db)
	return NewEmployeeService(employeeRepo, visitorRepo, attendanceRepo, newTestImageStore(t))
}

func TestRegisterEmployee(t *testing.T) {
	service := newEmployeeServiceForTest(t)

	employee, err := service.RegisterEmployee(&EmployeeRegistration{
		EmployeeID: "E001",
		Name:       "王五",
		Department: strPtr("工程部"),
		Rfid:       strPtr("EMP001"),
	})
	if err != nil {
		t.Fatalf("员工登记失败: %v", err)
	}
	if !employee.IsActive {
		t.Error("新登记的员工应为在职状态")
	}

	// 重复工号
	if _, err := service.RegisterEmployee(&EmployeeRegistration{
		EmployeeID: "E001", Name: "重复工号",
	}); !errors.Is(err, repositories.ErrEmployeeIDExists) {
		t.Errorf("重复工号应返回 ErrEmployeeIDExists, 实际 %v", err)
	}

	// 卡已被在职员工占用
	if _, err := service.RegisterEmployee(&EmployeeRegistration{
		EmployeeID: "E002", Name: "撞卡员工", Rfid: strPtr("EMP001"),
	}); !errors.Is(err, ErrRfidInUseByEmployee) {
		t.Errorf("占用的卡应返回 ErrRfidInUseByEmployee, 实际 %v", err)
	}
}

func TestGetAttendanceLogsUnknownEmployee(t *testing.T) {
	service := newEmployeeServiceForTest(t)

	if _, err := service.GetAttendanceLogs(999); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("未知员工应返回 ErrEmployeeNotFound, 实际 %v", err)
	}
}

func TestDeactivateEmployee(t *testing.T) {
	service := newEmployeeServiceForTest(t)

	employee, err := service.RegisterEmployee(&EmployeeRegistration{
		EmployeeID: "E001", Name: "王五", Rfid: strPtr("EMP001"),
	})
	if err != nil {
		t.Fatalf("员工登记失败: %v", err)
	}

	updated, err := service.UpdateEmployee(employee.ID, map[string]interface{}{"is_active": false})
	if err != nil {
		t.Fatalf("更新员工失败: %v", err)
	}
	if updated.IsActive {
		t.Error("离职后 IsActive 应为 false")
	}

	// 离职后按卡查询不再命中
	if _, err := service.GetEmployeeByRfid("EMP001"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("离职员工按卡查询应返回 ErrEmployeeNotFound, 实际 %v", err)
	}
}
