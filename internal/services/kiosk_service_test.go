package services

import (
	"errors"
	"testing"

	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
)

func newKioskServiceForTest(t *testing.T) (KioskService, repositories.VisitorRepository, repositories.EmployeeRepository) {
	t.Helper()
	db := newTestDB(t)
	visitorRepo := repositories.NewGormVisitorRepository(db)
	employeeRepo := repositories.NewGormEmployeeRepository(db)
	attendanceRepo := repositories.NewGormAttendanceLogRepository(db)
	service := NewKioskService(attendanceRepo, visitorRepo)
	return service, visitorRepo, employeeRepo
}

func TestKioskEmployeeToggle(t *testing.T) {
	service, _, employeeRepo := newKioskServiceForTest(t)

	if _, err := employeeRepo.CreateEmployee(&models.Employee{
		EmployeeID: "E001", Name: "王五", Rfid: strPtr("EMP001"), IsActive: true,
	}); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	result, err := service.ProcessScan("EMP001")
	if err != nil {
		t.Fatalf("门亭刷卡失败: %v", err)
	}
	if result.PersonType != PersonTypeEmployee {
		t.Errorf("PersonType = %q, 期望 employee", result.PersonType)
	}
	if !result.IsCheckIn {
		t.Error("第一次刷卡应为签到")
	}

	result, err = service.ProcessScan("EMP001")
	if err != nil {
		t.Fatalf("门亭刷卡失败: %v", err)
	}
	if result.IsCheckIn {
		t.Error("第二次刷卡应为签退")
	}
	if result.ExitTime == nil {
		t.Error("签退结果应带签退时间")
	}
}

func TestKioskVisitorFlow(t *testing.T) {
	service, visitorRepo, _ := newKioskServiceForTest(t)

	if _, err := visitorRepo.CreateVisitor(&models.Visitor{
		Name: "张三", Purpose: "面谈", Rfid: strPtr("CARD001"),
		Status: models.VisitorStatusRegistered,
	}); err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}

	// 第一次刷卡：访客入场
	result, err := service.ProcessScan("CARD001")
	if err != nil {
		t.Fatalf("门亭刷卡失败: %v", err)
	}
	if result.PersonType != PersonTypeVisitor {
		t.Errorf("PersonType = %q, 期望 visitor", result.PersonType)
	}
	if !result.IsCheckIn {
		t.Error("第一次刷卡应为入场")
	}
	if result.Visitor == nil || result.Visitor.Status != models.VisitorStatusCheckedIn {
		t.Errorf("入场后访客状态不对: %+v", result.Visitor)
	}

	// 第二次刷卡：访客离场
	result, err = service.ProcessScan("CARD001")
	if err != nil {
		t.Fatalf("门亭刷卡失败: %v", err)
	}
	if result.IsCheckIn {
		t.Error("第二次刷卡应为离场")
	}
	if result.Visitor == nil || result.Visitor.Status != models.VisitorStatusCheckedOut {
		t.Errorf("离场后访客状态不对: %+v", result.Visitor)
	}

	// 第三次刷卡：该卡已无可流转的记录
	if _, err := service.ProcessScan("CARD001"); !errors.Is(err, ErrRfidNotRecognized) {
		t.Errorf("已离场的卡应返回 ErrRfidNotRecognized, 实际 %v", err)
	}
}

func TestKioskEmployeePrecedence(t *testing.T) {
	service, visitorRepo, employeeRepo := newKioskServiceForTest(t)

	// 同一张卡同时挂在员工和访客登记上时，员工考勤优先
	if _, err := employeeRepo.CreateEmployee(&models.Employee{
		EmployeeID: "E001", Name: "王五", Rfid: strPtr("SHARED01"), IsActive: true,
	}); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	if _, err := visitorRepo.CreateVisitor(&models.Visitor{
		Name: "张三", Purpose: "面谈", Rfid: strPtr("SHARED01"),
		Status: models.VisitorStatusRegistered,
	}); err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}

	result, err := service.ProcessScan("SHARED01")
	if err != nil {
		t.Fatalf("门亭刷卡失败: %v", err)
	}
	if result.PersonType != PersonTypeEmployee {
		t.Errorf("PersonType = %q, 员工考勤应优先于访客流转", result.PersonType)
	}
}

func TestKioskUnknownCard(t *testing.T) {
	service, _, _ := newKioskServiceForTest(t)

	if _, err := service.ProcessScan("NOPE999"); !errors.Is(err, ErrRfidNotRecognized) {
		t.Errorf("未知卡号应返回 ErrRfidNotRecognized, 实际 %v", err)
	}
}
