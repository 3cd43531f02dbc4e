package services

import (
	"errors"
	"testing"

	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/utils"
)

func newVisitorServiceForTest(t *testing.T) (VisitorService, repositories.VisitorRepository, repositories.EmployeeRepository) {
	t.Helper()
	db := newTestDB(t)
	visitorRepo := repositories.NewGormVisitorRepository(db)
	employeeRepo := repositories.NewGormEmployeeRepository(db)
	destinationRepo := repositories.NewGormDestinationRepository(db)
	service := NewVisitorService(visitorRepo, employeeRepo, destinationRepo, newTestImageStore(t))
	return service, visitorRepo, employeeRepo
}

func TestRegisterVisitor(t *testing.T) {
	service, _, _ := newVisitorServiceForTest(t)

	visitor, err := service.RegisterVisitor(&VisitorRegistration{
		Name:         "张三",
		Purpose:      "商务洽谈",
		Rfid:         strPtr("CARD001"),
		Destinations: `["1","2"]`,
	})
	if err != nil {
		t.Fatalf("访客登记失败: %v", err)
	}
	if visitor.Status != models.VisitorStatusRegistered {
		t.Errorf("登记后状态 = %q, 期望 registered", visitor.Status)
	}
	if visitor.EntryTime != nil {
		t.Error("登记后 EntryTime 应为空")
	}
	if visitor.Destinations != `["1","2"]` {
		t.Errorf("Destinations = %q, 期望 [\"1\",\"2\"]", visitor.Destinations)
	}
}

func TestRegisterVisitorNormalizesBadDestinations(t *testing.T) {
	service, _, _ := newVisitorServiceForTest(t)

	visitor, err := service.RegisterVisitor(&VisitorRegistration{
		Name:         "张三",
		Purpose:      "面谈",
		Destinations: "not json at all",
	})
	if err != nil {
		t.Fatalf("访客登记失败: %v", err)
	}
	if visitor.Destinations != "[]" {
		t.Errorf("非法目的地串应回落为 [], 实际 %q", visitor.Destinations)
	}
}

func TestRegisterVisitorInvalidRfid(t *testing.T) {
	service, _, _ := newVisitorServiceForTest(t)

	_, err := service.RegisterVisitor(&VisitorRegistration{
		Name:    "张三",
		Purpose: "面谈",
		Rfid:    strPtr("bad card!!"),
	})
	if !errors.Is(err, utils.ErrInvalidRfidFormat) {
		t.Errorf("非法卡号应返回 ErrInvalidRfidFormat, 实际 %v", err)
	}
}

func TestRegisterVisitorRfidConflicts(t *testing.T) {
	service, _, employeeRepo := newVisitorServiceForTest(t)

	// 卡已绑定到一位未离场的访客
	if _, err := service.RegisterVisitor(&VisitorRegistration{
		Name: "张三", Purpose: "面谈", Rfid: strPtr("CARD001"),
	}); err != nil {
		t.Fatalf("首次登记失败: %v", err)
	}
	_, err := service.RegisterVisitor(&VisitorRegistration{
		Name: "李四", Purpose: "面谈", Rfid: strPtr("CARD001"),
	})
	if !errors.Is(err, ErrRfidInUseByVisitor) {
		t.Errorf("访客占用的卡应返回 ErrRfidInUseByVisitor, 实际 %v", err)
	}

	// 卡已绑定到一位在职员工
	if _, err := employeeRepo.CreateEmployee(&models.Employee{
		EmployeeID: "E001", Name: "王五", Rfid: strPtr("EMP001"), IsActive: true,
	}); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	_, err = service.RegisterVisitor(&VisitorRegistration{
		Name: "李四", Purpose: "面谈", Rfid: strPtr("EMP001"),
	})
	if !errors.Is(err, ErrRfidInUseByEmployee) {
		t.Errorf("员工占用的卡应返回 ErrRfidInUseByEmployee, 实际 %v", err)
	}
}

func TestRegisterVisitorDropsMalformedImage(t *testing.T) {
	service, _, _ := newVisitorServiceForTest(t)

	visitor, err := service.RegisterVisitor(&VisitorRegistration{
		Name:       "张三",
		Purpose:    "面谈",
		PhotoImage: strPtr("definitely not a data url"),
	})
	if err != nil {
		t.Fatalf("登记不应因图片非法而失败: %v", err)
	}
	if visitor.PhotoImage != nil {
		t.Errorf("非法图片应被静默丢弃, 实际 %q", *visitor.PhotoImage)
	}
}

func TestRegisterVisitorBackfillsDestinationName(t *testing.T) {
	db := newTestDB(t)
	visitorRepo := repositories.NewGormVisitorRepository(db)
	employeeRepo := repositories.NewGormEmployeeRepository(db)
	destinationRepo := repositories.NewGormDestinationRepository(db)
	service := NewVisitorService(visitorRepo, employeeRepo, destinationRepo, newTestImageStore(t))

	destination, err := destinationRepo.CreateDestination(&models.Destination{Name: "三楼会议室", IsActive: true})
	if err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}

	visitor, err := service.RegisterVisitor(&VisitorRegistration{
		Name:          "张三",
		Purpose:       "面谈",
		DestinationID: int64Ptr(destination.ID),
	})
	if err != nil {
		t.Fatalf("访客登记失败: %v", err)
	}
	if visitor.DestinationName == nil || *visitor.DestinationName != "三楼会议室" {
		t.Errorf("应从 destinationId 补齐地点名称, 实际 %v", visitor.DestinationName)
	}
}

func TestGetVisitorByRfidNotFound(t *testing.T) {
	service, _, _ := newVisitorServiceForTest(t)

	if _, err := service.GetVisitorByRfid("NOPE999"); !errors.Is(err, ErrVisitorNotFound) {
		t.Errorf("无记录时应返回 ErrVisitorNotFound, 实际 %v", err)
	}
}
