package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/visitor_management/configs"
	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
)

func newNotificationServiceForTest(t *testing.T) (NotificationService, repositories.VisitorRepository, repositories.StaffContactRepository) {
	t.Helper()
	configs.LoadConfig()
	db := newTestDB(t)
	visitorRepo := repositories.NewGormVisitorRepository(db)
	contactRepo := repositories.NewGormStaffContactRepository(db)
	service := NewNotificationService(contactRepo, visitorRepo)
	return service, visitorRepo, contactRepo
}

func TestSendNotificationWithApprovalToken(t *testing.T) {
	service, visitorRepo, contactRepo := newNotificationServiceForTest(t)

	contact, err := contactRepo.CreateStaffContact(&models.StaffContact{
		Name: "王五", MobileNumber: "13800000000", IsActive: true,
	})
	if err != nil {
		t.Fatalf("创建联系人失败: %v", err)
	}
	visitor, err := visitorRepo.CreateVisitor(&models.Visitor{
		Name: "张三", Purpose: "面谈", Status: models.VisitorStatusRegistered,
	})
	if err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}

	result, err := service.SendNotification(&NotificationRequest{
		ContactID:   contact.ID,
		VisitorID:   &visitor.ID,
		VisitorName: "张三",
		Destination: "三楼会议室",
		Purpose:     "面谈",
	})
	if err != nil {
		t.Fatalf("发送通知失败: %v", err)
	}
	if result.ApprovalLink == "" {
		t.Fatal("带访客ID时应生成审批链接")
	}
	if !strings.Contains(result.ApprovalLink, "/approve/") {
		t.Errorf("审批链接格式不对: %q", result.ApprovalLink)
	}
	if !strings.Contains(result.Message, "王五") {
		t.Errorf("结果消息应包含联系人姓名: %q", result.Message)
	}

	// 访客记录上应挂好令牌并置为 pending
	updated, err := visitorRepo.GetVisitorByID(visitor.ID)
	if err != nil {
		t.Fatalf("查询访客失败: %v", err)
	}
	if updated.ApprovalToken == nil || *updated.ApprovalToken == "" {
		t.Fatal("访客记录上应有审批令牌")
	}
	if updated.ApprovalStatus == nil || *updated.ApprovalStatus != models.ApprovalStatusPending {
		t.Errorf("审批状态 = %v, 期望 pending", updated.ApprovalStatus)
	}
	if !strings.HasSuffix(result.ApprovalLink, *updated.ApprovalToken) {
		t.Error("审批链接应以访客的令牌结尾")
	}
}

func TestSendNotificationWithoutVisitorID(t *testing.T) {
	service, _, contactRepo := newNotificationServiceForTest(t)

	contact, err := contactRepo.CreateStaffContact(&models.StaffContact{
		Name: "王五", MobileNumber: "13800000000", IsActive: true,
	})
	if err != nil {
		t.Fatalf("创建联系人失败: %v", err)
	}

	result, err := service.SendNotification(&NotificationRequest{
		ContactID:   contact.ID,
		VisitorName: "张三",
		Destination: "三楼会议室",
		Purpose:     "面谈",
	})
	if err != nil {
		t.Fatalf("发送通知失败: %v", err)
	}
	if result.ApprovalLink != "" {
		t.Errorf("不带访客ID时不应生成审批链接: %q", result.ApprovalLink)
	}
}

func TestSendNotificationContactNotFound(t *testing.T) {
	service, _, _ := newNotificationServiceForTest(t)

	if _, err := service.SendNotification(&NotificationRequest{
		ContactID: 999, VisitorName: "张三", Destination: "三楼", Purpose: "面谈",
	}); !errors.Is(err, ErrContactNotFound) {
		t.Errorf("应返回 ErrContactNotFound, 实际 %v", err)
	}
}

func TestApprovalTokenIsSingleUse(t *testing.T) {
	service, visitorRepo, contactRepo := newNotificationServiceForTest(t)

	contact, err := contactRepo.CreateStaffContact(&models.StaffContact{
		Name: "王五", MobileNumber: "13800000000", IsActive: true,
	})
	if err != nil {
		t.Fatalf("创建联系人失败: %v", err)
	}
	visitor, err := visitorRepo.CreateVisitor(&models.Visitor{
		Name: "张三", Purpose: "面谈", Status: models.VisitorStatusRegistered,
	})
	if err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}
	if _, err := service.SendNotification(&NotificationRequest{
		ContactID: contact.ID, VisitorID: &visitor.ID,
		VisitorName: "张三", Destination: "三楼", Purpose: "面谈",
	}); err != nil {
		t.Fatalf("发送通知失败: %v", err)
	}

	updated, err := visitorRepo.GetVisitorByID(visitor.ID)
	if err != nil {
		t.Fatalf("查询访客失败: %v", err)
	}
	token := *updated.ApprovalToken

	// 点开链接查看摘要
	info, err := service.GetApprovalInfo(token)
	if err != nil {
		t.Fatalf("查询审批摘要失败: %v", err)
	}
	if info.Name != "张三" {
		t.Errorf("审批摘要姓名 = %q, 期望 张三", info.Name)
	}

	// 第一次响应成功并清空令牌
	responded, err := service.RespondToApproval(token, models.ApprovalStatusApproved)
	if err != nil {
		t.Fatalf("审批响应失败: %v", err)
	}
	if responded.ApprovalStatus == nil || *responded.ApprovalStatus != models.ApprovalStatusApproved {
		t.Errorf("审批状态 = %v, 期望 approved", responded.ApprovalStatus)
	}
	if responded.ApprovalToken != nil {
		t.Error("响应后令牌应被清空")
	}

	// 重复响应与重复查看都应失效
	if _, err := service.RespondToApproval(token, models.ApprovalStatusDenied); !errors.Is(err, ErrApprovalNotFound) {
		t.Errorf("重复响应应返回 ErrApprovalNotFound, 实际 %v", err)
	}
	if _, err := service.GetApprovalInfo(token); !errors.Is(err, ErrApprovalNotFound) {
		t.Errorf("消费后的令牌查询应返回 ErrApprovalNotFound, 实际 %v", err)
	}
}

func TestResendNotificationRotatesToken(t *testing.T) {
	service, visitorRepo, contactRepo := newNotificationServiceForTest(t)

	contact, err := contactRepo.CreateStaffContact(&models.StaffContact{
		Name: "王五", MobileNumber: "13800000000", IsActive: true,
	})
	if err != nil {
		t.Fatalf("创建联系人失败: %v", err)
	}
	visitor, err := visitorRepo.CreateVisitor(&models.Visitor{
		Name: "张三", Purpose: "面谈", Status: models.VisitorStatusRegistered,
	})
	if err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}

	req := &NotificationRequest{
		ContactID: contact.ID, VisitorID: &visitor.ID,
		VisitorName: "张三", Destination: "三楼", Purpose: "面谈",
	}
	first, err := service.SendNotification(req)
	if err != nil {
		t.Fatalf("发送通知失败: %v", err)
	}
	second, err := service.SendNotification(req)
	if err != nil {
		t.Fatalf("重发通知失败: %v", err)
	}
	if first.ApprovalLink == second.ApprovalLink {
		t.Error("重发通知应轮换审批令牌")
	}

	// 旧令牌随轮换失效
	oldToken := first.ApprovalLink[strings.LastIndex(first.ApprovalLink, "/")+1:]
	if _, err := service.GetApprovalInfo(oldToken); !errors.Is(err, ErrApprovalNotFound) {
		t.Errorf("轮换后旧令牌应失效, 实际 %v", err)
	}
}
