package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/visitor_management/internal/models"
)

func createRegisteredVisitor(t *testing.T, repo VisitorRepository, name, rfid string) *models.Visitor {
	t.Helper()
	visitor, err := repo.CreateVisitor(&models.Visitor{
		Name:    name,
		Purpose: "面谈",
		Rfid:    strPtr(rfid),
		Status:  models.VisitorStatusRegistered,
	})
	if err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}
	return visitor
}

func TestCheckInByRfid(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	createRegisteredVisitor(t, repo, "张三", "CARD001")

	visitor, err := repo.CheckInByRfid("CARD001")
	if err != nil {
		t.Fatalf("入场流转失败: %v", err)
	}
	if visitor.Status != models.VisitorStatusCheckedIn {
		t.Errorf("入场后状态 = %q, 期望 %q", visitor.Status, models.VisitorStatusCheckedIn)
	}
	if visitor.EntryTime == nil {
		t.Error("入场后 EntryTime 不应为空")
	}
	if visitor.ExitTime != nil {
		t.Error("入场后 ExitTime 应为空")
	}

	// 同一张卡再次入场：没有待入场的登记记录了
	if _, err := repo.CheckInByRfid("CARD001"); !errors.Is(err, ErrVisitorNotFound) {
		t.Errorf("重复入场应返回 ErrVisitorNotFound, 实际 %v", err)
	}
}

func TestCheckInByRfidTrimsWhitespace(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	createRegisteredVisitor(t, repo, "张三", "CARD001")

	if _, err := repo.CheckInByRfid("  CARD001  "); err != nil {
		t.Fatalf("带空白的卡号应能入场: %v", err)
	}
}

func TestCheckInPicksEarliestRegistration(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	first := createRegisteredVisitor(t, repo, "张三", "CARD001")
	createRegisteredVisitor(t, repo, "李四", "CARD001")

	visitor, err := repo.CheckInByRfid("CARD001")
	if err != nil {
		t.Fatalf("入场流转失败: %v", err)
	}
	if visitor.ID != first.ID {
		t.Errorf("同卡多条登记时应流转最早一条, 流转了 id=%d, 期望 id=%d", visitor.ID, first.ID)
	}
}

func TestCheckOutByRfid(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	createRegisteredVisitor(t, repo, "张三", "CARD001")
	checkedIn, err := repo.CheckInByRfid("CARD001")
	if err != nil {
		t.Fatalf("入场流转失败: %v", err)
	}

	visitor, err := repo.CheckOutByRfid("CARD001")
	if err != nil {
		t.Fatalf("离场流转失败: %v", err)
	}
	if visitor.Status != models.VisitorStatusCheckedOut {
		t.Errorf("离场后状态 = %q, 期望 %q", visitor.Status, models.VisitorStatusCheckedOut)
	}
	if visitor.ExitTime == nil {
		t.Fatal("离场后 ExitTime 不应为空")
	}
	if visitor.ExitTime.Before(*checkedIn.EntryTime) {
		t.Error("离场时间不应早于入场时间")
	}

	// 已离场的卡再次离场
	if _, err := repo.CheckOutByRfid("CARD001"); !errors.Is(err, ErrVisitorNotFound) {
		t.Errorf("重复离场应返回 ErrVisitorNotFound, 实际 %v", err)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	createRegisteredVisitor(t, repo, "张三", "CARD001")

	// 尚未入场的登记不能直接离场
	if _, err := repo.CheckOutByRfid("CARD001"); !errors.Is(err, ErrVisitorNotFound) {
		t.Errorf("未入场离场应返回 ErrVisitorNotFound, 实际 %v", err)
	}
}

func TestCheckOutReleasesGuestPass(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)
	passRepo := NewGormGuestPassRepository(db)

	if _, err := passRepo.CreateGuestPass(&models.GuestPass{PassNumber: "V0001", IsAvailable: false}); err != nil {
		t.Fatalf("创建通行证失败: %v", err)
	}

	if _, err := repo.CreateVisitor(&models.Visitor{
		Name:       "张三",
		Purpose:    "面谈",
		Rfid:       strPtr("CARD001"),
		PassNumber: strPtr("V0001"),
		Status:     models.VisitorStatusRegistered,
	}); err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}
	if _, err := repo.CheckInByRfid("CARD001"); err != nil {
		t.Fatalf("入场流转失败: %v", err)
	}
	if _, err := repo.CheckOutByRfid("CARD001"); err != nil {
		t.Fatalf("离场流转失败: %v", err)
	}

	var pass models.GuestPass
	if err := db.Where("pass_number = ?", "V0001").First(&pass).Error; err != nil {
		t.Fatalf("查询通行证失败: %v", err)
	}
	if !pass.IsAvailable {
		t.Error("访客离场后通行证应回到可用池")
	}
}

func TestFindActiveByRfid(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	// 没有任何记录时返回 (nil, nil)
	visitor, err := repo.FindActiveByRfid("CARD001")
	if err != nil {
		t.Fatalf("查询出错: %v", err)
	}
	if visitor != nil {
		t.Fatal("无记录时应返回 nil")
	}

	createRegisteredVisitor(t, repo, "张三", "CARD001")
	visitor, err = repo.FindActiveByRfid("CARD001")
	if err != nil || visitor == nil {
		t.Fatalf("未离场的登记应被视为占用该卡, visitor=%v err=%v", visitor, err)
	}

	// 离场后同一张卡可以重新发放
	if _, err := repo.CheckInByRfid("CARD001"); err != nil {
		t.Fatalf("入场流转失败: %v", err)
	}
	if _, err := repo.CheckOutByRfid("CARD001"); err != nil {
		t.Fatalf("离场流转失败: %v", err)
	}
	visitor, err = repo.FindActiveByRfid("CARD001")
	if err != nil {
		t.Fatalf("查询出错: %v", err)
	}
	if visitor != nil {
		t.Error("离场后的记录不应再占用该卡")
	}
}

func TestRespondToApprovalConsumesToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	pending := models.ApprovalStatusPending
	if _, err := repo.CreateVisitor(&models.Visitor{
		Name:           "张三",
		Purpose:        "面谈",
		Status:         models.VisitorStatusRegistered,
		ApprovalStatus: &pending,
		ApprovalToken:  strPtr("token-abc"),
	}); err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}

	visitor, err := repo.RespondToApproval("token-abc", models.ApprovalStatusApproved)
	if err != nil {
		t.Fatalf("审批响应失败: %v", err)
	}
	if visitor.ApprovalStatus == nil || *visitor.ApprovalStatus != models.ApprovalStatusApproved {
		t.Errorf("审批状态 = %v, 期望 approved", visitor.ApprovalStatus)
	}
	if visitor.ApprovalToken != nil {
		t.Error("令牌消费后应被清空")
	}

	// 令牌已清空，重复提交找不到令牌
	if _, err := repo.RespondToApproval("token-abc", models.ApprovalStatusDenied); !errors.Is(err, ErrApprovalTokenNotFound) {
		t.Errorf("重复提交应返回 ErrApprovalTokenNotFound, 实际 %v", err)
	}
}

func TestRespondToApprovalNonPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	// 令牌还挂在记录上，但状态已不是 pending
	approved := models.ApprovalStatusApproved
	if _, err := repo.CreateVisitor(&models.Visitor{
		Name:           "张三",
		Purpose:        "面谈",
		Status:         models.VisitorStatusRegistered,
		ApprovalStatus: &approved,
		ApprovalToken:  strPtr("token-abc"),
	}); err != nil {
		t.Fatalf("创建访客登记失败: %v", err)
	}

	if _, err := repo.RespondToApproval("token-abc", models.ApprovalStatusDenied); !errors.Is(err, ErrApprovalAlreadyResponded) {
		t.Errorf("非 pending 状态应返回 ErrApprovalAlreadyResponded, 实际 %v", err)
	}
}

func TestGetVisitorsDateRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	now := time.Now()
	lastWeek := now.AddDate(0, 0, -7)
	yesterday := now.AddDate(0, 0, -1)

	// 上周来访并已离场，不在查询范围内
	out := lastWeek.Add(2 * time.Hour)
	if _, err := repo.CreateVisitor(&models.Visitor{
		Name: "上周访客", Purpose: "面谈",
		EntryTime: &lastWeek, ExitTime: &out,
		Status: models.VisitorStatusCheckedOut,
	}); err != nil {
		t.Fatalf("创建访客失败: %v", err)
	}

	// 昨天入场、尚未离场，停留时段与范围有交集
	if _, err := repo.CreateVisitor(&models.Visitor{
		Name: "在场访客", Purpose: "面谈",
		EntryTime: &yesterday,
		Status:    models.VisitorStatusCheckedIn,
	}); err != nil {
		t.Fatalf("创建访客失败: %v", err)
	}

	// 尚未入场的登记，始终返回
	if _, err := repo.CreateVisitor(&models.Visitor{
		Name: "待入场访客", Purpose: "面谈",
		Status: models.VisitorStatusRegistered,
	}); err != nil {
		t.Fatalf("创建访客失败: %v", err)
	}

	start := now.AddDate(0, 0, -2)
	visitors, err := repo.GetVisitors(&start, &now)
	if err != nil {
		t.Fatalf("范围查询失败: %v", err)
	}

	names := make(map[string]bool)
	for _, v := range visitors {
		names[v.Name] = true
	}
	if names["上周访客"] {
		t.Error("范围外的已离场记录不应返回")
	}
	if !names["在场访客"] {
		t.Error("停留时段与范围有交集的记录应返回")
	}
	if !names["待入场访客"] {
		t.Error("未入场的登记记录应始终返回")
	}

	// 不带范围时返回全部
	all, err := repo.GetVisitors(nil, nil)
	if err != nil {
		t.Fatalf("全量查询失败: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("全量查询返回 %d 条, 期望 3 条", len(all))
	}
}

func TestDeleteVisitor(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVisitorRepository(db)

	visitor := createRegisteredVisitor(t, repo, "张三", "CARD001")

	if err := repo.DeleteVisitor(visitor.ID); err != nil {
		t.Fatalf("删除访客失败: %v", err)
	}
	if _, err := repo.GetVisitorByID(visitor.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("删除后查询应返回 ErrRecordNotFound, 实际 %v", err)
	}
	if err := repo.DeleteVisitor(visitor.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("重复删除应返回 ErrRecordNotFound, 实际 %v", err)
	}
}
