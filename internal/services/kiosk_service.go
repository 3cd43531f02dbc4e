package services

import (
	"errors"
	"time"

	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
)

// ErrRfidNotRecognized 表示该卡既不是员工卡，也没有可流转的访客记录
var ErrRfidNotRecognized = errors.New("没有与此RFID卡对应的人员记录")

// 门亭响应中的人员类型标签
const (
	PersonTypeEmployee = "employee"
	PersonTypeVisitor  = "visitor"
)

// KioskResult 是门亭刷卡的统一结果：按 personType 标记的访客/员工联合体，
// 两个指针字段有且只有一个非空。
type KioskResult struct {
	PersonType string           `json:"personType"` // "employee" 或 "visitor"
	Employee   *models.Employee `json:"employee,omitempty"`
	Visitor    *models.Visitor  `json:"visitor,omitempty"`
	EntryTime  *time.Time       `json:"entryTime,omitempty"` // 员工为本段考勤的签到时间
	ExitTime   *time.Time       `json:"exitTime,omitempty"`  // 员工为本段考勤的签退时间
	IsCheckIn  bool             `json:"isCheckIn"`           // 本次刷卡是否为入场/签到
}

// KioskService 定义了门亭刷卡分发服务的接口
type KioskService interface {
	// ProcessScan 处理一次门亭刷卡：先按员工考勤切换处理，
	// 不是员工卡时依次尝试访客入场、访客离场，都不命中则返回 ErrRfidNotRecognized。
	ProcessScan(rfid string) (*KioskResult, error)
}

// kioskService 是 KioskService 的实现
type kioskService struct {
	attendanceRepo repositories.AttendanceLogRepository
	visitorRepo    repositories.VisitorRepository
}

// NewKioskService 创建一个新的 kioskService 实例
func NewKioskService(attendanceRepo repositories.AttendanceLogRepository, visitorRepo repositories.VisitorRepository) KioskService {
	return &kioskService{attendanceRepo: attendanceRepo, visitorRepo: visitorRepo}
}

// ProcessScan 处理一次门亭刷卡
func (s *kioskService) ProcessScan(rfid string) (*KioskResult, error) {
	// 1. 员工考勤优先：员工卡在签到/签退之间无限切换
	attendance, err := s.attendanceRepo.ProcessScan(rfid)
	if err == nil {
		result := &KioskResult{
			PersonType: PersonTypeEmployee,
			Employee:   &attendance.Employee,
			EntryTime:  &attendance.Log.TimeIn,
			ExitTime:   attendance.Log.TimeOut,
			IsCheckIn:  attendance.IsTimeIn,
		}
		return result, nil
	}
	if !errors.Is(err, repositories.ErrNoMatchingEmployee) {
		return nil, err
	}

	// 2. 访客入场
	visitor, err := s.visitorRepo.CheckInByRfid(rfid)
	if err == nil {
		return &KioskResult{PersonType: PersonTypeVisitor, Visitor: visitor, IsCheckIn: true}, nil
	}
	if !errors.Is(err, repositories.ErrVisitorNotFound) {
		return nil, err
	}

	// 3. 访客离场
	visitor, err = s.visitorRepo.CheckOutByRfid(rfid)
	if err == nil {
		return &KioskResult{PersonType: PersonTypeVisitor, Visitor: visitor, IsCheckIn: false}, nil
	}
	if !errors.Is(err, repositories.ErrVisitorNotFound) {
		return nil, err
	}

	return nil, ErrRfidNotRecognized
}
