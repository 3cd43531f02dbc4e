package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/imagestore"
	"github.com/visitor_management/pkg/utils"
)

// ErrVisitorNotFound 表示访客未找到
var ErrVisitorNotFound = errors.New("访客未找到")

// ErrRfidInUseByVisitor 表示该 RFID 卡正绑定在一位尚未离场的访客身上
var ErrRfidInUseByVisitor = errors.New("该RFID卡已绑定到一位未离场的访客，请换卡或等其离场")

// ErrRfidInUseByEmployee 表示该 RFID 卡正绑定在一位在职员工身上
var ErrRfidInUseByEmployee = errors.New("该RFID卡已绑定到一位在职员工，请使用其他卡")

// VisitorRegistration 是访客登记的输入。
// 图片字段是 base64 Data URL，落盘后只在记录里保留相对路径。
type VisitorRegistration struct {
	Name            string
	Purpose         string
	PersonToVisit   *string
	DestinationID   *int64
	Destinations    string // 目的地ID的JSON数组字符串，非法时按 "[]" 处理
	DestinationName *string
	Rfid            *string
	PassNumber      *string
	PhotoImage      *string
	IDScanImage     *string
	IDOcrText       *string
}

// VisitorService 定义了访客服务的接口
type VisitorService interface {
	// RegisterVisitor 创建一条 registered 状态、无入场时间的登记记录。
	// 登记前校验 RFID 格式，并确保该卡没有绑定在任何未离场的访客或在职员工身上。
	RegisterVisitor(reg *VisitorRegistration) (*models.Visitor, error)
	GetVisitors(startDate, endDate *time.Time) ([]models.Visitor, error)
	GetActiveVisitors() ([]models.Visitor, error)
	GetVisitorByID(id int64) (*models.Visitor, error)
	GetVisitorByRfid(rfid string) (*models.Visitor, error)
	CheckIn(rfid string) (*models.Visitor, error)
	CheckOut(rfid string) (*models.Visitor, error)
	DeleteVisitor(id int64) error
}

// visitorService 是 VisitorService 的实现
type visitorService struct {
	visitorRepo     repositories.VisitorRepository
	employeeRepo    repositories.EmployeeRepository
	destinationRepo repositories.DestinationRepository
	images          *imagestore.Store
}

// NewVisitorService 创建一个新的 visitorService 实例
func NewVisitorService(
	visitorRepo repositories.VisitorRepository,
	employeeRepo repositories.EmployeeRepository,
	destinationRepo repositories.DestinationRepository,
	images *imagestore.Store,
) VisitorService {
	return &visitorService{
		visitorRepo:     visitorRepo,
		employeeRepo:    employeeRepo,
		destinationRepo: destinationRepo,
		images:          images,
	}
}

// normalizeDestinations 校验目的地JSON数组字符串，非法输入回落为空数组
func normalizeDestinations(raw string) string {
	if raw == "" {
		return "[]"
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "[]"
	}
	normalized, err := json.Marshal(parsed)
	if err != nil {
		return "[]"
	}
	return string(normalized)
}

// checkRfidAvailable 确认该卡当前未绑定任何活跃的人员
func (s *visitorService) checkRfidAvailable(rfid string) error {
	activeVisitor, err := s.visitorRepo.FindActiveByRfid(rfid)
	if err != nil {
		return err
	}
	if activeVisitor != nil {
		return ErrRfidInUseByVisitor
	}

	activeEmployee, err := s.employeeRepo.FindActiveByRfid(rfid)
	if err != nil {
		return err
	}
	if activeEmployee != nil {
		return ErrRfidInUseByEmployee
	}
	return nil
}

// RegisterVisitor 处理访客登记的业务逻辑
func (s *visitorService) RegisterVisitor(reg *VisitorRegistration) (*models.Visitor, error) {
	if reg.Rfid != nil && *reg.Rfid != "" {
		if err := utils.ValidateRfid(*reg.Rfid); err != nil {
			return nil, err
		}
		if err := s.checkRfidAvailable(*reg.Rfid); err != nil {
			return nil, err
		}
	}

	// 只带了 destinationId 时补齐目的地名称，便于展示层直接使用
	destinationName := reg.DestinationName
	if reg.DestinationID != nil && destinationName == nil {
		destination, err := s.destinationRepo.GetDestinationByID(*reg.DestinationID)
		if err == nil {
			destinationName = &destination.Name
		} else if !errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, err
		}
	}

	visitor := &models.Visitor{
		Name:            reg.Name,
		Purpose:         reg.Purpose,
		PersonToVisit:   reg.PersonToVisit,
		DestinationID:   reg.DestinationID,
		Destinations:    normalizeDestinations(reg.Destinations),
		DestinationName: destinationName,
		Rfid:            reg.Rfid,
		PassNumber:      reg.PassNumber,
		IDOcrText:       reg.IDOcrText,
		Status:          models.VisitorStatusRegistered,
		// 内嵌图片不是合法 Data URL 时静默丢弃，不让登记失败
		PhotoImage:  s.images.SaveOptional(reg.PhotoImage, reg.Name, "photo"),
		IDScanImage: s.images.SaveOptional(reg.IDScanImage, reg.Name, "id"),
	}

	return s.visitorRepo.CreateVisitor(visitor)
}

// GetVisitors 按时间范围查询访客
func (s *visitorService) GetVisitors(startDate, endDate *time.Time) ([]models.Visitor, error) {
	return s.visitorRepo.GetVisitors(startDate, endDate)
}

// GetActiveVisitors 返回当前在楼内的访客
func (s *visitorService) GetActiveVisitors() ([]models.Visitor, error) {
	return s.visitorRepo.GetActiveVisitors()
}

// GetVisitorByID 根据数据库 ID 查询访客
func (s *visitorService) GetVisitorByID(id int64) (*models.Visitor, error) {
	visitor, err := s.visitorRepo.GetVisitorByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	return visitor, nil
}

// GetVisitorByRfid 查询持有此卡且尚未离场的访客
func (s *visitorService) GetVisitorByRfid(rfid string) (*models.Visitor, error) {
	visitor, err := s.visitorRepo.FindActiveByRfid(rfid)
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, ErrVisitorNotFound
	}
	return visitor, nil
}

// CheckIn 执行入场流转
func (s *visitorService) CheckIn(rfid string) (*models.Visitor, error) {
	return s.visitorRepo.CheckInByRfid(rfid)
}

// CheckOut 执行离场流转
func (s *visitorService) CheckOut(rfid string) (*models.Visitor, error) {
	return s.visitorRepo.CheckOutByRfid(rfid)
}

// DeleteVisitor 删除访客记录
func (s *visitorService) DeleteVisitor(id int64) error {
	err := s.visitorRepo.DeleteVisitor(id)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return ErrVisitorNotFound
	}
	return err
}
