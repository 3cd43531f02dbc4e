package services

import (
	"errors"

	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/imagestore"
	"github.com/visitor_management/pkg/utils"
)

// ErrEmployeeNotFound 表示员工未找到
var ErrEmployeeNotFound = errors.New("员工未找到")

// EmployeeRegistration 是员工登记的输入
type EmployeeRegistration struct {
	EmployeeID  string
	Name        string
	Department  *string
	Position    *string
	Rfid        *string
	PhotoImage  *string // base64 Data URL，落盘后保留相对路径
	IDScanImage *string
}

// EmployeeService 定义了员工服务的接口
type EmployeeService interface {
	// RegisterEmployee 创建一名在职员工。
	// 登记前校验 RFID 格式，并确保该卡没有绑定在任何未离场的访客或在职员工身上。
	RegisterEmployee(reg *EmployeeRegistration) (*models.Employee, error)
	GetEmployees() ([]models.Employee, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	GetEmployeeByRfid(rfid string) (*models.Employee, error)
	GetActiveEmployees() ([]models.ActiveEmployee, error)
	GetAttendanceLogs(employeeDbID int64) ([]models.AttendanceLog, error)
	UpdateEmployee(id int64, updates map[string]interface{}) (*models.Employee, error)
	DeleteEmployee(id int64) error
}

// employeeService 是 EmployeeService 的实现
type employeeService struct {
	employeeRepo   repositories.EmployeeRepository
	visitorRepo    repositories.VisitorRepository
	attendanceRepo repositories.AttendanceLogRepository
	images         *imagestore.Store
}

// NewEmployeeService 创建一个新的 employeeService 实例
func NewEmployeeService(
	employeeRepo repositories.EmployeeRepository,
	visitorRepo repositories.VisitorRepository,
	attendanceRepo repositories.AttendanceLogRepository,
	images *imagestore.Store,
) EmployeeService {
	return &employeeService{
		employeeRepo:   employeeRepo,
		visitorRepo:    visitorRepo,
		attendanceRepo: attendanceRepo,
		images:         images,
	}
}

// RegisterEmployee 处理员工登记的业务逻辑
func (s *employeeService) RegisterEmployee(reg *EmployeeRegistration) (*models.Employee, error) {
	if reg.Rfid != nil && *reg.Rfid != "" {
		if err := utils.ValidateRfid(*reg.Rfid); err != nil {
			return nil, err
		}

		// 同一张卡不允许同时绑定两个活跃的人
		activeVisitor, err := s.visitorRepo.FindActiveByRfid(*reg.Rfid)
		if err != nil {
			return nil, err
		}
		if activeVisitor != nil {
			return nil, ErrRfidInUseByVisitor
		}
		activeEmployee, err := s.employeeRepo.FindActiveByRfid(*reg.Rfid)
		if err != nil {
			return nil, err
		}
		if activeEmployee != nil {
			return nil, ErrRfidInUseByEmployee
		}
	}

	employee := &models.Employee{
		EmployeeID: reg.EmployeeID,
		Name:       reg.Name,
		Department: reg.Department,
		Position:   reg.Position,
		Rfid:       reg.Rfid,
		IsActive:   true,
		// 内嵌图片不是合法 Data URL 时静默丢弃，不让登记失败
		PhotoImage:  s.images.SaveOptional(reg.PhotoImage, reg.Name, "photo"),
		IDScanImage: s.images.SaveOptional(reg.IDScanImage, reg.Name, "id"),
	}

	return s.employeeRepo.CreateEmployee(employee)
}

// GetEmployees 返回全部员工
func (s *employeeService) GetEmployees() ([]models.Employee, error) {
	return s.employeeRepo.GetEmployees()
}

// GetEmployeeByID 根据数据库 ID 查询员工
func (s *employeeService) GetEmployeeByID(id int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// GetEmployeeByRfid 查询持有此卡的在职员工
func (s *employeeService) GetEmployeeByRfid(rfid string) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindActiveByRfid(rfid)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

// GetActiveEmployees 返回当前在楼内的员工
func (s *employeeService) GetActiveEmployees() ([]models.ActiveEmployee, error) {
	return s.employeeRepo.GetActiveEmployees()
}

// GetAttendanceLogs 返回指定员工的考勤记录
func (s *employeeService) GetAttendanceLogs(employeeDbID int64) ([]models.AttendanceLog, error) {
	// 先确认员工存在，保证对不存在的员工返回 404 而不是空列表
	if _, err := s.GetEmployeeByID(employeeDbID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.GetLogs(employeeDbID)
}

// UpdateEmployee 更新员工信息
func (s *employeeService) UpdateEmployee(id int64, updates map[string]interface{}) (*models.Employee, error) {
	employee, err := s.employeeRepo.UpdateEmployee(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee 删除员工记录
func (s *employeeService) DeleteEmployee(id int64) error {
	err := s.employeeRepo.DeleteEmployee(id)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}
