package repositories

import (
	"errors"
	"strings"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// ErrEmployeeIDExists 表示员工工号已存在
var ErrEmployeeIDExists = errors.New("员工工号已存在")

// EmployeeRepository 定义了员工数据仓库的接口
type EmployeeRepository interface {
	CreateEmployee(employee *models.Employee) (*models.Employee, error)
	GetEmployees() ([]models.Employee, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	// FindActiveByRfid 查询持有此卡的在职员工，用于门亭考勤和登记时的占用检查。
	// 未找到时返回 (nil, nil)。
	FindActiveByRfid(rfid string) (*models.Employee, error)
	// GetActiveEmployees 返回当前在楼内的员工：存在 status = 'active' 考勤记录的在职员工，
	// 每条结果附带该考勤记录的签到时间。
	GetActiveEmployees() ([]models.ActiveEmployee, error)
	UpdateEmployee(id int64, updates map[string]interface{}) (*models.Employee, error)
	DeleteEmployee(id int64) error
}

// gormEmployeeRepository 是 EmployeeRepository 的 GORM 实现
type gormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository 创建一个新的 gormEmployeeRepository 实例
func NewGormEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &gormEmployeeRepository{db: db}
}

// CreateEmployee 在数据库中创建一个新的员工记录
func (r *gormEmployeeRepository) CreateEmployee(employee *models.Employee) (*models.Employee, error) {
	// 预先检查 employeeId 是否已存在
	var existing models.Employee
	if err := r.db.Unscoped().Where("employee_id = ?", employee.EmployeeID).First(&existing).Error; err == nil {
		// 如果找到了记录（即使是软删除的），也认为工号已存在，以防止恢复时冲突或业务逻辑混乱
		return nil, ErrEmployeeIDExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		// 如果是其他查询错误
		return nil, err
	}

	// 如果记录未找到，则创建新记录
	if err := r.db.Create(employee).Error; err != nil {
		// GORM 通常会将数据库的唯一约束违例错误包装起来
		// 对于 SQLite，错误信息可能包含 "UNIQUE constraint failed"
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") || strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			if strings.Contains(err.Error(), "employees.employee_id") { // 更精确地判断是 employee_id 的唯一约束
				return nil, ErrEmployeeIDExists
			}
		}
		return nil, err
	}
	return employee, nil
}

// GetEmployees 返回全部员工，按姓名排序
func (r *gormEmployeeRepository) GetEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.Order("name asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// GetEmployeeByID 根据数据库 ID 查询单个员工
func (r *gormEmployeeRepository) GetEmployeeByID(id int64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindActiveByRfid 查询持有此卡的在职员工
func (r *gormEmployeeRepository) FindActiveByRfid(rfid string) (*models.Employee, error) {
	trimmed := strings.TrimSpace(rfid)
	var employee models.Employee
	err := r.db.Where("rfid = ? AND is_active = ?", trimmed, true).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// GetActiveEmployees 返回当前在楼内的员工及其签到时间
func (r *gormEmployeeRepository) GetActiveEmployees() ([]models.ActiveEmployee, error) {
	var activeEmployees []models.ActiveEmployee

	err := r.db.Model(&models.Employee{}).
		Select("employees.*", "attendance_logs.time_in AS entry_time").
		Joins("JOIN attendance_logs ON attendance_logs.employee_db_id = employees.id").
		Where("attendance_logs.status = ? AND attendance_logs.time_out IS NULL", models.AttendanceLogStatusActive).
		Where("employees.is_active = ?", true).
		Order("employees.name asc").
		Find(&activeEmployees).Error
	if err != nil {
		return nil, err
	}
	return activeEmployees, nil
}

// UpdateEmployee 更新数据库中指定ID的员工信息
// updates 是一个包含要更新字段及其新值的 map
func (r *gormEmployeeRepository) UpdateEmployee(id int64, updates map[string]interface{}) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.Employee{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新查询更新后的记录并返回
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// DeleteEmployee 删除指定ID的员工记录（软删除）
func (r *gormEmployeeRepository) DeleteEmployee(id int64) error {
	result := r.db.Delete(&models.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
