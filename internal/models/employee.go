package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee 对应于数据库中的 employees 表
// 员工的"在楼内"状态不记录在本表，而是由 attendance_logs 中是否存在
// status = 'active' 的记录推导出来。
type Employee struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID  string         `json:"employeeId" gorm:"column:employee_id;unique;not null;size:100"` // 员工业务工号
	Name        string         `json:"name" gorm:"column:name;not null;size:255"`                     // 姓名
	Department  *string        `json:"department,omitempty" gorm:"column:department;size:255"`        // 部门
	Position    *string        `json:"position,omitempty" gorm:"column:position;size:255"`            // 职位
	Rfid        *string        `json:"rfid,omitempty" gorm:"column:rfid;size:100;index"`              // RFID卡号
	PhotoImage  *string        `json:"photoImage,omitempty" gorm:"column:photo_image;type:text"`      // 员工照片的相对路径
	IDScanImage *string        `json:"idScanImage,omitempty" gorm:"column:id_scan_image;type:text"`   // 证件扫描图片的相对路径
	IsActive    bool           `json:"isActive" gorm:"column:is_active;not null;default:true"`        // 是否在职/启用
	CreatedAt   time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 Employee 结构体对应的数据库表名
func (Employee) TableName() string {
	return "employees"
}

// ActiveEmployee 是"当前在楼内员工"列表的查询结果行，
// 在员工信息上附加了其未关闭考勤记录的签到时间。
type ActiveEmployee struct {
	Employee
	EntryTime time.Time `json:"entryTime" gorm:"column:entry_time"` // 当前有效考勤记录的 time_in
}
