package models

import (
	"time"
)

// AttendanceLogStatus 定义了考勤记录的状态类型
type AttendanceLogStatus string

const (
	AttendanceLogStatusActive    AttendanceLogStatus = "active"    // 已签到，尚未签退
	AttendanceLogStatusCompleted AttendanceLogStatus = "completed" // 已签退
)

// AttendanceLog 对应于数据库中的 attendance_logs 表，一行代表一段工作时段。
// 每次刷卡在"开启新时段"和"关闭当前时段"之间切换，一天内可以有任意多段。
type AttendanceLog struct {
	ID           int64               `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeDbID int64               `json:"employeeDbId" gorm:"column:employee_db_id;not null;index"`       // 员工记录的数据库 ID
	Rfid         string              `json:"rfid" gorm:"column:rfid;not null;size:100;index"`                // 刷卡时使用的 RFID 卡号
	Date         time.Time           `json:"date" gorm:"column:date;type:date;not null"`                     // 考勤日期
	TimeIn       time.Time           `json:"timeIn" gorm:"column:time_in;not null"`                          // 签到时间
	TimeOut      *time.Time          `json:"timeOut,omitempty" gorm:"column:time_out"`                       // 签退时间，未签退时为空
	Status       AttendanceLogStatus `json:"status" gorm:"column:status;not null;default:'active';size:50"`  // active / completed
	CreatedAt    time.Time           `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time           `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 AttendanceLog 结构体对应的数据库表名
func (AttendanceLog) TableName() string {
	return "attendance_logs"
}
