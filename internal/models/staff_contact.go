package models

import (
	"time"
)

// StaffContact 对应于数据库中的 staff_contacts 表，是可接收访客到访通知的内部联系人。
type StaffContact struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"column:name;not null;size:255"`
	Department   *string   `json:"department,omitempty" gorm:"column:department;size:255"`
	MobileNumber string    `json:"mobileNumber" gorm:"column:mobile_number;not null;size:50"` // 接收短信通知的手机号
	Email        *string   `json:"email,omitempty" gorm:"column:email;size:255"`
	IsActive     bool      `json:"isActive" gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 StaffContact 结构体对应的数据库表名
func (StaffContact) TableName() string {
	return "staff_contacts"
}
