package models

import (
	"time"
)

// ScheduledVisitStatus 定义了预约来访的状态类型
type ScheduledVisitStatus string

const (
	ScheduledVisitStatusPending   ScheduledVisitStatus = "pending"
	ScheduledVisitStatusConfirmed ScheduledVisitStatus = "confirmed"
	ScheduledVisitStatusCancelled ScheduledVisitStatus = "cancelled"
	ScheduledVisitStatusArrived   ScheduledVisitStatus = "arrived"
)

// IsValidScheduledVisitStatus 校验预约状态值是否合法
func IsValidScheduledVisitStatus(s string) bool {
	switch ScheduledVisitStatus(s) {
	case ScheduledVisitStatusPending, ScheduledVisitStatusConfirmed,
		ScheduledVisitStatusCancelled, ScheduledVisitStatusArrived:
		return true
	}
	return false
}

// ScheduledVisit 对应于数据库中的 scheduled_visits 表（预登记来访）
type ScheduledVisit struct {
	ID              int64                `json:"id" gorm:"primaryKey;autoIncrement"`
	VisitorName     string               `json:"visitorName" gorm:"column:visitor_name;not null;size:255"`
	VisitorEmail    *string              `json:"visitorEmail,omitempty" gorm:"column:visitor_email;size:255"`
	VisitorPhone    *string              `json:"visitorPhone,omitempty" gorm:"column:visitor_phone;size:50"`
	DestinationID   *int64               `json:"destinationId,omitempty" gorm:"column:destination_id"`
	DestinationName *string              `json:"destinationName,omitempty" gorm:"column:destination_name;size:255"`
	HostName        string               `json:"hostName" gorm:"column:host_name;not null;size:255"` // 接待人
	Purpose         string               `json:"purpose" gorm:"column:purpose;not null;size:255"`
	ExpectedDate    time.Time            `json:"expectedDate" gorm:"column:expected_date;not null"` // 预计来访时间
	Notes           *string              `json:"notes,omitempty" gorm:"column:notes;type:text"`
	Status          ScheduledVisitStatus `json:"status" gorm:"column:status;not null;default:'pending';size:50"`
	CreatedAt       time.Time            `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt       time.Time            `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 ScheduledVisit 结构体对应的数据库表名
func (ScheduledVisit) TableName() string {
	return "scheduled_visits"
}
