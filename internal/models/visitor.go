package models

import (
	"time"

	"gorm.io/gorm"
)

// VisitorStatus 定义了访客的生命周期状态类型
type VisitorStatus string

const (
	VisitorStatusRegistered VisitorStatus = "registered"  // 已登记，尚未入场
	VisitorStatusCheckedIn  VisitorStatus = "checked_in"  // 已刷卡入场
	VisitorStatusCheckedOut VisitorStatus = "checked_out" // 已刷卡离场，终态
)

// ApprovalStatus 定义了访客审批的状态类型
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusDenied   ApprovalStatus = "denied"
)

// IsValidApprovalResponse 校验审批响应值是否合法（只允许 approved / denied）
func IsValidApprovalResponse(s string) bool {
	return s == string(ApprovalStatusApproved) || s == string(ApprovalStatusDenied)
}

// Visitor 对应于数据库中的 visitors 表
// 状态与时间戳的约定：entry_time 为空 => registered；
// entry_time 非空且 exit_time 为空 => checked_in；两者均非空 => checked_out。
type Visitor struct {
	ID              int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string          `json:"name" gorm:"column:name;not null;size:255"`
	Purpose         string          `json:"purpose" gorm:"column:purpose;not null;size:255"`                             // 来访事由
	PersonToVisit   *string         `json:"personToVisit,omitempty" gorm:"column:person_to_visit;size:255"`              // 拜访对象
	DestinationID   *int64          `json:"destinationId,omitempty" gorm:"column:destination_id"`                        // 兼容单目的地的旧字段
	Destinations    string          `json:"destinations" gorm:"column:destinations;type:text;not null;default:'[]'"`     // 目的地ID的JSON数组字符串
	DestinationName *string         `json:"destinationName,omitempty" gorm:"column:destination_name;size:255"`           // 冗余的目的地名称，便于展示
	IDScanImage     *string         `json:"idScanImage,omitempty" gorm:"column:id_scan_image;type:text"`                 // 证件扫描图片的相对路径
	IDOcrText       *string         `json:"idOcrText,omitempty" gorm:"column:id_ocr_text;type:text"`                     // 证件OCR文本，由外部采集端提供
	PhotoImage      *string         `json:"photoImage,omitempty" gorm:"column:photo_image;type:text"`                    // 现场照片的相对路径
	Rfid            *string         `json:"rfid,omitempty" gorm:"column:rfid;size:100;index"`                            // RFID卡号
	PassNumber      *string         `json:"passNumber,omitempty" gorm:"column:pass_number;size:100"`                     // 访客通行证编号
	EntryTime       *time.Time      `json:"entryTime,omitempty" gorm:"column:entry_time"`                                // 入场时间
	ExitTime        *time.Time      `json:"exitTime,omitempty" gorm:"column:exit_time"`                                  // 离场时间
	Status          VisitorStatus   `json:"status" gorm:"column:status;not null;default:'registered';size:50"`           // 生命周期状态
	ApprovalStatus  *ApprovalStatus `json:"approvalStatus,omitempty" gorm:"column:approval_status;size:50"`              // 审批状态
	ApprovalToken   *string         `json:"approvalToken,omitempty" gorm:"column:approval_token;size:255;index"`         // 一次性审批令牌，消费后清空
	CreatedAt       time.Time       `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt  `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 Visitor 结构体对应的数据库表名
func (Visitor) TableName() string {
	return "visitors"
}
