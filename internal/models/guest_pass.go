package models

import (
	"time"
)

// GuestPass 对应于数据库中的 guest_passes 表，代表一张可复用的实体通行卡。
// 访客离场时通行证回到可用池（is_available = true）。
type GuestPass struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PassNumber  string    `json:"passNumber" gorm:"column:pass_number;unique;not null;size:100"` // 通行证编号，如 V0001
	QrCode      *string   `json:"qrCode,omitempty" gorm:"column:qr_code;size:255"`               // 二维码内容，为空时等同于编号
	IsAvailable bool      `json:"isAvailable" gorm:"column:is_available;not null;default:true"`  // 是否在可用池中
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 GuestPass 结构体对应的数据库表名
func (GuestPass) TableName() string {
	return "guest_passes"
}
