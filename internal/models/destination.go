package models

import (
	"time"
)

// Destination 对应于数据库中的 destinations 表（楼层/部门等可到访地点）
type Destination struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"column:name;not null;size:255"`
	Floor       *string   `json:"floor,omitempty" gorm:"column:floor;size:100"`
	Description *string   `json:"description,omitempty" gorm:"column:description;type:text"`
	IsActive    bool      `json:"isActive" gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 Destination 结构体对应的数据库表名
func (Destination) TableName() string {
	return "destinations"
}
