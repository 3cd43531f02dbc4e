package models

import (
	"time"
)

// Setting 对应于数据库中的 settings 表，按唯一 key 存储站点级配置项。
type Setting struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Key       string    `json:"key" gorm:"column:key;unique;not null;size:255"`
	Value     string    `json:"value" gorm:"column:value;not null;type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 Setting 结构体对应的数据库表名
func (Setting) TableName() string {
	return "settings"
}
