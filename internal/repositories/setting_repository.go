package repositories

import (
	"errors"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// SettingRepository 定义了站点配置数据仓库的接口
type SettingRepository interface {
	GetSettings() ([]models.Setting, error)
	GetSettingByKey(key string) (*models.Setting, error)
	// UpsertSetting 按 key 写入配置：已存在则更新 value，否则创建
	UpsertSetting(key, value string) (*models.Setting, error)
}

// gormSettingRepository 是 SettingRepository 的 GORM 实现
type gormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository 创建一个新的 gormSettingRepository 实例
func NewGormSettingRepository(db *gorm.DB) SettingRepository {
	return &gormSettingRepository{db: db}
}

// GetSettings 返回全部配置项
func (r *gormSettingRepository) GetSettings() ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// GetSettingByKey 根据 key 查询单条配置
func (r *gormSettingRepository) GetSettingByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// UpsertSetting 按 key 写入配置
func (r *gormSettingRepository) UpsertSetting(key, value string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("key = ?", key).First(&setting).Error
		if err == nil {
			return tx.Model(&models.Setting{}).Where("key = ?", key).Update("value", value).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		setting = models.Setting{Key: key, Value: value}
		return tx.Create(&setting).Error
	})
	if err != nil {
		return nil, err
	}

	// 重新查询，保证返回最新值
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
