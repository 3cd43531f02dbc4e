package repositories

import (
	"errors"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// DestinationRepository 定义了到访地点数据仓库的接口
type DestinationRepository interface {
	CreateDestination(destination *models.Destination) (*models.Destination, error)
	GetDestinations() ([]models.Destination, error)
	GetDestinationByID(id int64) (*models.Destination, error)
	UpdateDestination(id int64, updates map[string]interface{}) (*models.Destination, error)
	DeleteDestination(id int64) error
}

// gormDestinationRepository 是 DestinationRepository 的 GORM 实现
type gormDestinationRepository struct {
	db *gorm.DB
}

// NewGormDestinationRepository 创建一个新的 gormDestinationRepository 实例
func NewGormDestinationRepository(db *gorm.DB) DestinationRepository {
	return &gormDestinationRepository{db: db}
}

// CreateDestination 在数据库中创建一条到访地点记录
func (r *gormDestinationRepository) CreateDestination(destination *models.Destination) (*models.Destination, error) {
	if err := r.db.Create(destination).Error; err != nil {
		return nil, err
	}
	return destination, nil
}

// GetDestinations 返回全部到访地点，按名称排序
func (r *gormDestinationRepository) GetDestinations() ([]models.Destination, error) {
	var destinations []models.Destination
	if err := r.db.Order("name asc").Find(&destinations).Error; err != nil {
		return nil, err
	}
	return destinations, nil
}

// GetDestinationByID 根据数据库 ID 查询单条到访地点
func (r *gormDestinationRepository) GetDestinationByID(id int64) (*models.Destination, error) {
	var destination models.Destination
	if err := r.db.First(&destination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &destination, nil
}

// UpdateDestination 更新数据库中指定ID的到访地点
func (r *gormDestinationRepository) UpdateDestination(id int64, updates map[string]interface{}) (*models.Destination, error) {
	var destination models.Destination
	if err := r.db.First(&destination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.Destination{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.First(&destination, id).Error; err != nil {
		return nil, err
	}
	return &destination, nil
}

// DeleteDestination 删除指定ID的到访地点
func (r *gormDestinationRepository) DeleteDestination(id int64) error {
	result := r.db.Delete(&models.Destination{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
