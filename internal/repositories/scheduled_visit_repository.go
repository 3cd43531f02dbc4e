package repositories

import (
	"errors"
	"time"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// ScheduledVisitRepository 定义了预约来访数据仓库的接口
type ScheduledVisitRepository interface {
	CreateScheduledVisit(visit *models.ScheduledVisit) (*models.ScheduledVisit, error)
	// GetScheduledVisits 按预计来访时间范围查询，start/end 为 nil 时返回全部
	GetScheduledVisits(startDate, endDate *time.Time) ([]models.ScheduledVisit, error)
	GetScheduledVisitByID(id int64) (*models.ScheduledVisit, error)
	UpdateScheduledVisit(id int64, updates map[string]interface{}) (*models.ScheduledVisit, error)
	DeleteScheduledVisit(id int64) error
}

// gormScheduledVisitRepository 是 ScheduledVisitRepository 的 GORM 实现
type gormScheduledVisitRepository struct {
	db *gorm.DB
}

// NewGormScheduledVisitRepository 创建一个新的 gormScheduledVisitRepository 实例
func NewGormScheduledVisitRepository(db *gorm.DB) ScheduledVisitRepository {
	return &gormScheduledVisitRepository{db: db}
}

// CreateScheduledVisit 在数据库中创建一条预约来访记录
func (r *gormScheduledVisitRepository) CreateScheduledVisit(visit *models.ScheduledVisit) (*models.ScheduledVisit, error) {
	if err := r.db.Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

// GetScheduledVisits 按预计来访时间范围查询，按预计时间倒序
func (r *gormScheduledVisitRepository) GetScheduledVisits(startDate, endDate *time.Time) ([]models.ScheduledVisit, error) {
	var visits []models.ScheduledVisit

	queryBuilder := r.db.Model(&models.ScheduledVisit{})
	if startDate != nil && endDate != nil {
		queryBuilder = queryBuilder.Where("expected_date >= ? AND expected_date <= ?", *startDate, *endDate)
	}

	if err := queryBuilder.Order("expected_date desc").Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// GetScheduledVisitByID 根据数据库 ID 查询单条预约
func (r *gormScheduledVisitRepository) GetScheduledVisitByID(id int64) (*models.ScheduledVisit, error) {
	var visit models.ScheduledVisit
	if err := r.db.First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &visit, nil
}

// UpdateScheduledVisit 更新数据库中指定ID的预约
func (r *gormScheduledVisitRepository) UpdateScheduledVisit(id int64, updates map[string]interface{}) (*models.ScheduledVisit, error) {
	var visit models.ScheduledVisit
	if err := r.db.First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.ScheduledVisit{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.First(&visit, id).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// DeleteScheduledVisit 删除指定ID的预约
func (r *gormScheduledVisitRepository) DeleteScheduledVisit(id int64) error {
	result := r.db.Delete(&models.ScheduledVisit{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
