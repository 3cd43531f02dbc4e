package repositories

import (
	"errors"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// StaffContactRepository 定义了内部联系人数据仓库的接口
type StaffContactRepository interface {
	CreateStaffContact(contact *models.StaffContact) (*models.StaffContact, error)
	GetStaffContacts() ([]models.StaffContact, error)
	GetStaffContactByID(id int64) (*models.StaffContact, error)
	UpdateStaffContact(id int64, updates map[string]interface{}) (*models.StaffContact, error)
	DeleteStaffContact(id int64) error
}

// gormStaffContactRepository 是 StaffContactRepository 的 GORM 实现
type gormStaffContactRepository struct {
	db *gorm.DB
}

// NewGormStaffContactRepository 创建一个新的 gormStaffContactRepository 实例
func NewGormStaffContactRepository(db *gorm.DB) StaffContactRepository {
	return &gormStaffContactRepository{db: db}
}

// CreateStaffContact 在数据库中创建一条联系人记录
func (r *gormStaffContactRepository) CreateStaffContact(contact *models.StaffContact) (*models.StaffContact, error) {
	if err := r.db.Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// GetStaffContacts 返回全部联系人，按姓名排序
func (r *gormStaffContactRepository) GetStaffContacts() ([]models.StaffContact, error) {
	var contacts []models.StaffContact
	if err := r.db.Order("name asc").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetStaffContactByID 根据数据库 ID 查询单条联系人
func (r *gormStaffContactRepository) GetStaffContactByID(id int64) (*models.StaffContact, error) {
	var contact models.StaffContact
	if err := r.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// UpdateStaffContact 更新数据库中指定ID的联系人
func (r *gormStaffContactRepository) UpdateStaffContact(id int64, updates map[string]interface{}) (*models.StaffContact, error) {
	var contact models.StaffContact
	if err := r.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.StaffContact{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// DeleteStaffContact 删除指定ID的联系人
func (r *gormStaffContactRepository) DeleteStaffContact(id int64) error {
	result := r.db.Delete(&models.StaffContact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
