package repositories

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// ErrPassNumberExists 表示通行证编号已存在
var ErrPassNumberExists = errors.New("通行证编号已存在")

// GuestPassRepository 定义了访客通行证数据仓库的接口
type GuestPassRepository interface {
	CreateGuestPass(pass *models.GuestPass) (*models.GuestPass, error)
	GetGuestPasses() ([]models.GuestPass, error)
	GetGuestPassByID(id int64) (*models.GuestPass, error)
	UpdateGuestPass(id int64, updates map[string]interface{}) (*models.GuestPass, error)
	DeleteGuestPass(id int64) error
	// GenerateGuestPasses 批量生成编号形如 V0001 的通行证并放入可用池
	GenerateGuestPasses(count int) ([]models.GuestPass, error)
}

// gormGuestPassRepository 是 GuestPassRepository 的 GORM 实现
type gormGuestPassRepository struct {
	db *gorm.DB
}

// NewGormGuestPassRepository 创建一个新的 gormGuestPassRepository 实例
func NewGormGuestPassRepository(db *gorm.DB) GuestPassRepository {
	return &gormGuestPassRepository{db: db}
}

// CreateGuestPass 在数据库中创建一张新通行证
func (r *gormGuestPassRepository) CreateGuestPass(pass *models.GuestPass) (*models.GuestPass, error) {
	if err := r.db.Create(pass).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") || strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return nil, ErrPassNumberExists
		}
		return nil, err
	}
	return pass, nil
}

// GetGuestPasses 返回全部通行证，按创建时间倒序
func (r *gormGuestPassRepository) GetGuestPasses() ([]models.GuestPass, error) {
	var passes []models.GuestPass
	if err := r.db.Order("created_at desc").Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

// GetGuestPassByID 根据数据库 ID 查询单张通行证
func (r *gormGuestPassRepository) GetGuestPassByID(id int64) (*models.GuestPass, error) {
	var pass models.GuestPass
	if err := r.db.First(&pass, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &pass, nil
}

// UpdateGuestPass 更新数据库中指定ID的通行证信息
func (r *gormGuestPassRepository) UpdateGuestPass(id int64, updates map[string]interface{}) (*models.GuestPass, error) {
	var pass models.GuestPass
	if err := r.db.First(&pass, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.GuestPass{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.First(&pass, id).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

// DeleteGuestPass 删除指定ID的通行证
func (r *gormGuestPassRepository) DeleteGuestPass(id int64) error {
	result := r.db.Delete(&models.GuestPass{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GenerateGuestPasses 批量生成通行证。编号随机生成，撞上已有编号时跳过重试，
// 因此实际生成数量等于 count（除非号段接近用尽）。
func (r *gormGuestPassRepository) GenerateGuestPasses(count int) ([]models.GuestPass, error) {
	passes := make([]models.GuestPass, 0, count)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		created := 0
		attempts := 0
		for created < count && attempts < count*20 {
			attempts++
			passNumber := fmt.Sprintf("V%04d", rand.Intn(10000))

			var existing models.GuestPass
			err := tx.Where("pass_number = ?", passNumber).First(&existing).Error
			if err == nil {
				continue // 编号已占用，换一个
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			qrCode := passNumber
			pass := models.GuestPass{
				PassNumber:  passNumber,
				QrCode:      &qrCode,
				IsAvailable: true,
			}
			if err := tx.Create(&pass).Error; err != nil {
				return err
			}
			passes = append(passes, pass)
			created++
		}
		if created < count {
			return errors.New("可用通行证编号不足，无法完成批量生成")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return passes, nil
}
