package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/visitor_management/internal/models"
	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，可以重用 gorm 的错误或自定义
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrVisitorNotFound 表示没有处于预期状态的访客记录可供状态流转
var ErrVisitorNotFound = errors.New("访客记录未找到")

// ErrApprovalTokenNotFound 表示审批令牌不存在（或已被消费后清空）
var ErrApprovalTokenNotFound = errors.New("审批令牌不存在或链接已失效")

// ErrApprovalAlreadyResponded 表示该审批令牌已被响应过
var ErrApprovalAlreadyResponded = errors.New("该审批已被响应过")

// VisitorRepository 定义了访客数据仓库的接口
type VisitorRepository interface {
	CreateVisitor(visitor *models.Visitor) (*models.Visitor, error)
	// GetVisitors 按时间范围查询访客：入场/离场时间窗与 [start, end] 有交集的记录，
	// 并始终包含尚未入场的 registered 记录。start/end 为 nil 时返回全部。
	GetVisitors(startDate, endDate *time.Time) ([]models.Visitor, error)
	GetVisitorByID(id int64) (*models.Visitor, error)
	// GetActiveVisitors 返回当前在楼内（status = checked_in）的访客
	GetActiveVisitors() ([]models.Visitor, error)
	// FindActiveByRfid 查询持有此卡且尚未离场（exit_time IS NULL）的访客，
	// 用于登记时的占用检查。未找到时返回 (nil, nil)。
	FindActiveByRfid(rfid string) (*models.Visitor, error)
	GetVisitorByApprovalToken(token string) (*models.Visitor, error)
	UpdateVisitor(id int64, updates map[string]interface{}) (*models.Visitor, error)
	// CheckInByRfid 将一条 entry_time 为空的登记记录流转为 checked_in。
	// 整个流转是单条带状态谓词的 UPDATE，不存在先查后改的竞态窗口。
	CheckInByRfid(rfid string) (*models.Visitor, error)
	// CheckOutByRfid 将一条已入场未离场的记录流转为 checked_out，
	// 并在同一事务内把访客占用的通行证放回可用池。
	CheckOutByRfid(rfid string) (*models.Visitor, error)
	// RespondToApproval 原子地消费一次性审批令牌并记录响应，令牌随即被清空。
	RespondToApproval(token string, response models.ApprovalStatus) (*models.Visitor, error)
	DeleteVisitor(id int64) error
}

// gormVisitorRepository 是 VisitorRepository 的 GORM 实现
type gormVisitorRepository struct {
	db *gorm.DB
}

// NewGormVisitorRepository 创建一个新的 gormVisitorRepository 实例
func NewGormVisitorRepository(db *gorm.DB) VisitorRepository {
	return &gormVisitorRepository{db: db}
}

// CreateVisitor 在数据库中创建一条新的访客登记记录
func (r *gormVisitorRepository) CreateVisitor(visitor *models.Visitor) (*models.Visitor, error) {
	if err := r.db.Create(visitor).Error; err != nil {
		return nil, err
	}
	return visitor, nil
}

// GetVisitors 按时间范围查询访客记录
func (r *gormVisitorRepository) GetVisitors(startDate, endDate *time.Time) ([]models.Visitor, error) {
	var visitors []models.Visitor

	queryBuilder := r.db.Model(&models.Visitor{})
	if startDate != nil && endDate != nil {
		// 三类记录取并集：
		// 1. 入场时间落在范围内的
		// 2. 入场早于范围结束、且离场晚于范围开始（或尚未离场）的，即停留时段与范围有交集
		// 3. 尚未入场的 registered 登记记录，始终返回
		queryBuilder = queryBuilder.Where(
			r.db.Where("entry_time IS NOT NULL AND entry_time >= ? AND entry_time <= ?", *startDate, *endDate).
				Or("entry_time IS NOT NULL AND entry_time <= ? AND (exit_time IS NULL OR exit_time >= ?)", *endDate, *startDate).
				Or("entry_time IS NULL AND status = ?", models.VisitorStatusRegistered),
		)
	}

	if err := queryBuilder.Order("entry_time desc").Find(&visitors).Error; err != nil {
		return nil, err
	}
	return visitors, nil
}

// GetVisitorByID 根据数据库 ID 查询单个访客
func (r *gormVisitorRepository) GetVisitorByID(id int64) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := r.db.First(&visitor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &visitor, nil
}

// GetActiveVisitors 返回当前在楼内的访客，按入场时间倒序
func (r *gormVisitorRepository) GetActiveVisitors() ([]models.Visitor, error) {
	var visitors []models.Visitor
	err := r.db.Where("status = ?", models.VisitorStatusCheckedIn).
		Order("entry_time desc").
		Find(&visitors).Error
	if err != nil {
		return nil, err
	}
	return visitors, nil
}

// FindActiveByRfid 查询持有此卡且尚未离场的访客。
// 离场后的记录不会命中，因此同一张卡可以在前一位访客离场后重新发放。
func (r *gormVisitorRepository) FindActiveByRfid(rfid string) (*models.Visitor, error) {
	trimmed := strings.TrimSpace(rfid)
	var visitor models.Visitor
	err := r.db.Where("rfid = ? AND exit_time IS NULL", trimmed).First(&visitor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visitor, nil
}

// GetVisitorByApprovalToken 根据审批令牌查询访客
func (r *gormVisitorRepository) GetVisitorByApprovalToken(token string) (*models.Visitor, error) {
	var visitor models.Visitor
	err := r.db.Where("approval_token = ?", token).First(&visitor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalTokenNotFound
		}
		return nil, err
	}
	return &visitor, nil
}

// UpdateVisitor 更新数据库中指定ID的访客信息
// updates 是一个包含要更新字段及其新值的 map
func (r *gormVisitorRepository) UpdateVisitor(id int64, updates map[string]interface{}) (*models.Visitor, error) {
	var visitor models.Visitor
	// 首先，检查记录是否存在
	if err := r.db.First(&visitor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.Visitor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新查询更新后的记录并返回
	if err := r.db.First(&visitor, id).Error; err != nil {
		return nil, err // 理论上此时应该能找到
	}
	return &visitor, nil
}

// CheckInByRfid 执行入场流转：registered -> checked_in。
// 候选行由子查询选出（同卡多条登记时取最早一条），状态谓词直接写进
// UPDATE 的 WHERE 子句，并发的两次刷卡最多只有一次能改到行。
func (r *gormVisitorRepository) CheckInByRfid(rfid string) (*models.Visitor, error) {
	trimmed := strings.TrimSpace(rfid)
	now := time.Now()

	var visitor models.Visitor
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Visitor{}).
			Where("id = (?)", tx.Model(&models.Visitor{}).
				Select("MIN(id)").
				Where("rfid = ? AND entry_time IS NULL", trimmed)).
			Where("entry_time IS NULL").
			Updates(map[string]interface{}{
				"status":     models.VisitorStatusCheckedIn,
				"entry_time": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVisitorNotFound
		}

		// 取刚流转的记录用于响应
		return tx.Where("rfid = ? AND entry_time = ? AND exit_time IS NULL", trimmed, now).
			First(&visitor).Error
	})
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// CheckOutByRfid 执行离场流转：checked_in -> checked_out。
// 与入场同样用单条条件 UPDATE 完成流转；随后在同一事务内释放通行证。
func (r *gormVisitorRepository) CheckOutByRfid(rfid string) (*models.Visitor, error) {
	trimmed := strings.TrimSpace(rfid)
	now := time.Now()

	var visitor models.Visitor
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Visitor{}).
			Where("id = (?)", tx.Model(&models.Visitor{}).
				Select("MIN(id)").
				Where("rfid = ? AND entry_time IS NOT NULL AND exit_time IS NULL", trimmed)).
			Where("exit_time IS NULL").
			Updates(map[string]interface{}{
				"status":    models.VisitorStatusCheckedOut,
				"exit_time": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVisitorNotFound
		}

		if err := tx.Where("rfid = ? AND exit_time = ?", trimmed, now).
			First(&visitor).Error; err != nil {
			return err
		}

		// 访客持有实体通行证时，离场后放回可用池
		if visitor.PassNumber != nil && *visitor.PassNumber != "" {
			if err := tx.Model(&models.GuestPass{}).
				Where("pass_number = ?", *visitor.PassNumber).
				Update("is_available", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// RespondToApproval 消费一次性审批令牌。
// UPDATE 的 WHERE 同时匹配令牌和 pending 状态，令牌在同一条语句里被清空，
// 因此重复提交要么找不到令牌（已清空），要么命中非 pending 状态。
func (r *gormVisitorRepository) RespondToApproval(token string, response models.ApprovalStatus) (*models.Visitor, error) {
	var visitor models.Visitor
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("approval_token = ?", token).First(&visitor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApprovalTokenNotFound
			}
			return err
		}

		result := tx.Model(&models.Visitor{}).
			Where("id = ? AND approval_token = ? AND approval_status = ?",
				visitor.ID, token, models.ApprovalStatusPending).
			Updates(map[string]interface{}{
				"approval_status": response,
				"approval_token":  nil,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 令牌还挂在记录上但状态已非 pending
			return ErrApprovalAlreadyResponded
		}

		return tx.First(&visitor, visitor.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// DeleteVisitor 删除指定ID的访客记录（软删除）
func (r *gormVisitorRepository) DeleteVisitor(id int64) error {
	result := r.db.Delete(&models.Visitor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
