package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/visitor_management/configs"
	"github.com/visitor_management/internal/models"
	"github.com/visitor_management/internal/repositories"
	"github.com/visitor_management/pkg/sms"
)

// ErrContactNotFound 表示通知联系人未找到
var ErrContactNotFound = errors.New("联系人未找到")

// ErrApprovalNotFound 表示审批令牌不存在或链接已失效
var ErrApprovalNotFound = errors.New("访客审批不存在或链接已失效")

// ErrAlreadyResponded 表示该审批已被响应过，一次性令牌不能复用
var ErrAlreadyResponded = errors.New("该审批已被响应过")

// NotificationRequest 是发送到访通知的输入
type NotificationRequest struct {
	ContactID   int64
	VisitorID   *int64 // 带访客ID时会签发一次性审批令牌
	VisitorName string
	Destination string
	Purpose     string
}

// NotificationResult 是发送到访通知的结果
type NotificationResult struct {
	Message      string `json:"message"`
	Recipient    string `json:"recipient"`
	ApprovalLink string `json:"approvalLink,omitempty"`
}

// ApprovalInfo 是审批链接打开时展示给被访人的访客摘要
type ApprovalInfo struct {
	ID              int64                  `json:"id"`
	Name            string                 `json:"name"`
	DestinationName *string                `json:"destinationName,omitempty"`
	PersonToVisit   *string                `json:"personToVisit,omitempty"`
	Purpose         string                 `json:"purpose"`
	ApprovalStatus  *models.ApprovalStatus `json:"approvalStatus,omitempty"`
}

// NotificationService 定义了通知与审批服务的接口
type NotificationService interface {
	// SendNotification 向联系人发送访客到访短信。
	// 请求中带 visitorId 时为该访客签发一次性审批令牌并在短信里附上审批链接，
	// 短信网关对接不在范围内，pkg/sms 只记录日志并返回成功。
	SendNotification(req *NotificationRequest) (*NotificationResult, error)
	// GetApprovalInfo 按令牌查询待审批访客的摘要
	GetApprovalInfo(token string) (*ApprovalInfo, error)
	// RespondToApproval 消费一次性令牌并记录 approved/denied 响应。
	// 令牌消费后即被清空，重复响应返回 ErrAlreadyResponded 或 ErrApprovalNotFound。
	RespondToApproval(token string, response models.ApprovalStatus) (*models.Visitor, error)
}

// notificationService 是 NotificationService 的实现
type notificationService struct {
	contactRepo repositories.StaffContactRepository
	visitorRepo repositories.VisitorRepository
	appConfig   *configs.Configuration
}

// NewNotificationService 创建一个新的 notificationService 实例
func NewNotificationService(contactRepo repositories.StaffContactRepository, visitorRepo repositories.VisitorRepository) NotificationService {
	return &notificationService{
		contactRepo: contactRepo,
		visitorRepo: visitorRepo,
		appConfig:   &configs.AppConfig,
	}
}

// SendNotification 发送访客到访通知
func (s *notificationService) SendNotification(req *NotificationRequest) (*NotificationResult, error) {
	contact, err := s.contactRepo.GetStaffContactByID(req.ContactID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}

	approvalLink := ""
	if req.VisitorID != nil {
		// 为访客签发一次性审批令牌；重新发送通知会轮换令牌并重置为 pending
		token := uuid.NewString()
		_, err := s.visitorRepo.UpdateVisitor(*req.VisitorID, map[string]interface{}{
			"approval_token":  token,
			"approval_status": models.ApprovalStatusPending,
		})
		if err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				return nil, ErrVisitorNotFound
			}
			return nil, err
		}
		approvalLink = fmt.Sprintf("%s/approve/%s", s.appConfig.FrontendBaseURL, token)
	}

	var message string
	if approvalLink != "" {
		message = fmt.Sprintf("Visitor %s has arrived at %s for %s. Allow Visitor? Reply at: %s",
			req.VisitorName, req.Destination, req.Purpose, approvalLink)
	} else {
		message = fmt.Sprintf("Visitor %s has arrived at %s for %s. Please come to the reception desk.",
			req.VisitorName, req.Destination, req.Purpose)
	}

	if err := sms.SendNotificationSMS(contact.MobileNumber, contact.Name, message); err != nil {
		return nil, err
	}

	return &NotificationResult{
		Message:      fmt.Sprintf("Notification sent to %s", contact.Name),
		Recipient:    contact.MobileNumber,
		ApprovalLink: approvalLink,
	}, nil
}

// GetApprovalInfo 按令牌查询待审批访客的摘要
func (s *notificationService) GetApprovalInfo(token string) (*ApprovalInfo, error) {
	visitor, err := s.visitorRepo.GetVisitorByApprovalToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrApprovalTokenNotFound) {
			return nil, ErrApprovalNotFound
		}
		return nil, err
	}

	return &ApprovalInfo{
		ID:              visitor.ID,
		Name:            visitor.Name,
		DestinationName: visitor.DestinationName,
		PersonToVisit:   visitor.PersonToVisit,
		Purpose:         visitor.Purpose,
		ApprovalStatus:  visitor.ApprovalStatus,
	}, nil
}

// RespondToApproval 消费一次性令牌并记录响应
func (s *notificationService) RespondToApproval(token string, response models.ApprovalStatus) (*models.Visitor, error) {
	visitor, err := s.visitorRepo.RespondToApproval(token, response)
	if err != nil {
		if errors.Is(err, repositories.ErrApprovalTokenNotFound) {
			return nil, ErrApprovalNotFound
		}
		if errors.Is(err, repositories.ErrApprovalAlreadyResponded) {
			return nil, ErrAlreadyResponded
		}
		return nil, err
	}
	return visitor, nil
}
