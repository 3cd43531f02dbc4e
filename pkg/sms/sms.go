package sms

import (
	"fmt"
	"log"
	"os"
)

// SMSConfig holds the SMS gateway configuration
type SMSConfig struct {
	GatewayURL string
	APIKey     string
	SenderID   string
}

// LoadSMSConfigFromEnv loads SMS gateway configuration from environment variables.
// 网关未配置不是错误：此时发送退化为仅记录日志（参见 SendNotificationSMS）。
func LoadSMSConfigFromEnv() (*SMSConfig, error) {
	gatewayURL := os.Getenv("SMS_GATEWAY_URL")
	apiKey := os.Getenv("SMS_API_KEY")
	senderID := os.Getenv("SMS_SENDER_ID")

	if gatewayURL == "" {
		return nil, fmt.Errorf("SMS_GATEWAY_URL must be set")
	}

	return &SMSConfig{
		GatewayURL: gatewayURL,
		APIKey:     apiKey,   // APIKey can be empty for some gateways
		SenderID:   senderID, // SenderID can be empty for some gateways
	}, nil
}

// SendNotificationSMS 向指定手机号发送到访通知短信。
// 真正的网关对接不在本系统范围内：无论网关是否配置，
// 这里都只记录完整的短信内容并返回成功，保证上层流程可走通。
func SendNotificationSMS(toMobile string, contactName string, message string) error {
	if _, err := LoadSMSConfigFromEnv(); err != nil {
		log.Printf("SMS 网关未配置，仅记录: to=%s (%s) message=%q", toMobile, contactName, message)
		return nil
	}

	// TODO: 接入实际短信网关 HTTP API（SMS_GATEWAY_URL 已配置时）
	log.Printf("SMS Notification to %s (%s): %s", contactName, toMobile, message)
	return nil
}
