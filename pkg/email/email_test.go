package email

import (
	"os"
	"testing"
	"time"
)

func TestSendScheduledVisitEmail(t *testing.T) {
	// 从环境变量读取测试配置
	recipientEmail := os.Getenv("TEST_RECIPIENT_EMAIL")
	visitorName := os.Getenv("TEST_VISITOR_NAME")

	// SMTP 配置由 SendScheduledVisitEmail 内部检查，这里只确保测试的接收者邮箱已设置
	if recipientEmail == "" {
		t.Skip("Skipping email sending test: TEST_RECIPIENT_EMAIL environment variable not set.")
	}

	if visitorName == "" {
		visitorName = "测试访客"
	}

	t.Logf("Attempting to send scheduled visit email to %s using SMTP server %s:%s...",
		recipientEmail, os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"))
	t.Log("Ensure SMTP environment variables are set: SMTP_HOST, SMTP_PORT, SMTP_SENDER_EMAIL, SMTP_USERNAME, SMTP_PASSWORD")

	err := SendScheduledVisitEmail(recipientEmail, visitorName, "前台测试接待人", "三楼会议室", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Errorf("SendScheduledVisitEmail failed: %v", err)
		t.Log("Please ensure all SMTP related environment variables (SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_SENDER_EMAIL) are correctly set and the SMTP server is reachable.")
	} else {
		t.Logf("Email sent request processed for %s. Please check the inbox to confirm reception.", recipientEmail)
	}
}
