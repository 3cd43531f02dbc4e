package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	ErrInvalidRfidFormat = errors.New("无效的RFID卡号格式，只允许4-64位字母或数字")
	ErrInvalidDateFormat = errors.New("日期格式无效，请使用 YYYY-MM-DD 或类似格式") // 保持通用错误信息
)

var rfidPattern = regexp.MustCompile(`^[a-zA-Z0-9]{4,64}$`)

// IsNumeric 检查字符串是否只包含数字
func IsNumeric(s string) bool {
	if s == "" {
		return false // 空字符串不视为数字
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidateRfid 校验 RFID 卡号格式。
// 如果有效，返回 nil；否则返回具体的错误。
func ValidateRfid(rfid string) error {
	trimmed := strings.TrimSpace(rfid)
	if !rfidPattern.MatchString(trimmed) {
		return ErrInvalidRfidFormat
	}
	return nil
}

// SanitizeFileName 将姓名等任意输入转换为可安全用作文件名的形式，
// 非字母数字字符全部替换为下划线。
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ParseDate 解析日期字符串，支持多种常见格式。
// 支持 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D, YYYY/M/D 等及其变体。
func ParseDate(dateStr string) (time.Time, error) {
	trimmedDateStr := strings.TrimSpace(dateStr)
	if trimmedDateStr == "" {
		return time.Time{}, ErrInvalidDateFormat // 空日期字符串视为无效
	}

	normalizedDateStr := strings.ReplaceAll(trimmedDateStr, "/", "-")

	// 包含补零和不补零的情况
	dateLayouts := []string{
		"2006-01-02T15:04:05Z07:00", // RFC3339，前端日期选择器会带时间
		"2006-01-02",                // YYYY-MM-DD
		"2006-1-2",                  // YYYY-M-D
		"2006-01-2",                 // YYYY-MM-D
		"2006-1-02",                 // YYYY-M-DD
	}

	var parsedDate time.Time
	var err error

	for _, layout := range dateLayouts {
		parsedDate, err = time.Parse(layout, normalizedDateStr)
		if err == nil {
			return parsedDate, nil // 解析成功，立即返回
		}
	}
	// 所有格式尝试完毕后仍失败
	return time.Time{}, ErrInvalidDateFormat
}
