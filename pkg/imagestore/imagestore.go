package imagestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/visitor_management/pkg/utils"
)

// ErrNotDataURL 表示载荷不是 data:image/... 形式的 Data URL
var ErrNotDataURL = errors.New("图片载荷不是有效的 data URL")

// ErrInvalidBase64 表示 Data URL 中的 base64 部分无法解码
var ErrInvalidBase64 = errors.New("图片载荷的 base64 数据无效")

// Store 将登记时上传的内嵌图片落盘到 uploads 目录
type Store struct {
	dir string
}

// NewStore 创建一个指向指定上传目录的 Store
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SaveDataURL 解码 data:image/... 载荷并写入 <dir>/<sanitizedName>_<kind>_<毫秒时间戳>.jpg，
// 返回对外可引用的相对路径（如 /uploads/John_Doe_photo_1700000000000.jpg）。
// kind 用于区分同一个人的多张图片，例如 "photo" 和 "id"。
func (s *Store) SaveDataURL(dataURL, ownerName, kind string) (string, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return "", ErrNotDataURL
	}

	parts := strings.SplitN(dataURL, ",", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", ErrInvalidBase64
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidBase64
	}

	if mkErr := os.MkdirAll(s.dir, 0755); mkErr != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", mkErr)
	}

	fileName := fmt.Sprintf("%s_%s_%d.jpg", utils.SanitizeFileName(ownerName), kind, time.Now().UnixMilli())
	filePath := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return "", fmt.Errorf("写入图片文件失败: %w", err)
	}

	return "/uploads/" + fileName, nil
}

// SaveOptional 是登记流程使用的宽容版本：载荷为空返回 nil；
// 载荷存在但不是合法 Data URL 时静默丢弃（记录日志，不让登记失败）。
func (s *Store) SaveOptional(dataURL *string, ownerName, kind string) *string {
	if dataURL == nil || *dataURL == "" {
		return nil
	}

	path, err := s.SaveDataURL(*dataURL, ownerName, kind)
	if err != nil {
		// 非法的内嵌图片按"没有图片"处理
		log.Printf("丢弃无法解析的%s图片 (owner=%s): %v", kind, ownerName, err)
		return nil
	}
	return &path
}
