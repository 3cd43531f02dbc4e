package imagestore

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testDataURL() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
}

func TestSaveDataURL(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path, err := store.SaveDataURL(testDataURL(), "John Doe", "photo")
	if err != nil {
		t.Fatalf("保存图片失败: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/John_Doe_photo_") {
		t.Errorf("返回路径 = %q, 期望以 /uploads/John_Doe_photo_ 开头", path)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("返回路径 = %q, 期望以 .jpg 结尾", path)
	}

	// 文件内容应与解码后的载荷一致
	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	if err != nil {
		t.Fatalf("读取落盘文件失败: %v", err)
	}
	if string(content) != "fake image bytes" {
		t.Errorf("落盘内容 = %q, 期望 fake image bytes", content)
	}
}

func TestSaveDataURLRejectsNonDataURL(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.SaveDataURL("https://example.com/a.jpg", "张三", "photo"); !errors.Is(err, ErrNotDataURL) {
		t.Errorf("非 data URL 应返回 ErrNotDataURL, 实际 %v", err)
	}
	if _, err := store.SaveDataURL("data:image/jpeg;base64,!!!not-base64!!!", "张三", "photo"); !errors.Is(err, ErrInvalidBase64) {
		t.Errorf("非法 base64 应返回 ErrInvalidBase64, 实际 %v", err)
	}
	if _, err := store.SaveDataURL("data:image/jpeg;base64,", "张三", "photo"); !errors.Is(err, ErrInvalidBase64) {
		t.Errorf("空 base64 载荷应返回 ErrInvalidBase64, 实际 %v", err)
	}
}

func TestSaveOptional(t *testing.T) {
	store := NewStore(t.TempDir())

	if got := store.SaveOptional(nil, "张三", "photo"); got != nil {
		t.Errorf("nil 载荷应返回 nil, 实际 %v", got)
	}
	empty := ""
	if got := store.SaveOptional(&empty, "张三", "photo"); got != nil {
		t.Errorf("空载荷应返回 nil, 实际 %v", got)
	}

	// 非法载荷静默丢弃，不返回错误
	bad := "not a data url"
	if got := store.SaveOptional(&bad, "张三", "photo"); got != nil {
		t.Errorf("非法载荷应被静默丢弃, 实际 %v", got)
	}

	good := testDataURL()
	got := store.SaveOptional(&good, "张三", "photo")
	if got == nil || !strings.HasPrefix(*got, "/uploads/") {
		t.Errorf("合法载荷应返回相对路径, 实际 %v", got)
	}
}
