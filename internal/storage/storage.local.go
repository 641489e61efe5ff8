package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage lưu file vào thư mục trên đĩa, được phục vụ tĩnh tại publicPrefix
type LocalStorage struct {
	dir          string
	publicPrefix string
}

// NewLocalStorage tạo thư mục (nếu chưa có) và trả về LocalStorage
func NewLocalStorage(dir, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, publicPrefix: publicPrefix}, nil
}

// Dir trả về thư mục lưu file
func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) Driver() string { return "local" }

// Save ghi vào file tạm rồi rename, file dở dang không bao giờ xuất hiện dưới tên thật
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader, _ int64, _ string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: rename %s: %w", name, err)
	}
	return nil
}

// Delete xóa file, không lỗi nếu file không tồn tại
func (s *LocalStorage) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(requestBase, name string) string {
	return joinURL(requestBase, s.publicPrefix, name)
}
