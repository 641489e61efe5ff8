package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eshop_backend/internal/common"
	"eshop_backend/internal/metrics"

	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"
)

// FileStorage lưu và xóa file theo tên đã sinh sẵn
type FileStorage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, name string) error
	// PublicURL trả về URL đầy đủ của file; requestBase có dạng "<scheme>://<host>"
	PublicURL(requestBase, name string) string
	Driver() string
}

// UploadFile là một file client gửi lên, tách khỏi multipart để service có thể test độc lập
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FromFileHeader chuyển *multipart.FileHeader thành UploadFile.
// Content-Type lấy từ header của part (do client khai báo).
func FromFileHeader(fh *multipart.FileHeader) *UploadFile {
	if fh == nil {
		return nil
	}
	return &UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// ImageTypes là các content-type ảnh được chấp nhận và phần mở rộng tương ứng
var ImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// ImageExtension trả về phần mở rộng cho content-type, hoặc ErrUnsupportedImageType
func ImageExtension(contentType string) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := ImageTypes[mediaType]
	if !ok {
		return "", common.ErrUnsupportedImageType
	}
	return ext, nil
}

// Destination là nơi file sẽ được ghi, xác định trước khi ghi bất kỳ byte nào
type Destination struct {
	FileName    string
	ContentType string
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
var repeatedDashes = regexp.MustCompile(`-{2,}`)

const maxStemLength = 80

// SanitizeFilename bỏ đường dẫn, phiên âm ký tự có dấu và thay ký tự không an toàn bằng '-'.
// Phần mở rộng gốc bị bỏ đi.
func SanitizeFilename(original string) string {
	name := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = unidecode.Unidecode(name)
	name = unsafeChars.ReplaceAllString(name, "-")
	name = repeatedDashes.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if len(name) > maxStemLength {
		name = strings.TrimRight(name[:maxStemLength], "-.")
	}
	if name == "" {
		name = "image"
	}
	return name
}

// ResolveDestination kiểm tra content-type và sinh tên file:
// <tên gốc đã làm sạch>-<unix nano>-<8 hex>.<ext>
func ResolveDestination(file *UploadFile, now time.Time) (Destination, error) {
	if file == nil {
		return Destination{}, common.ErrMissingImage
	}
	ext, err := ImageExtension(file.ContentType)
	if err != nil {
		return Destination{}, err
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := SanitizeFilename(file.Filename) + "-" + strconv.FormatInt(now.UnixNano(), 10) + "-" + suffix + "." + ext
	return Destination{FileName: name, ContentType: "image/" + ext}, nil
}

// SaveUpload mở file upload và ghi vào storage tại dest
func SaveUpload(ctx context.Context, st FileStorage, file *UploadFile, dest Destination) error {
	rc, err := file.Open()
	if err != nil {
		metrics.Upload(st.Driver(), "failed")
		return common.WrapError(common.ErrCodeStorage, "Không thể đọc file upload", common.StatusBadRequest, err)
	}
	defer rc.Close()

	if err := st.Save(ctx, dest.FileName, rc, file.Size, dest.ContentType); err != nil {
		metrics.Upload(st.Driver(), "failed")
		return common.WrapError(common.ErrCodeStorage, "Không thể lưu file", common.StatusInternalServerError, err)
	}
	metrics.Upload(st.Driver(), "ok")
	return nil
}

// checkName từ chối tên có chứa đường dẫn
func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("storage: invalid file name %q", name)
	}
	return nil
}

func joinURL(base, prefix, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Trim(prefix, "/") + "/" + name
}
