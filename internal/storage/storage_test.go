package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"eshop_backend/internal/common"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(name, contentType string, data []byte) *UploadFile {
	return &UploadFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func TestImageExtension(t *testing.T) {
	for ct, want := range map[string]string{
		"image/png":                 "png",
		"image/jpeg":                "jpeg",
		"image/jpg":                 "jpg",
		"IMAGE/PNG":                 "png",
		"image/jpeg; charset=utf-8": "jpeg",
	} {
		ext, err := ImageExtension(ct)
		require.NoError(t, err, ct)
		assert.Equal(t, want, ext, ct)
	}

	for _, ct := range []string{"image/gif", "image/webp", "application/pdf", ""} {
		_, err := ImageExtension(ct)
		assert.ErrorIs(t, err, common.ErrUnsupportedImageType, ct)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "anh-san-pham", SanitizeFilename("ảnh sản phẩm.png"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "evil", SanitizeFilename(`C:\tmp\evil.jpg`))
	assert.Equal(t, "a-b-c", SanitizeFilename("a<>b?&c.jpeg"))
	assert.Equal(t, "image", SanitizeFilename("....png"))
	assert.Equal(t, "image", SanitizeFilename(""))
	assert.LessOrEqual(t, len(SanitizeFilename(strings.Repeat("x", 300)+".png")), maxStemLength)
}

func TestResolveDestination(t *testing.T) {
	now := time.Unix(1700000000, 123456789)

	dest, err := ResolveDestination(upload("My Photo.PNG", "image/png", nil), now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^My-Photo-1700000000123456789-[0-9a-f]{8}\.png$`), dest.FileName)
	assert.Equal(t, "image/png", dest.ContentType)

	other, err := ResolveDestination(upload("My Photo.PNG", "image/png", nil), now)
	require.NoError(t, err)
	assert.NotEqual(t, dest.FileName, other.FileName, "same name and timestamp still differ")

	_, err = ResolveDestination(upload("anim.gif", "image/gif", nil), now)
	assert.ErrorIs(t, err, common.ErrUnsupportedImageType)

	_, err = ResolveDestination(nil, now)
	assert.ErrorIs(t, err, common.ErrMissingImage)
}

func TestLocalStorage_SaveDeleteURL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	st, err := NewLocalStorage(dir, "/public/uploads")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, SaveUpload(ctx, st, upload("a.png", "image/png", []byte("PNGDATA")), Destination{FileName: "a-1.png", ContentType: "image/png"}))

	data, err := os.ReadFile(filepath.Join(dir, "a-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	assert.Equal(t, "http://localhost:3000/public/uploads/a-1.png", st.PublicURL("http://localhost:3000", "a-1.png"))

	require.NoError(t, st.Delete(ctx, "a-1.png"))
	_, err = os.Stat(filepath.Join(dir, "a-1.png"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, st.Delete(ctx, "a-1.png"), "deleting a missing file is not an error")

	assert.Error(t, st.Save(ctx, "../escape.png", bytes.NewReader(nil), 0, "image/png"))
}

func TestLocalStorage_FailedReadLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocalStorage(dir, "/public/uploads")
	require.NoError(t, err)

	broken := io.MultiReader(strings.NewReader("part"), errReader{})
	assert.Error(t, st.Save(context.Background(), "b.png", broken, 0, "image/png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3Storage(t *testing.T) {
	api := &fakeS3{}
	st := &S3Storage{client: api, cfg: S3Config{Bucket: "images", KeyPrefix: "products/", Endpoint: "http://minio:9000", UsePathStyle: true}}

	ctx := context.Background()
	require.NoError(t, st.Save(ctx, "a.png", strings.NewReader("x"), 1, "image/png"))
	require.Len(t, api.puts, 1)
	assert.Equal(t, "images", *api.puts[0].Bucket)
	assert.Equal(t, "products/a.png", *api.puts[0].Key)
	assert.Equal(t, "image/png", *api.puts[0].ContentType)
	assert.Equal(t, int64(1), *api.puts[0].ContentLength)

	require.NoError(t, st.Delete(ctx, "a.png"))
	assert.Equal(t, "products/a.png", *api.deletes[0].Key)

	assert.Equal(t, "http://minio:9000/images/products/a.png", st.PublicURL("http://api", "a.png"))
	st.cfg.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/products/a.png", st.PublicURL("http://api", "a.png"))

	api.err = errors.New("denied")
	assert.Error(t, st.Save(ctx, "b.png", strings.NewReader("x"), 1, "image/png"))
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := NewS3Storage(S3Config{})
	assert.Error(t, err)

	st, err := NewS3Storage(S3Config{Bucket: "b", Region: "us-east-1", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "https://b.s3.us-east-1.amazonaws.com/x.png", st.PublicURL("", "x.png"))
}
