package authsvc

import (
	"context"
	"errors"
	"time"

	models "eshop_backend/internal/api/auth/models"
	"eshop_backend/internal/common"

	"github.com/redis/go-redis/v9"
)

// RevocationPolicy quyết định token hợp lệ có còn được phép truy cập hay không.
// Nhận ctx để có thể thay bằng lookup bên ngoài mà không đổi caller.
type RevocationPolicy interface {
	IsRevoked(ctx context.Context, claims *models.Claims) (bool, error)
}

// AdminOnlyRevocation từ chối mọi subject không phải admin
type AdminOnlyRevocation struct{}

// IsRevoked trả về true khi isAdmin false hoặc thiếu
func (AdminOnlyRevocation) IsRevoked(_ context.Context, claims *models.Claims) (bool, error) {
	return claims == nil || !claims.IsAdmin, nil
}

// DenyList lưu các subject bị thu hồi có thời hạn
type DenyList interface {
	IsDenied(ctx context.Context, subject string) (bool, error)
	Deny(ctx context.Context, subject string, ttl time.Duration) error
}

// DenyListRevocation chạy policy gốc trước, sau đó tra subject trong deny-list
type DenyListRevocation struct {
	Base RevocationPolicy
	List DenyList
}

// IsRevoked lỗi từ deny-list được trả về nguyên vẹn để gate từ chối (fail closed)
func (p DenyListRevocation) IsRevoked(ctx context.Context, claims *models.Claims) (bool, error) {
	revoked, err := p.Base.IsRevoked(ctx, claims)
	if err != nil || revoked {
		return revoked, err
	}
	subject := claims.Subject
	if subject == "" {
		subject = claims.UserID
	}
	return p.List.IsDenied(ctx, subject)
}

// RedisDenyList là DenyList trên Redis, key `<prefix>revoked:<subject>`
type RedisDenyList struct {
	client *redis.Client
	prefix string
}

// NewRedisDenyList kết nối Redis từ URL và ping thử
func NewRedisDenyList(url, prefix string) (*RedisDenyList, error) {
	if url == "" {
		return nil, errors.New("redis URL is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisDenyList{client: client, prefix: prefix}, nil
}

func (d *RedisDenyList) key(subject string) string {
	return d.prefix + "revoked:" + subject
}

// IsDenied kiểm tra subject có trong deny-list
func (d *RedisDenyList) IsDenied(ctx context.Context, subject string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(subject)).Result()
	if err != nil {
		return false, common.WrapError(common.ErrCodeAuthRevocation, common.ErrRevocationCheck.Error(), common.StatusServiceUnavailable, err)
	}
	return n > 0, nil
}

// Deny thêm subject vào deny-list với ttl
func (d *RedisDenyList) Deny(ctx context.Context, subject string, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(subject), time.Now().UnixMilli(), ttl).Err()
}

// Close đóng kết nối Redis
func (d *RedisDenyList) Close() error {
	return d.client.Close()
}
