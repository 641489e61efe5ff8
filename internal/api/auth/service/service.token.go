package authsvc

import (
	"time"

	models "eshop_backend/internal/api/auth/models"
	"eshop_backend/internal/common"

	"github.com/golang-jwt/jwt/v4"
)

// TokenVerifier ký và kiểm tra token bằng secret và thuật toán HMAC cấu hình lúc khởi động.
// Không có trạng thái thay đổi sau khi tạo, dùng đồng thời an toàn.
type TokenVerifier struct {
	secret    []byte
	algorithm string
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenVerifier tạo TokenVerifier; secret được copy để không bị sửa từ bên ngoài
func NewTokenVerifier(secret, algorithm string, ttl time.Duration) *TokenVerifier {
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	return &TokenVerifier{
		secret:    []byte(secret),
		algorithm: algorithm,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue tạo token cho userID với quyền isAdmin, hết hạn sau ttl
func (v *TokenVerifier) Issue(userID string, isAdmin bool) (string, error) {
	method := jwt.GetSigningMethod(v.algorithm)
	if method == nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Thuật toán ký token không hợp lệ", common.StatusInternalServerError, nil)
	}
	now := v.now()
	claims := models.Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString(v.secret)
	if err != nil {
		return "", common.WrapError(common.ErrCodeInternalServer, "Không thể tạo token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// Verify kiểm tra chữ ký và hạn của credential.
// Lỗi trả về là ErrTokenSignature hoặc ErrTokenExpired (gate sẽ gộp thành ErrTokenInvalid).
func (v *TokenVerifier) Verify(credential string) (*models.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{v.algorithm}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &models.Claims{}
	token, err := parser.ParseWithClaims(credential, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.WrapError(common.ErrCodeAuthToken, common.ErrTokenSignature.Error(), common.StatusUnauthorized, err)
	}

	// hết hạn khi now >= exp; thiếu exp coi như không hợp lệ
	if claims.ExpiresAt == nil {
		return nil, common.ErrTokenExpired
	}
	if !v.now().Before(claims.ExpiresAt.Time) {
		return nil, common.ErrTokenExpired
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

