// Package authsvc - xác thực: token, exemption, revocation, gate và service người dùng.
package authsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	authdto "eshop_backend/internal/api/auth/dto"
	models "eshop_backend/internal/api/auth/models"
	basesvc "eshop_backend/internal/api/base/service"
	"eshop_backend/internal/common"
	"eshop_backend/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	basesvc.BaseServiceMongo[models.User]
	verifier *TokenVerifier
	denyList DenyList // nil khi không cấu hình Redis
	denyTTL  time.Duration
}

// NewUserService tạo mới UserService
func NewUserService(store basesvc.BaseServiceMongo[models.User], verifier *TokenVerifier, denyList DenyList, denyTTL time.Duration) *UserService {
	return &UserService{
		BaseServiceMongo: store,
		verifier:         verifier,
		denyList:         denyList,
		denyTTL:          denyTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register tạo người dùng thường từ form đăng ký
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (models.User, error) {
	return s.create(ctx, input, false)
}

// Create tạo người dùng bởi admin, có thể set isAdmin
func (s *UserService) Create(ctx context.Context, input *authdto.UserCreateInput) (models.User, error) {
	return s.create(ctx, &input.UserRegisterInput, input.IsAdmin)
}

func (s *UserService) create(ctx context.Context, input *authdto.UserRegisterInput, isAdmin bool) (models.User, error) {
	email := normalizeEmail(input.Email)
	exists, err := s.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, common.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, common.WrapError(common.ErrCodeInternalServer, "Không thể mã hóa mật khẩu", common.StatusInternalServerError, err)
	}

	user := models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  string(hash),
		Phone:     input.Phone,
		IsAdmin:   isAdmin,
		Street:    input.Street,
		Apartment: input.Apartment,
		Zip:       input.Zip,
		City:      input.City,
		Country:   input.Country,
	}
	created, err := s.InsertOne(ctx, user)
	if err != nil {
		// unique index bắt trường hợp đăng ký đồng thời
		if errors.Is(err, common.ErrMongoDuplicate) || common.StatusOf(err) == common.StatusConflict {
			return models.User{}, common.ErrEmailAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// Login kiểm tra email/mật khẩu và cấp token. Sai email hay sai mật khẩu đều trả cùng một lỗi.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.LoginResult, error) {
	user, err := s.FindOne(ctx, bson.M{"email": normalizeEmail(input.Email)}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.verifier.Issue(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{User: user, Token: token}, nil
}

// Delete xóa người dùng và đưa id vào deny-list để các token còn hạn bị từ chối
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.DeleteById(ctx, id); err != nil {
		return err
	}
	if s.denyList != nil {
		if err := s.denyList.Deny(ctx, id.Hex(), s.denyTTL); err != nil {
			logger.WithContext(ctx).WithField("module", "auth").WithError(err).WithField("target_user_id", id.Hex()).Error("Không thể thêm user vào deny-list")
		}
	}
	return nil
}

// EnsureAdmin tạo admin mặc định nếu chưa có user với email này
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	exists, err := s.DocumentExists(ctx, bson.M{"email": normalizeEmail(email)})
	if err != nil || exists {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}
	_, err = s.create(ctx, &authdto.UserRegisterInput{Name: name, Email: email, Password: password}, true)
	if err != nil {
		return false, err
	}
	return true, nil
}
