package authhdl

import (
	authdto "eshop_backend/internal/api/auth/dto"
	models "eshop_backend/internal/api/auth/models"
	authsvc "eshop_backend/internal/api/auth/service"
	basehdl "eshop_backend/internal/api/base/handler"
	"eshop_backend/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserCreateInput, authdto.UserCreateInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler(userService *authsvc.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, authdto.UserCreateInput, authdto.UserCreateInput](userService, "user"),
		userService: userService,
	}
}

// HandleRegister xử lý tự đăng ký tài khoản
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		user, err := h.userService.Register(c.Context(), &input)
		if err != nil {
			logger.LogAuth("register_failed", c, map[string]interface{}{"email": input.Email, "error": err.Error()})
			return h.HandleResponse(c, nil, err)
		}
		logger.LogAuth("register", c, map[string]interface{}{"user_id": user.ID.Hex()})
		return basehdl.HandleCreated(c, user)
	})
}

// HandleLogin xử lý đăng nhập, trả về {user, token}
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		result, err := h.userService.Login(c.Context(), &input)
		if err != nil {
			logger.LogAuth("login_failed", c, map[string]interface{}{"email": input.Email})
			return h.HandleResponse(c, nil, err)
		}
		logger.LogAuth("login", c, map[string]interface{}{"user_id": result.User.ID.Hex()})
		return h.HandleResponse(c, result, nil)
	})
}

// InsertOne admin tạo người dùng (có thể set isAdmin)
func (h *UserHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		user, err := h.userService.Create(c.Context(), &input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		logger.LogCRUD("create", "user", user.ID.Hex(), c, map[string]interface{}{"is_admin": user.IsAdmin})
		return basehdl.HandleCreated(c, user)
	})
}

// DeleteById xóa người dùng và thu hồi token của họ
func (h *UserHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := basehdl.ParseID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		if err := h.userService.Delete(c.Context(), id); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		logger.LogCRUD("delete", "user", id.Hex(), c, nil)
		return h.HandleResponse(c, fiber.Map{"id": id.Hex()}, nil)
	})
}
