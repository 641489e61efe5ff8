// Package router đăng ký các route thuộc domain auth: users và system.
package router

import (
	authhdl "eshop_backend/internal/api/auth/handler"
	basehdl "eshop_backend/internal/api/base/handler"
	apirouter "eshop_backend/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register trả về RegisterFunc đăng ký route users và system lên v1.
// Quyền truy cập do gate quyết định, các route ở đây không gắn middleware riêng.
func Register(users *authhdl.UserHandler, system *basehdl.SystemHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		v1.Get("/system/health", system.HandleHealth)

		v1.Post("/users/login", users.HandleLogin)
		v1.Post("/users/register", users.HandleRegister)
		r.RegisterCRUDRoutes(v1, "/users", users, apirouter.CRUDConfig{
			InsOne:   true,
			Find:     true,
			FindById: true,
			DelById:  true,
			Count:    true,
		})
		return nil
	}
}
