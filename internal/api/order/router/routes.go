// Package router đăng ký các route thuộc domain order.
package router

import (
	orderhdl "eshop_backend/internal/api/order/handler"
	apirouter "eshop_backend/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register trả về RegisterFunc cho /orders
func Register(orders *orderhdl.OrderHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		r.RegisterCRUDRoutes(v1, "/orders", orders, apirouter.ReadWriteConfig)
		return nil
	}
}
