// Package router đăng ký các route thuộc domain catalog: products và categories.
package router

import (
	cataloghdl "eshop_backend/internal/api/catalog/handler"
	apirouter "eshop_backend/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register trả về RegisterFunc cho products và categories.
// Các route /get/... và /gallery-images/... đăng ký trước /:id.
func Register(products *cataloghdl.ProductHandler, categories *cataloghdl.CategoryHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		v1.Get("/products/get/count", products.HandleCount)
		v1.Get("/products/get/featured/:count", products.HandleFeatured)
		v1.Put("/products/gallery-images/:id", products.HandleUpdateGallery)
		v1.Get("/products", products.HandleList)
		v1.Post("/products", products.HandleCreate)
		v1.Get("/products/:id", products.HandleGet)
		v1.Put("/products/:id", products.HandleUpdate)
		v1.Delete("/products/:id", products.HandleDelete)

		r.RegisterCRUDRoutes(v1, "/categories", categories, apirouter.ReadWriteConfig)
		return nil
	}
}
