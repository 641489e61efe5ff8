// Package router chứa các tiện ích đăng ký route dùng chung cho các domain.
package router

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// CRUDHandler định nghĩa interface cho các handler CRUD
type CRUDHandler interface {
	InsertOne(c fiber.Ctx) error
	Find(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
}

// CRUDConfig cấu hình các operation được phép cho mỗi collection
type CRUDConfig struct {
	InsOne   bool // POST   {prefix}
	Find     bool // GET    {prefix}
	FindById bool // GET    {prefix}/:id
	UpdById  bool // PUT    {prefix}/:id
	DelById  bool // DELETE {prefix}/:id
	Count    bool // GET    {prefix}/get/count
}

var (
	// ReadOnlyConfig chỉ cho phép đọc
	ReadOnlyConfig = CRUDConfig{Find: true, FindById: true, Count: true}

	// ReadWriteConfig cho phép đầy đủ CRUD
	ReadWriteConfig = CRUDConfig{InsOne: true, Find: true, FindById: true, UpdById: true, DelById: true, Count: true}
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	V1 string // Prefix cho API version 1 (API_URL)
}

// NewRoutePrefix tạo RoutePrefix từ API_URL, mặc định /api/v1
func NewRoutePrefix(apiURL string) RoutePrefix {
	apiURL = strings.TrimRight(apiURL, "/")
	if apiURL == "" {
		apiURL = "/api/v1"
	}
	return RoutePrefix{V1: apiURL}
}

// Router giữ app để các domain đăng ký route
type Router struct {
	app    *fiber.App
	Prefix RoutePrefix
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App, prefix RoutePrefix) *Router {
	return &Router{app: app, Prefix: prefix}
}

// RegisterCRUDRoutes đăng ký các route CRUD kiểu REST cho một collection.
// Route /get/count đăng ký trước /:id để không bị nuốt bởi param.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig) {
	if config.Count {
		router.Get(prefix+"/get/count", h.CountDocuments)
	}
	if config.Find {
		router.Get(prefix, h.Find)
	}
	if config.FindById {
		router.Get(prefix+"/:id", h.FindOneById)
	}
	if config.InsOne {
		router.Post(prefix, h.InsertOne)
	}
	if config.UpdById {
		router.Put(prefix+"/:id", h.UpdateById)
	}
	if config.DelById {
		router.Delete(prefix+"/:id", h.DeleteById)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, prefix RoutePrefix, regs ...RegisterFunc) error {
	v1 := app.Group(prefix.V1)
	r := NewRouter(app, prefix)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
