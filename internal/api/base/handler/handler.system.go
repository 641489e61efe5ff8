package basehdl

import (
	"context"
	"time"

	"eshop_backend/internal/common"
	"eshop_backend/internal/global"
	"eshop_backend/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// Pinger kiểm tra kết nối tới một dịch vụ phụ thuộc
type Pinger func(ctx context.Context) error

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	pingDB Pinger
}

// NewSystemHandler tạo SystemHandler; pingDB nil thì dùng global.MongoDB_Session
func NewSystemHandler(pingDB Pinger) *SystemHandler {
	if pingDB == nil {
		pingDB = func(ctx context.Context) error {
			if global.MongoDB_Session == nil {
				return common.ErrMongoConnection
			}
			return global.MongoDB_Session.Ping(ctx, nil)
		}
	}
	return &SystemHandler{pingDB: pingDB}
}

// HandleHealth kiểm tra tình trạng API và database
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if err := h.pingDB(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		// route không cần xác thực: chi tiết lỗi chỉ ghi log
		logger.WithRequest(c).WithError(err).Error("Health check: database ping failed")
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": "Hệ thống đang gặp sự cố",
			"data":    healthData,
			"status":  "error",
		})
	}
	services["database"] = "ok"

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    healthData,
		"status":  "success",
	})
}
