package basehdl

import (
	"errors"
	"runtime/debug"

	"eshop_backend/internal/common"
	"eshop_backend/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse ghi response JSON với charset utf-8
func JSONResponse(c fiber.Ctx, status int, data interface{}) error {
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	return c.Status(status).JSON(data)
}

// HandleResponse ghi response theo format chuẩn.
// Lỗi *common.Error giữ nguyên code/status, lỗi khác trả về 500.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return WriteError(c, err)
	}
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// HandleCreated ghi response 201 cho thao tác tạo mới
func HandleCreated(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusCreated, fiber.Map{
		"code":    common.StatusCreated,
		"message": common.MsgCreated,
		"data":    data,
		"status":  "success",
	})
}

// HandleMessage ghi response thành công chỉ có message, status code tùy chọn
func HandleMessage(c fiber.Ctx, status int, message string) error {
	result := "success"
	if status >= 400 {
		result = "error"
	}
	return JSONResponse(c, status, fiber.Map{
		"code":    status,
		"message": message,
		"status":  result,
	})
}

// WriteError ghi response lỗi
func WriteError(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequest(c).WithError(err).Error(customErr.Message)
		}
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
	}

	logger.WithRequest(c).WithError(err).Error("Lỗi không xác định")
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeDatabase.Code,
		"message": err.Error(),
		"status":  "error",
	})
}

// SafeHandler bọc handler để bắt panic, trả về SYS_001
func SafeHandler(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).WithField("stack", string(debug.Stack())).Error("Panic trong handler")
			err = JSONResponse(c, common.StatusInternalServerError, fiber.Map{
				"code":    common.ErrCodeInternalServer.Code,
				"message": common.MsgInternalError,
				"status":  "error",
			})
		}
	}()
	return fn()
}
