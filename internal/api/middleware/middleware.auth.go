package middleware

import (
	"context"
	"strings"

	authsvc "eshop_backend/internal/api/auth/service"
	"eshop_backend/internal/common"
	"eshop_backend/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// bearerCredential lấy token từ header Authorization.
// Header không theo dạng "Bearer <token>" vẫn được trả về nguyên văn để verifier từ chối.
func bearerCredential(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// AuthMiddleware đưa mọi request qua gate; request bị từ chối không tới handler.
// Claims của request được chấp nhận lưu vào Locals "user_id" và "claims".
func AuthMiddleware(gate *authsvc.Gate) fiber.Handler {
	return func(c fiber.Ctx) error {
		decision, err := gate.Authorize(c.Context(), authsvc.GateRequest{
			Path:       c.Path(),
			Method:     c.Method(),
			Credential: bearerCredential(c.Get(fiber.HeaderAuthorization)),
		})
		if err != nil {
			entry := logger.WithRequest(c).WithField("outcome", decision.Outcome)
			if common.StatusOf(err) >= common.StatusInternalServerError {
				entry.WithError(err).Error("❌ [AUTH] Không kiểm tra được trạng thái thu hồi")
			} else {
				entry.Warn("❌ [AUTH] Request bị từ chối")
			}
			logger.LogAuth("gate_rejected", c, map[string]interface{}{"outcome": decision.Outcome})
			return HandleErrorResponse(c, err)
		}

		// request id và user id đi theo context xuống service để ghi log
		ctx := context.WithValue(c.Context(), logger.RequestIDKey, logger.RequestID(c))
		if decision.Claims != nil {
			c.Locals("user_id", decision.Claims.UserID)
			c.Locals("claims", decision.Claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, decision.Claims.UserID)
		}
		c.SetContext(ctx)
		return c.Next()
	}
}
