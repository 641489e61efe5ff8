package main

import (
	"errors"
	"strings"
	"time"

	authhdl "eshop_backend/internal/api/auth/handler"
	authmodels "eshop_backend/internal/api/auth/models"
	authrouter "eshop_backend/internal/api/auth/router"
	authsvc "eshop_backend/internal/api/auth/service"
	basehdl "eshop_backend/internal/api/base/handler"
	basesvc "eshop_backend/internal/api/base/service"
	cataloghdl "eshop_backend/internal/api/catalog/handler"
	catalogmodels "eshop_backend/internal/api/catalog/models"
	catalogrouter "eshop_backend/internal/api/catalog/router"
	catalogsvc "eshop_backend/internal/api/catalog/service"
	"eshop_backend/internal/api/middleware"
	orderhdl "eshop_backend/internal/api/order/handler"
	ordermodels "eshop_backend/internal/api/order/models"
	orderrouter "eshop_backend/internal/api/order/router"
	apirouter "eshop_backend/internal/api/router"
	"eshop_backend/internal/common"
	"eshop_backend/internal/global"
	"eshop_backend/internal/logger"
	"eshop_backend/internal/storage"
	"eshop_backend/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// errorCodeForStatus ánh xạ HTTP status sang mã lỗi cho các lỗi do Fiber sinh ra
func errorCodeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
		return common.ErrCodeValidationInput.Code
	case fiber.StatusUnauthorized:
		return common.ErrCodeAuthToken.Code
	case fiber.StatusForbidden:
		return common.ErrCodeAuthRole.Code
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed, fiber.StatusConflict:
		return common.ErrCodeDatabaseQuery.Code
	case fiber.StatusTooManyRequests:
		return common.ErrCodeBusinessOperation.Code
	}
	return common.ErrCodeInternalServer.Code
}

// errorHandler trả lỗi theo format thống nhất {code, message, status:"error"}
func errorHandler(c fiber.Ctx, err error) error {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return middleware.HandleErrorResponse(c, err)
	}

	code := fiber.StatusInternalServerError
	message := common.MsgInternalError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	entry := logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if code >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("Request error")
	} else {
		entry.Debug("Request error")
	}

	return c.Status(code).JSON(fiber.Map{
		"code":    errorCodeForStatus(code),
		"message": message,
		"status":  "error",
	})
}

// newFileStorage chọn driver lưu ảnh theo UPLOAD_DRIVER
func newFileStorage() (storage.FileStorage, error) {
	cfg := global.MongoDB_ServerConfig
	if cfg.UploadDriver == "s3" {
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:      cfg.S3_Endpoint,
			Region:        cfg.S3_Region,
			Bucket:        cfg.S3_Bucket,
			AccessKey:     cfg.S3_AccessKey,
			SecretKey:     cfg.S3_SecretKey,
			PublicBaseURL: cfg.S3_PublicBaseURL,
			UsePathStyle:  cfg.S3_UsePathStyle,
			KeyPrefix:     strings.Trim(cfg.UploadPublicPrefix, "/"),
		})
	}
	return storage.NewLocalStorage(cfg.UploadDir, cfg.UploadPublicPrefix)
}

// newRevocationPolicy trả về policy admin-only, kèm deny-list Redis nếu có REDIS_URL.
// Hàm cleanup đóng kết nối Redis.
func newRevocationPolicy() (authsvc.RevocationPolicy, authsvc.DenyList, func()) {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, token deny-list disabled")
		return authsvc.AdminOnlyRevocation{}, nil, func() {}
	}

	denyList, err := authsvc.NewRedisDenyList(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Info("Token deny-list enabled (Redis)")
	policy := authsvc.DenyListRevocation{Base: authsvc.AdminOnlyRevocation{}, List: denyList}
	return policy, denyList, func() {
		if err := denyList.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis")
		}
	}
}

// InitFiberApp khởi tạo ứng dụng Fiber với middleware, gate và routes.
// Hàm trả về kèm theo là cleanup cho các kết nối phụ.
func InitFiberApp() (*fiber.App, func()) {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()
	prefix := apirouter.NewRoutePrefix(cfg.ApiURL)

	app := fiber.New(fiber.Config{
		AppName:       "Eshop API",
		ServerHeader:  "Eshop API",
		StrictRouting: true,
		CaseSensitive: true,
		BodyLimit:     cfg.BodyLimitMB * 1024 * 1024,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   120 * time.Second,
		ErrorHandler:  errorHandler,
	})

	// 1. Request ID
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	// 2. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	// 3. CORS
	allowOrigins := []string{"*"}
	if cfg.CORS_Origins != "*" {
		allowOrigins = utility.SplitAndTrim(cfg.CORS_Origins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 4. Security headers
	app.Use(middleware.SecurityHeaders())

	// 5. Rate limit
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": common.MsgTooManyRequests,
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == prefix.V1+"/system/health" || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 6. Metrics
	app.Use(middleware.MetricsMiddleware())

	// 7. Gate: mọi request đều đi qua, kể cả /metrics và file upload
	verifier := authsvc.NewTokenVerifier(cfg.JwtSecret, cfg.JwtAlgorithm, cfg.JwtExpiresIn)
	exemptions, err := authsvc.NewExemptionMatcher(authsvc.DefaultExemptionRules(prefix.V1, cfg.UploadPublicPrefix))
	if err != nil {
		log.Fatalf("Failed to compile exemption rules: %v", err)
	}
	revocation, denyList, cleanup := newRevocationPolicy()
	app.Use(middleware.AuthMiddleware(authsvc.NewGate(exemptions, verifier, revocation)))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	files, err := newFileStorage()
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	if local, ok := files.(*storage.LocalStorage); ok {
		app.Get(strings.TrimRight(cfg.UploadPublicPrefix, "/")+"*", static.New(local.Dir()))
	}
	log.WithField("driver", files.Driver()).Info("File storage initialized")

	names := global.MongoDB_ColNames
	users := authsvc.NewUserService(
		basesvc.NewBaseServiceMongo[authmodels.User](mustCollection(names.Users)),
		verifier, denyList, cfg.JwtExpiresIn,
	)
	categories := basesvc.NewBaseServiceMongo[catalogmodels.Category](mustCollection(names.Categories))
	products := catalogsvc.NewProductService(
		basesvc.NewBaseServiceMongo[catalogmodels.Product](mustCollection(names.Products)),
		categories, files,
	)
	orders := basesvc.NewBaseServiceMongo[ordermodels.Order](mustCollection(names.Orders))

	err = apirouter.SetupRoutes(app, prefix,
		authrouter.Register(authhdl.NewUserHandler(users), basehdl.NewSystemHandler(nil)),
		catalogrouter.Register(cataloghdl.NewProductHandler(products), cataloghdl.NewCategoryHandler(categories)),
		orderrouter.Register(orderhdl.NewOrderHandler(orders)),
	)
	if err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	return app, cleanup
}
