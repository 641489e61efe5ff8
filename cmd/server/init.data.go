package main

import (
	"context"
	"time"

	authmodels "eshop_backend/internal/api/auth/models"
	authsvc "eshop_backend/internal/api/auth/service"
	basesvc "eshop_backend/internal/api/base/service"
	"eshop_backend/internal/global"
	"eshop_backend/internal/logger"
)

// InitDefaultData tạo tài khoản admin mặc định nếu ADMIN_EMAIL/ADMIN_PASSWORD được cấu hình
func InitDefaultData() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skip default admin")
		return
	}

	users := authsvc.NewUserService(
		basesvc.NewBaseServiceMongo[authmodels.User](mustCollection(global.MongoDB_ColNames.Users)),
		authsvc.NewTokenVerifier(cfg.JwtSecret, cfg.JwtAlgorithm, cfg.JwtExpiresIn),
		nil, 0,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := users.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.WithError(err).Warn("Failed to initialize default admin")
		return
	}
	if created {
		log.WithField("email", cfg.AdminEmail).Info("Default admin created")
	}
}
