package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"eshop_backend/config"
	authmodels "eshop_backend/internal/api/auth/models"
	catalogmodels "eshop_backend/internal/api/catalog/models"
	ordermodels "eshop_backend/internal/api/order/models"
	"eshop_backend/internal/database"
	"eshop_backend/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Categories = "categories"
	global.MongoDB_ColNames.Products = "products"
	global.MongoDB_ColNames.Orders = "orders"

	logrus.Info("Initialized collection names")
}

// collectionNames trả về danh sách tên collection đã khai báo
func collectionNames() []string {
	n := global.MongoDB_ColNames
	return []string{n.Users, n.Categories, n.Products, n.Orders}
}

// Hàm khởi tạo validator (no_xss, object_id, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server; chạy trước logger nên lỗi in ra stderr
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	global.MongoDB_ServerConfig = cfg
}

// Hàm khởi tạo kết nối database, collections và index
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	if err := database.EnsureCollections(ctx, db, collectionNames()); err != nil {
		logrus.Fatalf("Failed to ensure collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	models := map[string]interface{}{
		global.MongoDB_ColNames.Users:      authmodels.User{},
		global.MongoDB_ColNames.Categories: catalogmodels.Category{},
		global.MongoDB_ColNames.Products:   catalogmodels.Product{},
		global.MongoDB_ColNames.Orders:     ordermodels.Order{},
	}
	for name, model := range models {
		if err := database.CreateIndexes(ctx, db.Collection(name), model); err != nil {
			logrus.Errorf("Failed to create indexes for %s: %v", name, err)
		}
	}
}
