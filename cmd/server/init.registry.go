package main

import (
	"eshop_backend/config"
	"eshop_backend/internal/database"
	"eshop_backend/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections đăng ký các collection MongoDB vào registry toàn cục
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)

	for _, name := range collectionNames() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}

// mustCollection lấy collection đã đăng ký, dừng chương trình nếu thiếu
func mustCollection(name string) *mongo.Collection {
	col, ok := global.RegistryCollections.Get(name)
	if !ok {
		logrus.Fatalf("Collection %s not registered", name)
	}
	return col
}

// CloseRegistry gỡ các collection đã đăng ký rồi đóng kết nối MongoDB
func CloseRegistry() {
	for _, name := range global.RegistryCollections.Names() {
		if _, err := global.RegistryCollections.Clear(name, nil); err != nil {
			logrus.Errorf("Failed to clear collection %s: %v", name, err)
		}
	}
	if err := database.CloseInstance(global.MongoDB_Session); err != nil {
		logrus.Errorf("Failed to close MongoDB: %v", err)
	}
	logrus.Info("Closed collection registry and MongoDB connection")
}
