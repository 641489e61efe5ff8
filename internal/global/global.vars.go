package global

import (
	"eshop_backend/config"
	"eshop_backend/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users      string // Tên collection cho người dùng
	Categories string // Tên collection cho danh mục
	Products   string // Tên collection cho sản phẩm
	Orders     string // Tên collection cho đơn hàng
}

// Các biến toàn cục
var Validate *validator.Validate                 // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration   // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{} // Tên các collection

// RegistryCollections chứa các collections đã khởi tạo
var RegistryCollections = registry.NewRegistry[*mongo.Collection]()
