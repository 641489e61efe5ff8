// Package cataloghdl chứa các handler của domain catalog.
package cataloghdl

import (
	basehdl "eshop_backend/internal/api/base/handler"
	basesvc "eshop_backend/internal/api/base/service"
	catalogdto "eshop_backend/internal/api/catalog/dto"
	models "eshop_backend/internal/api/catalog/models"
)

// CategoryHandler là CRUD danh mục qua BaseHandler.
// Xóa danh mục còn sản phẩm tham chiếu trả về 409 (relationship tag trên model).
type CategoryHandler struct {
	*basehdl.BaseHandler[models.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput]
}

// NewCategoryHandler tạo CategoryHandler
func NewCategoryHandler(service basesvc.BaseServiceMongo[models.Category]) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput](service, "category"),
	}
}
