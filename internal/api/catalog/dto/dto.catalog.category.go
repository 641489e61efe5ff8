// Package catalogdto chứa các DTO của domain catalog.
package catalogdto

// CategoryCreateInput dữ liệu tạo danh mục
type CategoryCreateInput struct {
	Name  string `json:"name" bson:"name" validate:"required,no_xss"`
	Icon  string `json:"icon" bson:"icon,omitempty" validate:"omitempty,no_xss"`
	Color string `json:"color" bson:"color,omitempty" validate:"omitempty,no_xss"`
}

// CategoryUpdateInput dữ liệu cập nhật danh mục; field nil không bị thay đổi
type CategoryUpdateInput struct {
	Name  *string `json:"name" bson:"name,omitempty" validate:"omitempty,min=1,no_xss"`
	Icon  *string `json:"icon" bson:"icon,omitempty" validate:"omitempty,no_xss"`
	Color *string `json:"color" bson:"color,omitempty" validate:"omitempty,no_xss"`
}
