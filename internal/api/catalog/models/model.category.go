// Package models - Category, Product thuộc domain catalog.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category là danh mục sản phẩm. Không cho xóa khi còn sản phẩm tham chiếu.
type Category struct {
	_Relationships struct{}           `relationship:"collection:products,field:category,message:Không thể xóa danh mục vì có %d sản phẩm đang thuộc danh mục này."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"single"`
	Icon           string             `json:"icon,omitempty" bson:"icon,omitempty"`
	Color          string             `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
