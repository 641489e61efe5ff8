package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product là sản phẩm. Image luôn có giá trị sau khi tạo thành công.
type Product struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name" index:"text"`
	Description     string             `json:"description" bson:"description"`
	RichDescription string             `json:"richDescription" bson:"richDescription"`
	Image           string             `json:"image" bson:"image"`
	Images          []string           `json:"images" bson:"images"`
	Brand           string             `json:"brand" bson:"brand"`
	Price           float64            `json:"price" bson:"price"`
	Category        primitive.ObjectID `json:"category" bson:"category" index:"single"`
	CountInStock    int                `json:"countInStock" bson:"countInStock"`
	Rating          float64            `json:"rating" bson:"rating"`
	NumReviews      int                `json:"numReviews" bson:"numReviews"`
	IsFeatured      bool               `json:"isFeatured" bson:"isFeatured" index:"single"`
	CreatedAt       int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt       int64              `json:"updatedAt" bson:"updatedAt"`
}

// ProductDetail là Product với category đã được populate
type ProductDetail struct {
	Product  `bson:",inline"`
	Category *Category `json:"category" bson:"-"`
}

// DeleteResult là kết quả xóa sản phẩm; Deleted false nghĩa là không tìm thấy
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}
