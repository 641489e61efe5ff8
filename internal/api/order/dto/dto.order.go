// Package orderdto chứa các DTO của domain order.
package orderdto

import (
	models "eshop_backend/internal/api/order/models"
	"eshop_backend/internal/common"
	"eshop_backend/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItemInput một dòng sản phẩm khi tạo đơn
type OrderItemInput struct {
	Product  string `json:"product" validate:"required,object_id"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// OrderCreateInput dữ liệu tạo đơn hàng
type OrderCreateInput struct {
	OrderItems       []OrderItemInput `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress1 string           `json:"shippingAddress1" validate:"required,no_xss"`
	ShippingAddress2 string           `json:"shippingAddress2" validate:"omitempty,no_xss"`
	City             string           `json:"city" validate:"required,no_xss"`
	Zip              string           `json:"zip" validate:"required,no_xss"`
	Country          string           `json:"country" validate:"required,no_xss"`
	Phone            string           `json:"phone" validate:"required,no_xss"`
	Status           string           `json:"status" validate:"omitempty,oneof=Pending Processing Shipped Delivered Cancelled"`
	TotalPrice       float64          `json:"totalPrice" validate:"gte=0"`
	User             string           `json:"user" validate:"required,object_id"`
}

// ToModel chuyển input sang Order; status mặc định Pending
func (in *OrderCreateInput) ToModel() (models.Order, error) {
	user, err := primitive.ObjectIDFromHex(in.User)
	if err != nil {
		return models.Order{}, common.ErrInvalidID
	}
	items := make([]models.OrderItem, 0, len(in.OrderItems))
	for _, it := range in.OrderItems {
		product, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil {
			return models.Order{}, common.ErrInvalidID
		}
		items = append(items, models.OrderItem{Product: product, Quantity: it.Quantity})
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	return models.Order{
		OrderItems:       items,
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           status,
		TotalPrice:       in.TotalPrice,
		User:             user,
		DateOrdered:      utility.CurrentTimeInMilli(),
	}, nil
}

// OrderUpdateInput chỉ cho cập nhật trạng thái đơn
type OrderUpdateInput struct {
	Status *string `json:"status" bson:"status,omitempty" validate:"required,oneof=Pending Processing Shipped Delivered Cancelled"`
}
