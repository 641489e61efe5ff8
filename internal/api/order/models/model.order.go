// Package models - Order thuộc domain order.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái đơn hàng
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// OrderItem là một dòng sản phẩm trong đơn hàng
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

// Order là đơn hàng
type Order struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderItems       []OrderItem        `json:"orderItems" bson:"orderItems"`
	ShippingAddress1 string             `json:"shippingAddress1" bson:"shippingAddress1"`
	ShippingAddress2 string             `json:"shippingAddress2,omitempty" bson:"shippingAddress2,omitempty"`
	City             string             `json:"city" bson:"city"`
	Zip              string             `json:"zip" bson:"zip"`
	Country          string             `json:"country" bson:"country"`
	Phone            string             `json:"phone" bson:"phone"`
	Status           string             `json:"status" bson:"status" index:"single"`
	TotalPrice       float64            `json:"totalPrice" bson:"totalPrice"`
	User             primitive.ObjectID `json:"user" bson:"user" index:"single"`
	DateOrdered      int64              `json:"dateOrdered" bson:"dateOrdered" index:"single,order:-1"`
	CreatedAt        int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64              `json:"updatedAt" bson:"updatedAt"`
}
