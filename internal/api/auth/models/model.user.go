// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User định nghĩa mô hình người dùng
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email" index:"unique"`
	Password  string             `json:"-" bson:"passwordHash"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	IsAdmin   bool               `json:"isAdmin" bson:"isAdmin"`
	Street    string             `json:"street,omitempty" bson:"street,omitempty"`
	Apartment string             `json:"apartment,omitempty" bson:"apartment,omitempty"`
	Zip       string             `json:"zip,omitempty" bson:"zip,omitempty"`
	City      string             `json:"city,omitempty" bson:"city,omitempty"`
	Country   string             `json:"country,omitempty" bson:"country,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// LoginResult là kết quả đăng nhập thành công
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
