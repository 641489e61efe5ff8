// Package orderhdl chứa handler CRUD đơn hàng.
package orderhdl

import (
	basehdl "eshop_backend/internal/api/base/handler"
	basesvc "eshop_backend/internal/api/base/service"
	orderdto "eshop_backend/internal/api/order/dto"
	models "eshop_backend/internal/api/order/models"
)

// OrderHandler là CRUD đơn hàng qua BaseHandler, chỉ admin truy cập
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput]
}

// NewOrderHandler tạo OrderHandler
func NewOrderHandler(service basesvc.BaseServiceMongo[models.Order]) *OrderHandler {
	return &OrderHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput](service, "order"),
	}
}
