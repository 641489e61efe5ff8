package basehdl

import (
	"eshop_backend/internal/common"
	"eshop_backend/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertOne tạo document mới từ body
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input CreateInput
		if err := ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		model, err := h.toModel(&input)
		if err != nil {
			return h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error()))
		}

		data, err := h.BaseService.InsertOne(c.Context(), model)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		logger.LogCRUD("create", h.Resource, "", c, nil)
		return HandleCreated(c, data)
	})
}

// Find trả về danh sách document, hỗ trợ ?page=&limit=
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := ParsePagination(c)
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		if limit > 0 {
			opts.SetLimit(limit).SetSkip((page - 1) * limit)
		}
		data, err := h.BaseService.Find(c.Context(), bson.M{}, opts)
		return h.HandleResponse(c, data, err)
	})
}

// FindOneById trả về document theo :id
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		data, err := h.BaseService.FindOneById(c.Context(), id)
		return h.HandleResponse(c, data, err)
	})
}

// UpdateById cập nhật các trường có trong body ($set)
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.UpdateById(c.Context(), id, input)
		if err == nil {
			logger.LogCRUD("update", h.Resource, id.Hex(), c, nil)
		}
		return h.HandleResponse(c, data, err)
	})
}

// DeleteById xóa document theo :id
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		if err := h.BaseService.DeleteById(c.Context(), id); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		logger.LogCRUD("delete", h.Resource, id.Hex(), c, nil)
		return HandleMessage(c, common.StatusOK, common.MsgDeleted)
	})
}

// CountDocuments đếm số document trong collection
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		count, err := h.BaseService.CountDocuments(c.Context(), bson.M{})
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"count": count}, nil)
	})
}
