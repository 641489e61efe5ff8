package basehdl

import (
	"bytes"
	"encoding/json"
	"strconv"

	basesvc "eshop_backend/internal/api/base/service"
	"eshop_backend/internal/common"
	"eshop_backend/internal/global"
	"eshop_backend/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModelConverter được DTO tạo mới implement khi cần chuyển đổi đặc biệt (string → ObjectID, ...)
type ModelConverter[T any] interface {
	ToModel() (T, error)
}

// BaseHandler là handler CRUD chung cho một collection.
// T là model, CreateInput/UpdateInput là DTO của body request.
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T]
	Resource    string
}

// NewBaseHandler tạo BaseHandler mới
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T], resource string) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		Resource:    resource,
	}
}

// HandleResponse xem HandleResponse của package
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	return HandleResponse(c, data, err)
}

// SafeHandler xem SafeHandler của package
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, fn func() error) error {
	return SafeHandler(c, fn)
}

// ValidateInput validate struct theo tag `validate`
func ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	return nil
}

// ParseRequestBody decode body JSON (UseNumber) rồi validate
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	return ValidateInput(input)
}

// ParseID lấy ObjectID từ param `id`
func ParseID(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidID
	}
	return id, nil
}

// ParsePagination đọc page/limit từ query, mặc định 1/0 (0 là không giới hạn)
func ParsePagination(c fiber.Ctx) (int64, int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "0"), 10, 64)
	if err != nil || limit < 0 {
		limit = 0
	}
	return page, limit
}

// toModel chuyển CreateInput sang T: dùng ModelConverter nếu có, nếu không thì qua BSON
func (h *BaseHandler[T, CreateInput, UpdateInput]) toModel(input *CreateInput) (T, error) {
	var model T
	if conv, ok := any(input).(ModelConverter[T]); ok {
		return conv.ToModel()
	}
	m, err := utility.ToMap(input)
	if err != nil {
		return model, err
	}
	err = utility.FromMap(m, &model)
	return model, err
}
