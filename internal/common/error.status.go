package common

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized    = 401 // Chưa xác thực
	StatusForbidden       = 403 // Không có quyền truy cập
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"
	MsgDeleted = "Xóa thành công"

	MsgBadRequest         = "Yêu cầu không hợp lệ"
	MsgUnauthorized       = "Vui lòng đăng nhập"
	MsgForbidden          = "Không có quyền truy cập"
	MsgNotFound           = "Không tìm thấy tài nguyên"
	MsgTooManyRequests    = "Quá nhiều yêu cầu"
	MsgInternalError      = "Lỗi hệ thống"
	MsgServiceUnavailable = "Dịch vụ không khả dụng"

	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", SubCategory: "Internal", Description: "Lỗi hệ thống nội bộ"}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken       = ErrorCode{Code: "AUTH_001", Category: "Authentication", SubCategory: "Token", Description: "Lỗi liên quan đến token"}
	ErrCodeAuthCredentials = ErrorCode{Code: "AUTH_002", Category: "Authentication", SubCategory: "Credentials", Description: "Lỗi thông tin đăng nhập"}
	ErrCodeAuthRole        = ErrorCode{Code: "AUTH_003", Category: "Authentication", SubCategory: "Role", Description: "Lỗi liên quan đến vai trò người dùng"}
	ErrCodeAuthRevocation  = ErrorCode{Code: "AUTH_004", Category: "Authentication", SubCategory: "Revocation", Description: "Không kiểm tra được trạng thái thu hồi"}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", SubCategory: "Input", Description: "Lỗi dữ liệu đầu vào"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", SubCategory: "Format", Description: "Lỗi định dạng dữ liệu"}

	// Database Errors (DB_xxx)
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", SubCategory: "General", Description: "Lỗi cơ sở dữ liệu chung"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", SubCategory: "Connection", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", SubCategory: "Query", Description: "Lỗi truy vấn dữ liệu"}

	// Storage Errors (STO_xxx)
	ErrCodeStorage = ErrorCode{Code: "STO_001", Category: "Storage", SubCategory: "File", Description: "Lỗi lưu trữ file"}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_002", Category: "Business", SubCategory: "Operation", Description: "Lỗi thao tác nghiệp vụ"}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi (trả về cho client)
	Cause      error     // Lỗi gốc (chỉ ghi log, không trả về client)
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Unwrap trả về lỗi gốc
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is so sánh theo mã lỗi và message (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WrapError tạo error mới giữ lại lỗi gốc để ghi log
func WrapError(code ErrorCode, message string, statusCode int, cause error) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// StatusOf trả về HTTP status của err (500 nếu không phải *Error)
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return StatusInternalServerError
}

// Custom errors
var (
	// Authentication Errors
	ErrInvalidCredentials  = NewError(ErrCodeAuthCredentials, "Email hoặc mật khẩu không chính xác", StatusBadRequest, nil)
	ErrTokenMissing        = NewError(ErrCodeAuthToken, "Thiếu token xác thực", StatusUnauthorized, nil)
	ErrTokenInvalid        = NewError(ErrCodeAuthToken, "Token không hợp lệ hoặc đã hết hạn", StatusUnauthorized, nil)
	ErrTokenSignature      = NewError(ErrCodeAuthToken, "Chữ ký token không hợp lệ", StatusUnauthorized, nil)
	ErrTokenExpired        = NewError(ErrCodeAuthToken, "Phiên đăng nhập đã hết hạn", StatusUnauthorized, nil)
	ErrForbidden           = NewError(ErrCodeAuthRole, MsgForbidden, StatusForbidden, nil)
	ErrRevocationCheck     = NewError(ErrCodeAuthRevocation, "Không kiểm tra được trạng thái token", StatusServiceUnavailable, nil)
	ErrUserNotFound        = NewError(ErrCodeAuthCredentials, "Không tìm thấy thông tin người dùng", StatusNotFound, nil)
	ErrEmailAlreadyExists  = NewError(ErrCodeAuthCredentials, "Email đã được sử dụng", StatusConflict, nil)

	// Validation Errors
	ErrInvalidInput         = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat        = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrInvalidID            = NewError(ErrCodeValidationFormat, "ID không hợp lệ", StatusBadRequest, nil)
	ErrInvalidCategory      = NewError(ErrCodeValidationFormat, "Danh mục không hợp lệ", StatusBadRequest, nil)
	ErrInvalidProductID     = NewError(ErrCodeValidationFormat, "ID sản phẩm không hợp lệ", StatusBadRequest, nil)
	ErrMissingImage         = NewError(ErrCodeValidationInput, "Chưa có ảnh sản phẩm trong yêu cầu", StatusBadRequest, nil)
	ErrUnsupportedImageType = NewError(ErrCodeValidationFormat, "Định dạng ảnh không được hỗ trợ (chỉ png, jpeg, jpg)", StatusBadRequest, nil)
	ErrTooManyImages        = NewError(ErrCodeValidationInput, "Vượt quá số lượng ảnh cho phép", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound            = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrProductNotFound     = NewError(ErrCodeDatabaseQuery, "Không tìm thấy sản phẩm", StatusNotFound, nil)
	ErrDuplicate           = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrGalleryUpdateFailed = NewError(ErrCodeDatabaseQuery, "Không thể cập nhật bộ ảnh sản phẩm", StatusInternalServerError, nil)

	// Storage Errors
	ErrStorage = NewError(ErrCodeStorage, "Không thể lưu file", StatusInternalServerError, nil)
)

// MongoDB Error Messages
const (
	MsgMongoConnection = "Lỗi kết nối MongoDB"
	MsgMongoNetwork    = "Lỗi mạng khi kết nối MongoDB"
	MsgMongoTimeout    = "Kết nối MongoDB bị timeout"
	MsgMongoDuplicate  = "Dữ liệu trùng lặp trong MongoDB"
	MsgMongoCanceled   = "Yêu cầu đã bị hủy"
)

// MongoDB Specific Errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, MsgMongoConnection, StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, MsgMongoNetwork, StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, MsgMongoTimeout, StatusServiceUnavailable, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, MsgMongoDuplicate, StatusConflict, nil)
	ErrMongoCanceled   = NewError(ErrCodeDatabaseQuery, MsgMongoCanceled, StatusServiceUnavailable, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống.
// Lỗi đã là *Error được giữ nguyên; lỗi gốc chỉ được giữ trong Cause.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return WrapError(ErrCodeDatabaseQuery, MsgMongoDuplicate, StatusConflict, err)
	case errors.Is(err, context.Canceled):
		return WrapError(ErrCodeDatabaseQuery, MsgMongoCanceled, StatusServiceUnavailable, err)
	case mongo.IsTimeout(err):
		return WrapError(ErrCodeDatabaseConnection, MsgMongoTimeout, StatusServiceUnavailable, err)
	case mongo.IsNetworkError(err):
		return WrapError(ErrCodeDatabaseConnection, MsgMongoNetwork, StatusServiceUnavailable, err)
	case errors.Is(err, mongo.ErrClientDisconnected):
		return WrapError(ErrCodeDatabaseConnection, MsgMongoConnection, StatusServiceUnavailable, err)
	}

	// Không nhận diện được: lỗi hệ thống chung, không lộ chi tiết ra client
	return WrapError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
