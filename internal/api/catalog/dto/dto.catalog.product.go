package catalogdto

import (
	"strconv"
	"strings"

	"eshop_backend/internal/common"

	"github.com/spf13/cast"
)

// ProductForm là các field text của form multipart, chưa parse
type ProductForm struct {
	Name            string
	Description     string
	RichDescription string
	Brand           string
	Price           string
	Category        string
	CountInStock    string
	Rating          string
	NumReviews      string
	IsFeatured      string
}

// ProductInput là dữ liệu sản phẩm đã parse, validate theo tag
type ProductInput struct {
	Name            string  `validate:"required,no_xss"`
	Description     string  `validate:"required,no_xss"`
	RichDescription string
	Brand           string  `validate:"omitempty,no_xss"`
	Price           float64 `validate:"gte=0"`
	CountInStock    int     `validate:"gte=0,lte=255"`
	Rating          float64 `validate:"gte=0"`
	NumReviews      int     `validate:"gte=0"`
	IsFeatured      bool
}

// Parse chuyển các field số/bool của form. Field rỗng nhận giá trị 0/false.
func (f ProductForm) Parse() (ProductInput, error) {
	in := ProductInput{
		Name:            strings.TrimSpace(f.Name),
		Description:     strings.TrimSpace(f.Description),
		RichDescription: f.RichDescription,
		Brand:           strings.TrimSpace(f.Brand),
	}

	var err error
	if in.Price, err = parseFloat("price", f.Price); err != nil {
		return in, err
	}
	if in.CountInStock, err = parseInt("countInStock", f.CountInStock); err != nil {
		return in, err
	}
	if in.Rating, err = parseFloat("rating", f.Rating); err != nil {
		return in, err
	}
	if in.NumReviews, err = parseInt("numReviews", f.NumReviews); err != nil {
		return in, err
	}
	if v := strings.TrimSpace(f.IsFeatured); v != "" {
		if in.IsFeatured, err = cast.ToBoolE(v); err != nil {
			return in, fieldError("isFeatured")
		}
	}
	return in, nil
}

func parseFloat(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fieldError(field)
	}
	return v, nil
}

// parseInt luôn đọc hệ 10: "010" là 10, không phải octal
func parseInt(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError(field)
	}
	return v, nil
}

func fieldError(field string) error {
	return common.NewError(common.ErrCodeValidationInput, "Giá trị không hợp lệ cho trường "+field, common.StatusBadRequest, map[string]string{"field": field})
}
