package authdto

// UserRegisterInput đầu vào tự đăng ký. isAdmin không được nhận từ request.
type UserRegisterInput struct {
	Name      string `json:"name" validate:"required,no_xss"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"omitempty,no_xss"`
	Street    string `json:"street" validate:"omitempty,no_xss"`
	Apartment string `json:"apartment" validate:"omitempty,no_xss"`
	Zip       string `json:"zip" validate:"omitempty,no_xss"`
	City      string `json:"city" validate:"omitempty,no_xss"`
	Country   string `json:"country" validate:"omitempty,no_xss"`
}

// UserCreateInput đầu vào admin tạo người dùng (được phép set isAdmin).
type UserCreateInput struct {
	UserRegisterInput
	IsAdmin bool `json:"isAdmin"`
}

// UserLoginInput đầu vào đăng nhập người dùng.
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
