package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Port   string `env:"PORT" envDefault:"3000"`         // Cổng lắng nghe
	ApiURL string `env:"API_URL" envDefault:"/api/v1"` // Tiền tố đường dẫn API
	// JWT
	JwtSecret    string        `env:"JWT_SECRET,required,notEmpty"`     // Bí mật ký token
	JwtAlgorithm string        `env:"JWT_ALGORITHM" envDefault:"HS256"` // Thuật toán ký (chỉ họ HMAC)
	JwtExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`  // Thời hạn token
	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`              // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"eshop-database"` // Tên cơ sở dữ liệu
	// Upload
	UploadDriver       string `env:"UPLOAD_DRIVER" envDefault:"local"`                  // local | s3
	UploadDir          string `env:"UPLOAD_DIR" envDefault:"public/uploads"`            // Thư mục lưu file (driver local)
	UploadPublicPrefix string `env:"UPLOAD_PUBLIC_PREFIX" envDefault:"/public/uploads"` // Đường dẫn public của file upload
	// S3 (chỉ dùng khi UPLOAD_DRIVER=s3)
	S3_Endpoint      string `env:"S3_ENDPOINT"`
	S3_Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3_Bucket        string `env:"S3_BUCKET"`
	S3_AccessKey     string `env:"S3_ACCESS_KEY"`
	S3_SecretKey     string `env:"S3_SECRET_KEY"`
	S3_PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"` // Nếu có, URL ảnh = <base>/<file>
	S3_UsePathStyle  bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
	// Redis (tùy chọn - danh sách chặn token)
	RedisURL    string `env:"REDIS_URL"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"eshop:"`
	// HTTP
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"false"`     // Bật/tắt rate limiting
	BodyLimitMB           int    `env:"BODY_LIMIT_MB" envDefault:"20"`             // Giới hạn kích thước body (MB)
	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
	// Admin mặc định (tạo khi khởi động nếu chưa có)
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
}

// Address trả về địa chỉ lắng nghe dạng ":<port>"
func (c *Configuration) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Validate kiểm tra các giá trị phụ thuộc lẫn nhau
func (c *Configuration) Validate() error {
	switch c.JwtAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM không hỗ trợ: %s", c.JwtAlgorithm)
	}
	switch c.UploadDriver {
	case "local":
	case "s3":
		if c.S3_Bucket == "" {
			return fmt.Errorf("S3_BUCKET bắt buộc khi UPLOAD_DRIVER=s3")
		}
	default:
		return fmt.Errorf("UPLOAD_DRIVER không hỗ trợ: %s", c.UploadDriver)
	}
	if c.JwtExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN phải lớn hơn 0")
	}
	if !strings.HasPrefix(c.ApiURL, "/") {
		return fmt.Errorf("API_URL phải bắt đầu bằng '/': %s", c.ApiURL)
	}
	return nil
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Đi lên dần cho tới khi gặp config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ các file env được chỉ định (hoặc config/env/<GO_ENV>.env)
// rồi parse biến môi trường. Thiếu file env không phải lỗi.
func NewConfig(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			fmt.Printf("Bỏ qua file env %s: %v\n", f, err)
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("không thể load file env tại %s: %w", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
