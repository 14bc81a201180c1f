package logger

import (
	"os"
	"strconv"
)

// LogConfig cấu hình cho hệ thống log.
type LogConfig struct {
	Level      string // Mức log: debug, info, warn, error
	Format     string // Định dạng: json hoặc text
	Output     string // Đường dẫn thư mục chứa file log
	MaxSize    int    // Dung lượng tối đa mỗi file log (MB)
	MaxBackups int    // Số file backup giữ lại
	MaxAge     int    // Số ngày giữ log
	Compress   bool   // Nén file log cũ
	BufferSize int    // Kích thước buffer cho async hook
}

// DefaultConfig trả về cấu hình mặc định theo môi trường chạy.
// Môi trường development dùng mức debug và định dạng text để dễ đọc,
// các môi trường khác dùng info và json.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{
		Level:      "info",
		Format:     "json",
		Output:     "logs",
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
		BufferSize: 1000,
	}

	if os.Getenv("GO_ENV") == "development" {
		cfg.Level = "debug"
		cfg.Format = "text"
	}

	// Cho phép override qua biến môi trường
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("LOG_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxSize = n
		}
	}
	if v := os.Getenv("LOG_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxAge = n
		}
	}

	return cfg
}
