package global

import (
	"github.com/go-playground/validator/v10"
)

// Các giá trị hợp lệ cho custom validator
var (
	validJobStatuses = map[string]bool{
		"pending":   true,
		"ongoing":   true,
		"rejected":  true,
		"completed": true,
	}

	validTrackingStatuses = map[string]bool{
		"on-hold":      true,
		"ongoing":      true,
		"completed":    true,
		"pending":      true,
		"notCompleted": true,
	}
)

// InitValidator khởi tạo validator dùng chung và đăng ký các custom validator.
func InitValidator() error {
	Validate = validator.New()

	// job_status: trạng thái phiếu yêu cầu
	if err := Validate.RegisterValidation("job_status", func(fl validator.FieldLevel) bool {
		return validJobStatuses[fl.Field().String()]
	}); err != nil {
		return err
	}

	// tracking_status: trạng thái tiến độ xử lý
	if err := Validate.RegisterValidation("tracking_status", func(fl validator.FieldLevel) bool {
		return validTrackingStatuses[fl.Field().String()]
	}); err != nil {
		return err
	}

	return nil
}
