package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"facility_works/config"
	"facility_works/internal/logger"
)

// Mailer gửi email thông báo khi phiếu yêu cầu đổi trạng thái.
// Khi SMTP_HOST rỗng thì mailer bị tắt, mọi lời gọi gửi đều no-op.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

// NewMailer tạo mailer theo cấu hình server.
func NewMailer(cfg *config.Configuration) *Mailer {
	if cfg.SMTP_Host == "" {
		return &Mailer{enabled: false}
	}

	return &Mailer{
		dialer:  gomail.NewDialer(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_User, cfg.SMTP_Password),
		from:    cfg.SMTP_From,
		enabled: true,
	}
}

// Enabled cho biết mailer có đang hoạt động không.
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// SendStatusChanged gửi thông báo đổi trạng thái phiếu cho người yêu cầu.
// Gửi mail là best-effort: lỗi chỉ được ghi log, không làm fail thao tác chính.
func (m *Mailer) SendStatusChanged(to string, jobOrderNumber string, status string, note string) {
	if !m.enabled || to == "" {
		return
	}

	subject := fmt.Sprintf("Phiếu yêu cầu %s đã chuyển sang trạng thái %s", jobOrderNumber, status)
	body := fmt.Sprintf("Phiếu yêu cầu bảo trì %s của bạn đã được cập nhật trạng thái: %s.", jobOrderNumber, status)
	if note != "" {
		body += "\n\nGhi chú: " + note
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.GetErrorLogger().WithFields(map[string]interface{}{
			"to":             to,
			"jobOrderNumber": jobOrderNumber,
			"error":          err.Error(),
		}).Error("Không gửi được email thông báo đổi trạng thái")
	}
}
