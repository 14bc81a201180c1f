package dto

// CreateJobOrderInput là dữ liệu tạo phiếu yêu cầu mới.
type CreateJobOrderInput struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	ReqOffice   string `json:"reqOffice" validate:"required"`
	Campus      string `json:"campus" validate:"required"`
	Building    string `json:"building" validate:"required"`
	Floor       string `json:"floor" validate:"required"`
	Room        string `json:"room"`
	Position    string `json:"position"`
	Description string `json:"description" validate:"required"`
	FileUrl     string `json:"fileUrl"`
}

// UpdateJobOrderInput là dữ liệu cập nhật thưa: chỉ field nào có giá trị
// mới được ghi đè.
type UpdateJobOrderInput struct {
	Priority   string `json:"priority"`
	Status     string `json:"status" validate:"omitempty,job_status"`
	AssignedTo string `json:"assignedTo"` // ObjectID hex của người được phân công
	Remarks    string `json:"remarks"`

	ScheduleWork string  `json:"scheduleWork"`
	DateFrom     int64   `json:"dateFrom"`
	DateTo       int64   `json:"dateTo"`
	CostRequired float64 `json:"costRequired"`
	ChargeTo     string  `json:"chargeTo"`
}

// RejectJobOrderInput là dữ liệu từ chối hoặc lưu trữ phiếu.
type RejectJobOrderInput struct {
	Reason string `json:"reason" validate:"required"`
}

// TrackingEntryInput là một mốc tiến độ gửi lên từ client.
type TrackingEntryInput struct {
	Status string `json:"status"`
	Date   int64  `json:"date"`
	Note   string `json:"note"`
}

// SetTrackingInput thay thế toàn bộ mảng tiến độ của phiếu.
type SetTrackingInput struct {
	Tracking []TrackingEntryInput `json:"tracking" validate:"required"`
}

// FeedbackInput là phản hồi của người yêu cầu sau khi phiếu kết thúc.
type FeedbackInput struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ListJobOrdersQuery là tham số lọc và phân trang danh sách phiếu.
type ListJobOrdersQuery struct {
	Status    string `query:"status"`
	UserID    string `query:"userId"`
	LastName  string `query:"lastName"`
	DateRange string `query:"dateRange"` // Dạng start:end, hỗ trợ ngày/tháng/năm
	FilterBy  string `query:"filterBy"`  // day, month hoặc year; rỗng thì suy từ định dạng dateRange
	Page      int64  `query:"page"`
	PageSize  int64  `query:"pageSize"`
}

// JobOrderListResult là kết quả danh sách phiếu kèm tổng số trang.
type JobOrderListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalPages int64 `json:"totalPages"`
}
