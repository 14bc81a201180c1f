package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái vòng đời của phiếu yêu cầu
const (
	StatusPending   = "pending"   // Chờ tiếp nhận
	StatusOngoing   = "ongoing"   // Đã duyệt, đang xử lý
	StatusRejected  = "rejected"  // Bị từ chối hoặc đã lưu trữ
	StatusCompleted = "completed" // Đã hoàn thành
)

// Trạng thái tiến độ xử lý, độc lập với trạng thái vòng đời
const (
	TrackingOnHold       = "on-hold"
	TrackingOngoing      = "ongoing"
	TrackingCompleted    = "completed"
	TrackingPending      = "pending"
	TrackingNotCompleted = "notCompleted"
)

// TrackingEntry là một mốc tiến độ xử lý của phiếu.
type TrackingEntry struct {
	Status string `json:"status" bson:"status"`
	Date   int64  `json:"date" bson:"date"` // UnixMilli
	Note   string `json:"note" bson:"note"`
}

// JobOrder là phiếu yêu cầu bảo trì cơ sở vật chất.
//
// Nhóm field thông tin người yêu cầu (firstName đến description) được chụp
// lại tại thời điểm tạo phiếu và không thay đổi qua các thao tác sau đó.
type JobOrder struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	JobOrderNumber string             `json:"jobOrderNumber" bson:"jobOrderNumber" index:"unique"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" index:"single"`

	// Thông tin người yêu cầu, bất biến sau khi tạo
	FirstName   string `json:"firstName" bson:"firstName"`
	LastName    string `json:"lastName" bson:"lastName" index:"single"`
	ReqOffice   string `json:"reqOffice" bson:"reqOffice" index:"single"`
	Campus      string `json:"campus" bson:"campus"`
	Building    string `json:"building" bson:"building"`
	Floor       string `json:"floor" bson:"floor"`
	Room        string `json:"room" bson:"room"`
	Position    string `json:"position" bson:"position"`
	Description string `json:"description" bson:"description"`

	// Trạng thái và xử lý
	Status          string `json:"status" bson:"status" index:"single"`
	RejectionReason string `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	Remarks         string `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Priority        string `json:"priority,omitempty" bson:"priority,omitempty"`
	AssignedTo      string `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"` // Tên hiển thị người được phân công
	DateAssigned    int64  `json:"dateAssigned,omitempty" bson:"dateAssigned,omitempty"`

	// Kế hoạch thực hiện
	ScheduleWork string  `json:"scheduleWork,omitempty" bson:"scheduleWork,omitempty"`
	DateFrom     int64   `json:"dateFrom,omitempty" bson:"dateFrom,omitempty"`
	DateTo       int64   `json:"dateTo,omitempty" bson:"dateTo,omitempty"`
	CostRequired float64 `json:"costRequired,omitempty" bson:"costRequired,omitempty"`
	ChargeTo     string  `json:"chargeTo,omitempty" bson:"chargeTo,omitempty"`

	// Tiến độ và phản hồi
	Tracking          []TrackingEntry `json:"tracking" bson:"tracking"`
	Feedback          string          `json:"feedback,omitempty" bson:"feedback,omitempty"`
	FeedbackSubmitted bool            `json:"feedbackSubmitted" bson:"feedbackSubmitted"`

	FileUrl   string `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}

// IsTerminal cho biết trạng thái có phải trạng thái kết thúc không.
func IsTerminal(status string) bool {
	return status == StatusRejected || status == StatusCompleted
}

// IsValidStatus kiểm tra trạng thái vòng đời hợp lệ.
func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusOngoing, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// IsValidTrackingStatus kiểm tra trạng thái tiến độ hợp lệ.
func IsValidTrackingStatus(status string) bool {
	switch status {
	case TrackingOnHold, TrackingOngoing, TrackingCompleted, TrackingPending, TrackingNotCompleted:
		return true
	}
	return false
}

// JobOrderCounter là bộ đếm cấp số phiếu theo ngày. Key có dạng
// jobOrder-{YY}-{MM}-{DD}, giá trị Seq tăng nguyên tử qua $inc.
type JobOrderCounter struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Key       string             `json:"key" bson:"key" index:"unique"`
	Seq       int64              `json:"seq" bson:"seq"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// Recommendation là khuyến nghị bảo trì định kỳ sinh ra từ phân tích
// các sự cố lặp lại.
type Recommendation struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Issue          string             `json:"issue" bson:"issue"`
	Recommendation string             `json:"recommendation" bson:"recommendation"`
	Occurrences    int                `json:"occurrences" bson:"occurrences"`
	Resolved       bool               `json:"resolved" bson:"resolved"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
