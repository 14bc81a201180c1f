package models

// PaginateResult chứa kết quả phân trang chuẩn của hệ thống.
type PaginateResult[T any] struct {
	Page      int64 `json:"page" bson:"page"`           // Trang hiện tại (bắt đầu từ 1)
	Limit     int64 `json:"limit" bson:"limit"`         // Số item mỗi trang
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // Số item trong trang hiện tại
	Items     []T   `json:"items" bson:"items"`         // Danh sách item
	Total     int64 `json:"total" bson:"total"`         // Tổng số item thỏa filter
	TotalPage int64 `json:"totalPage" bson:"totalPage"` // Tổng số trang
}

// CountResult chứa kết quả đếm.
type CountResult struct {
	Total int64 `json:"total" bson:"total"`
}
