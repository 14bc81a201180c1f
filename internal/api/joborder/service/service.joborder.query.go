package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	authmodels "facility_works/internal/api/auth/models"
	"facility_works/internal/api/joborder/dto"
	jomodels "facility_works/internal/api/joborder/models"
	"facility_works/internal/common"
)

// Các mức chi tiết của khoảng thời gian, dùng cho tham số filterBy.
const (
	FilterByDay   = "day"
	FilterByMonth = "month"
	FilterByYear  = "year"
)

// ParseDateRange đọc chuỗi dạng start:end thành khoảng thời gian
// [from, to) theo UnixMilli. Mỗi đầu hỗ trợ ba độ chi tiết:
//
//	2024-08-15  - một ngày
//	2024-08     - một tháng
//	2024        - một năm
//
// filterBy rỗng thì độ chi tiết suy từ định dạng của từng đầu; filterBy
// là day, month hoặc year thì ép cả hai đầu về độ chi tiết đó, ví dụ
// filterBy=month với 2024-08-15 bao trọn tháng 8.
// Đầu end luôn được mở rộng hết đơn vị của nó.
func ParseDateRange(dateRange string, filterBy string) (int64, int64, error) {
	parts := strings.Split(dateRange, ":")
	if len(parts) != 2 {
		return 0, 0, common.NewError(common.ErrCodeValidationFormat,
			"Khoảng thời gian phải có dạng start:end", common.StatusBadRequest, nil)
	}

	return ParseDateBounds(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), filterBy)
}

// ParseDateBounds dựng khoảng [from, to) từ hai mốc thời gian rời nhau.
func ParseDateBounds(start string, end string, filterBy string) (int64, int64, error) {
	from, _, err := parseDateBound(start, filterBy)
	if err != nil {
		return 0, 0, err
	}
	_, to, err := parseDateBound(end, filterBy)
	if err != nil {
		return 0, 0, err
	}

	if to <= from {
		return 0, 0, common.NewError(common.ErrCodeValidationInput,
			"Thời điểm kết thúc phải sau thời điểm bắt đầu", common.StatusBadRequest, nil)
	}

	return from, to, nil
}

// parseDateBound trả về khoảng [start, end) của một mốc thời gian.
// filterBy rỗng thì độ chi tiết lấy theo định dạng của value.
func parseDateBound(value string, filterBy string) (int64, int64, error) {
	var t time.Time
	unit := filterBy

	if parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC); err == nil {
		t = parsed
		if unit == "" {
			unit = FilterByDay
		}
	} else if parsed, err := time.ParseInLocation("2006-01", value, time.UTC); err == nil {
		t = parsed
		if unit == "" {
			unit = FilterByMonth
		}
	} else if parsed, err := time.ParseInLocation("2006", value, time.UTC); err == nil {
		t = parsed
		if unit == "" {
			unit = FilterByYear
		}
	} else {
		return 0, 0, common.NewError(common.ErrCodeValidationFormat,
			fmt.Sprintf("Mốc thời gian %q không hợp lệ", value), common.StatusBadRequest, nil)
	}

	switch unit {
	case FilterByDay:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return start.UnixMilli(), start.AddDate(0, 0, 1).UnixMilli(), nil
	case FilterByMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start.UnixMilli(), start.AddDate(0, 1, 0).UnixMilli(), nil
	case FilterByYear:
		start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start.UnixMilli(), start.AddDate(1, 0, 0).UnixMilli(), nil
	default:
		return 0, 0, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("filterBy %q không hợp lệ, chấp nhận day, month, year", filterBy), common.StatusBadRequest, nil)
	}
}

// BuildListFilter dựng filter MongoDB cho danh sách phiếu theo query và
// vai trò người gọi.
//
// Quy tắc phạm vi mặc định:
//   - user chỉ thấy phiếu của chính mình, tham số userId bị bỏ qua
//   - admin không lọc status sẽ thấy các phiếu chưa kết thúc (pending, ongoing)
func BuildListFilter(query *dto.ListJobOrdersQuery, callerID string, callerRole string) (bson.M, error) {
	filter := bson.M{}

	if query.Status != "" {
		if !jomodels.IsValidStatus(query.Status) {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Trạng thái %q không hợp lệ", query.Status), common.StatusBadRequest, nil)
		}
		filter["status"] = query.Status
	}

	switch callerRole {
	case authmodels.RoleUser:
		ownerID, err := primitive.ObjectIDFromHex(callerID)
		if err != nil {
			return nil, common.ErrInvalidId
		}
		filter["userId"] = ownerID
	default:
		if query.UserID != "" {
			userID, err := primitive.ObjectIDFromHex(query.UserID)
			if err != nil {
				return nil, common.ErrInvalidId
			}
			filter["userId"] = userID
		}
		if query.Status == "" {
			filter["status"] = bson.M{"$in": []string{jomodels.StatusPending, jomodels.StatusOngoing}}
		}
	}

	if query.LastName != "" {
		filter["lastName"] = bson.M{
			"$regex":   regexp.QuoteMeta(query.LastName),
			"$options": "i",
		}
	}

	if query.DateRange != "" {
		from, to, err := ParseDateRange(query.DateRange, query.FilterBy)
		if err != nil {
			return nil, err
		}
		filter["createdAt"] = bson.M{"$gte": from, "$lt": to}
	}

	return filter, nil
}

// List trả về danh sách phiếu theo filter, sắp xếp mới nhất trước,
// phân trang offset với pageSize mặc định 10.
func (s *JobOrderService) List(ctx context.Context, query *dto.ListJobOrdersQuery, callerID string, callerRole string) (*dto.JobOrderListResult[jomodels.JobOrder], error) {
	filter, err := BuildListFilter(query, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	result, err := s.FindWithPagination(ctx, filter, query.Page, query.PageSize, opts)
	if err != nil {
		return nil, err
	}

	return &dto.JobOrderListResult[jomodels.JobOrder]{
		Items:      result.Items,
		TotalPages: result.TotalPage,
	}, nil
}

// CountByDateResult là số phiếu theo ngày tạo.
type CountByDateResult struct {
	Date  string `json:"date" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// CountByDate gom số phiếu theo ngày tạo trong khoảng thời gian.
func (s *JobOrderService) CountByDate(ctx context.Context, from, to int64) ([]CountByDateResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: bson.D{{Key: "$toDate", Value: "$createdAt"}}},
				}},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []CountByDateResult{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// CountByOfficeResult là số phiếu theo phòng ban yêu cầu.
type CountByOfficeResult struct {
	ReqOffice string `json:"reqOffice" bson:"_id"`
	Count     int64  `json:"count" bson:"count"`
}

// CountByOffice gom số phiếu theo phòng ban yêu cầu.
func (s *JobOrderService) CountByOffice(ctx context.Context) ([]CountByOfficeResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$reqOffice"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []CountByOfficeResult{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}
