package service

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "facility_works/internal/api/auth/models"
	"facility_works/internal/api/joborder/dto"
	"facility_works/internal/common"
)

func millis(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestParseDateRange_Day(t *testing.T) {
	from, to, err := ParseDateRange("2024-08-15:2024-08-20", "")
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if from != millis(2024, time.August, 15) {
		t.Errorf("from không đúng: %d", from)
	}
	// Đầu end bao trọn ngày 20
	if to != millis(2024, time.August, 21) {
		t.Errorf("to phải là đầu ngày 21, nhận %d", to)
	}
}

func TestParseDateRange_Month(t *testing.T) {
	from, to, err := ParseDateRange("2024-08:2024-09", "")
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if from != millis(2024, time.August, 1) {
		t.Errorf("from phải là đầu tháng 8, nhận %d", from)
	}
	if to != millis(2024, time.October, 1) {
		t.Errorf("to phải bao trọn tháng 9, nhận %d", to)
	}
}

func TestParseDateRange_Year(t *testing.T) {
	from, to, err := ParseDateRange("2024:2024", "")
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if from != millis(2024, time.January, 1) {
		t.Errorf("from phải là đầu năm, nhận %d", from)
	}
	if to != millis(2025, time.January, 1) {
		t.Errorf("to phải bao trọn năm 2024, nhận %d", to)
	}
}

func TestParseDateRange_Invalid(t *testing.T) {
	cases := []string{
		"2024-08-15",           // Thiếu dấu hai chấm
		"abc:2024",             // Mốc đầu sai định dạng
		"2024:xyz",             // Mốc cuối sai định dạng
		"2024-09:2024-08",      // Kết thúc trước bắt đầu
		"2024-08-15:2024-08-10",
	}
	for _, input := range cases {
		if _, _, err := ParseDateRange(input, ""); err == nil {
			t.Errorf("input %q phải trả về lỗi", input)
		}
	}
}

func TestParseDateRange_FilterByMonth(t *testing.T) {
	// filterBy=month ép mốc ngày về trọn tháng chứa nó
	from, to, err := ParseDateRange("2024-08-15:2024-09-03", FilterByMonth)
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if from != millis(2024, time.August, 1) {
		t.Errorf("from phải là đầu tháng 8, nhận %d", from)
	}
	if to != millis(2024, time.October, 1) {
		t.Errorf("to phải bao trọn tháng 9, nhận %d", to)
	}
}

func TestParseDateRange_FilterByYear(t *testing.T) {
	from, to, err := ParseDateRange("2024-08:2024-11", FilterByYear)
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if from != millis(2024, time.January, 1) {
		t.Errorf("from phải là đầu năm, nhận %d", from)
	}
	if to != millis(2025, time.January, 1) {
		t.Errorf("to phải bao trọn năm 2024, nhận %d", to)
	}
}

func TestParseDateRange_FilterByInvalid(t *testing.T) {
	_, _, err := ParseDateRange("2024-08:2024-09", "week")
	if err == nil {
		t.Fatal("filterBy không hợp lệ phải trả về lỗi")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) || customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("lỗi phải là 400 Bad Request, nhận: %v", err)
	}
}

func TestParseDateBounds(t *testing.T) {
	// Hai mốc rời nhau, không qua chuỗi start:end
	from, to, err := ParseDateBounds("2024-08-01", "2024-08-31", "")
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if from != millis(2024, time.August, 1) {
		t.Errorf("from không đúng: %d", from)
	}
	if to != millis(2024, time.September, 1) {
		t.Errorf("to phải bao trọn ngày 31, nhận %d", to)
	}
}

func TestBuildListFilter_UserScope(t *testing.T) {
	callerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	// User truyền userId của người khác vẫn chỉ thấy phiếu của mình
	filter, err := BuildListFilter(&dto.ListJobOrdersQuery{UserID: otherID.Hex()}, callerID.Hex(), authmodels.RoleUser)
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if filter["userId"] != callerID {
		t.Errorf("user phải bị giới hạn vào phiếu của chính mình, filter: %v", filter)
	}
}

func TestBuildListFilter_AdminDefaultScope(t *testing.T) {
	filter, err := BuildListFilter(&dto.ListJobOrdersQuery{}, primitive.NewObjectID().Hex(), authmodels.RoleAdmin)
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}

	statusFilter, ok := filter["status"].(bson.M)
	if !ok {
		t.Fatalf("admin không lọc status phải nhận filter $in, filter: %v", filter)
	}
	in, ok := statusFilter["$in"].([]string)
	if !ok || len(in) != 2 {
		t.Fatalf("filter $in phải chứa 2 trạng thái chưa kết thúc, nhận: %v", statusFilter)
	}
}

func TestBuildListFilter_AdminExplicitStatus(t *testing.T) {
	filter, err := BuildListFilter(&dto.ListJobOrdersQuery{Status: "completed"}, primitive.NewObjectID().Hex(), authmodels.RoleAdmin)
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if filter["status"] != "completed" {
		t.Errorf("status truyền rõ phải được giữ nguyên, filter: %v", filter)
	}
}

func TestBuildListFilter_InvalidStatus(t *testing.T) {
	_, err := BuildListFilter(&dto.ListJobOrdersQuery{Status: "archived"}, primitive.NewObjectID().Hex(), authmodels.RoleAdmin)
	if err == nil {
		t.Fatal("trạng thái không hợp lệ phải trả về lỗi")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) || customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("lỗi phải là 400 Bad Request, nhận: %v", err)
	}
}

func TestBuildListFilter_LastNameRegex(t *testing.T) {
	filter, err := BuildListFilter(&dto.ListJobOrdersQuery{LastName: "Ng(uy)ễn"}, primitive.NewObjectID().Hex(), authmodels.RoleAdmin)
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}

	regexFilter, ok := filter["lastName"].(bson.M)
	if !ok {
		t.Fatalf("lastName phải dùng filter $regex, filter: %v", filter)
	}
	if regexFilter["$options"] != "i" {
		t.Error("tìm theo lastName phải không phân biệt hoa thường")
	}
	// Ký tự đặc biệt regex phải được escape
	if regexFilter["$regex"] == "Ng(uy)ễn" {
		t.Error("chuỗi tìm kiếm phải được escape trước khi đưa vào $regex")
	}
}
