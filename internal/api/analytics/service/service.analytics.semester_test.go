package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	jomodels "facility_works/internal/api/joborder/models"
)

func TestFindSemester_FirstSemester(t *testing.T) {
	at := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "First", FindSemester(at, DefaultSemesterRanges))
}

func TestFindSemester_SecondSemester(t *testing.T) {
	at := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Second", FindSemester(at, DefaultSemesterRanges))
}

func TestFindSemester_ThirdSemester(t *testing.T) {
	at := time.Date(2025, time.July, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "Third", FindSemester(at, DefaultSemesterRanges))
}

func TestFindSemester_EndYearRollsForward(t *testing.T) {
	// Học kỳ vắt qua năm mới: tháng 12 năm trước và tháng 1 năm sau
	// cùng thuộc một học kỳ
	ranges := []SemesterRange{
		{Name: "Winter", StartMonth: time.November, EndMonth: time.February},
	}

	assert.Equal(t, "Winter", FindSemester(time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC), ranges))
	assert.Equal(t, "Winter", FindSemester(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), ranges))
	assert.Equal(t, "Winter", FindSemester(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), ranges))
}

func TestFindSemester_Unknown(t *testing.T) {
	// Lịch rút gọn không phủ hết năm: tháng nằm ngoài mọi học kỳ
	ranges := []SemesterRange{
		{Name: "First", StartMonth: time.August, EndMonth: time.December},
	}

	at := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, SemesterUnknown, FindSemester(at, ranges))
}

func TestBuildSemesterBreakdown_AlignedCounts(t *testing.T) {
	jobOrders := []jomodels.JobOrder{
		{ReqOffice: "Registrar", CreatedAt: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{ReqOffice: "Registrar", CreatedAt: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{ReqOffice: "Registrar", CreatedAt: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{ReqOffice: "Accounting", CreatedAt: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}

	breakdown := BuildSemesterBreakdown(jobOrders, DefaultSemesterRanges)

	assert.Equal(t, []string{"First", "Second", "Third"}, breakdown.Semesters)
	assert.Len(t, breakdown.Series, 2)

	for _, series := range breakdown.Series {
		// Mỗi chuỗi phải thẳng hàng với danh sách học kỳ
		assert.Len(t, series.Counts, 3)
		switch series.ReqOffice {
		case "Registrar":
			assert.Equal(t, []int64{2, 1, 0}, series.Counts)
		case "Accounting":
			assert.Equal(t, []int64{0, 0, 1}, series.Counts)
		default:
			t.Errorf("phòng ban không mong đợi: %q", series.ReqOffice)
		}
	}
}

func TestBuildSemesterBreakdown_Empty(t *testing.T) {
	breakdown := BuildSemesterBreakdown(nil, DefaultSemesterRanges)
	assert.Equal(t, []string{"First", "Second", "Third"}, breakdown.Semesters)
	assert.Empty(t, breakdown.Series)
}
