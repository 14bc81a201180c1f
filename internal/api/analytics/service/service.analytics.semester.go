package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	jomodels "facility_works/internal/api/joborder/models"
)

// SemesterRange định nghĩa một học kỳ theo tháng bắt đầu và kết thúc.
// Khi EndMonth nhỏ hơn StartMonth, học kỳ vắt qua năm mới và năm kết
// thúc được cộng thêm một.
type SemesterRange struct {
	Name       string
	StartMonth time.Month
	EndMonth   time.Month
}

// DefaultSemesterRanges là lịch học kỳ chuẩn của trường.
var DefaultSemesterRanges = []SemesterRange{
	{Name: "First", StartMonth: time.August, EndMonth: time.December},
	{Name: "Second", StartMonth: time.January, EndMonth: time.March},
	{Name: "Third", StartMonth: time.April, EndMonth: time.July},
}

// SemesterUnknown là nhãn khi thời điểm không rơi vào học kỳ nào.
const SemesterUnknown = "Unknown"

// FindSemester xác định học kỳ chứa thời điểm t theo danh sách học kỳ.
// Trả về SemesterUnknown nếu không học kỳ nào chứa t.
func FindSemester(t time.Time, ranges []SemesterRange) string {
	for _, r := range ranges {
		startYear := t.Year()
		endYear := startYear
		if r.EndMonth < r.StartMonth {
			endYear++
		}

		start := time.Date(startYear, r.StartMonth, 1, 0, 0, 0, 0, t.Location())
		end := time.Date(endYear, r.EndMonth+1, 1, 0, 0, 0, 0, t.Location())

		if !t.Before(start) && t.Before(end) {
			return r.Name
		}

		// Thời điểm đầu năm có thể thuộc học kỳ bắt đầu từ năm trước
		if r.EndMonth < r.StartMonth {
			prevStart := time.Date(startYear-1, r.StartMonth, 1, 0, 0, 0, 0, t.Location())
			prevEnd := time.Date(startYear, r.EndMonth+1, 1, 0, 0, 0, 0, t.Location())
			if !t.Before(prevStart) && t.Before(prevEnd) {
				return r.Name
			}
		}
	}
	return SemesterUnknown
}

// SemesterSeries là số phiếu của một phòng ban qua các học kỳ, các phần
// tử Counts thẳng hàng với Semesters để client vẽ biểu đồ trực tiếp.
type SemesterSeries struct {
	ReqOffice string  `json:"reqOffice"`
	Counts    []int64 `json:"counts"`
}

// SemesterBreakdown là kết quả thống kê phiếu theo học kỳ và phòng ban.
type SemesterBreakdown struct {
	Semesters []string         `json:"semesters"`
	Series    []SemesterSeries `json:"series"`
}

// BuildSemesterBreakdown gom số phiếu theo cặp (học kỳ, phòng ban) và
// dựng chuỗi số liệu thẳng hàng cho từng phòng ban.
func BuildSemesterBreakdown(jobOrders []jomodels.JobOrder, ranges []SemesterRange) *SemesterBreakdown {
	semesters := make([]string, 0, len(ranges))
	semesterIndex := map[string]int{}
	for i, r := range ranges {
		semesters = append(semesters, r.Name)
		semesterIndex[r.Name] = i
	}

	counts := map[string][]int64{}
	offices := []string{}

	for _, jobOrder := range jobOrders {
		semester := FindSemester(time.UnixMilli(jobOrder.CreatedAt).UTC(), ranges)
		idx, ok := semesterIndex[semester]
		if !ok {
			continue
		}

		office := jobOrder.ReqOffice
		if office == "" {
			office = SemesterUnknown
		}
		if _, seen := counts[office]; !seen {
			counts[office] = make([]int64, len(ranges))
			offices = append(offices, office)
		}
		counts[office][idx]++
	}

	sort.Strings(offices)

	series := make([]SemesterSeries, 0, len(offices))
	for _, office := range offices {
		series = append(series, SemesterSeries{ReqOffice: office, Counts: counts[office]})
	}

	return &SemesterBreakdown{Semesters: semesters, Series: series}
}

// AnalyzeBySemester thống kê toàn bộ phiếu theo học kỳ và phòng ban.
func (s *AnalyticsService) AnalyzeBySemester(ctx context.Context) (*SemesterBreakdown, error) {
	jobOrders, err := s.jobOrders.Find(ctx, bson.D{}, nil)
	if err != nil {
		return nil, err
	}
	return BuildSemesterBreakdown(jobOrders, DefaultSemesterRanges), nil
}
