package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	jomodels "facility_works/internal/api/joborder/models"
	orgmodels "facility_works/internal/api/org/models"
	orgsvc "facility_works/internal/api/org/service"
)

// Ngưỡng cảnh báo: một sự cố lặp lại từ 3 lần trở lên trong cửa sổ 14
// ngày tại cùng một phòng ban.
const (
	FlagThreshold = 3
	FlagWindow    = 14 * 24 * time.Hour
)

// MaintenanceFlag là cảnh báo sự cố dồn dập tại một phòng ban.
type MaintenanceFlag struct {
	Issue       string `json:"issue"`
	ReqOffice   string `json:"reqOffice"`
	Campus      string `json:"campus"`
	Building    string `json:"building"`
	Occurrences int    `json:"occurrences"`
	Severity    string `json:"severity"`
}

// HasRecurrenceWithinWindow kiểm tra có ít nhất threshold mốc thời gian
// nằm gọn trong một cửa sổ trượt độ dài window không.
func HasRecurrenceWithinWindow(timestamps []int64, threshold int, window time.Duration) (bool, int) {
	if len(timestamps) < threshold {
		return false, 0
	}

	sorted := make([]int64, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	windowMillis := window.Milliseconds()
	best := 0
	left := 0
	for right := range sorted {
		for sorted[right]-sorted[left] > windowMillis {
			left++
		}
		if count := right - left + 1; count > best {
			best = count
		}
	}

	return best >= threshold, best
}

// BuildMaintenanceFlags đối chiếu phiếu với cây tổ chức và đánh dấu các
// cặp (sự cố, phòng ban) tái diễn dồn dập. Phòng ban không khớp cây tổ
// chức được gắn vị trí Unknown thay vì bị loại khỏi kết quả.
func BuildMaintenanceFlags(jobOrders []jomodels.JobOrder, campuses []orgmodels.Campus) []MaintenanceFlag {
	lookup := orgsvc.BuildOfficeLookup(campuses)

	type groupKey struct {
		issue  string
		office string
	}
	groups := map[groupKey][]int64{}
	literals := map[groupKey]jomodels.JobOrder{}
	order := []groupKey{}

	for _, jobOrder := range jobOrders {
		issue := NormalizeDescription(jobOrder.Description)
		if issue == "" {
			continue
		}
		key := groupKey{issue: issue, office: jobOrder.ReqOffice}
		if _, seen := groups[key]; !seen {
			literals[key] = jobOrder
			order = append(order, key)
		}
		groups[key] = append(groups[key], jobOrder.CreatedAt)
	}

	flags := []MaintenanceFlag{}
	for _, key := range order {
		recurring, occurrences := HasRecurrenceWithinWindow(groups[key], FlagThreshold, FlagWindow)
		if !recurring {
			continue
		}

		first := literals[key]
		campus, building := SemesterUnknown, SemesterUnknown
		if loc, ok := orgsvc.ResolveOffice(lookup, key.office); ok {
			campus, building = loc.Campus, loc.Building
		}

		flags = append(flags, MaintenanceFlag{
			Issue:       first.Description,
			ReqOffice:   key.office,
			Campus:      campus,
			Building:    building,
			Occurrences: occurrences,
			Severity:    "error",
		})
	}

	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Occurrences > flags[j].Occurrences
	})

	return flags
}

// AnalyzeMaintenanceFlags tìm các sự cố dồn dập theo phòng ban trên toàn
// bộ phiếu, đối chiếu với cây tổ chức hiện tại.
func (s *AnalyticsService) AnalyzeMaintenanceFlags(ctx context.Context, campusSvc *orgsvc.CampusService) ([]MaintenanceFlag, error) {
	jobOrders, err := s.jobOrders.Find(ctx, bson.D{}, nil)
	if err != nil {
		return nil, err
	}

	campuses, err := campusSvc.ListCampuses(ctx)
	if err != nil {
		return nil, err
	}

	return BuildMaintenanceFlags(jobOrders, campuses), nil
}
