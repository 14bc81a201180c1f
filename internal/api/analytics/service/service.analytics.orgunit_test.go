package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	jomodels "facility_works/internal/api/joborder/models"
	orgmodels "facility_works/internal/api/org/models"
	orgsvc "facility_works/internal/api/org/service"
)

func sampleCampuses() []orgmodels.Campus {
	return []orgmodels.Campus{
		{
			Name: "Main Campus",
			Buildings: []orgmodels.Building{
				{
					Name: "Administration Building",
					Floors: []orgmodels.Floor{
						{
							Name: "Ground Floor",
							Offices: []orgmodels.Office{
								{Name: "Office of the Registrar"},
								{Name: "Accounting Office"},
							},
						},
					},
				},
			},
		},
	}
}

func TestResolveOffice_SubstringFallback(t *testing.T) {
	lookup := orgsvc.BuildOfficeLookup(sampleCampuses())

	// Tên rút gọn phải khớp tên đầy đủ qua fallback chứa chuỗi
	loc, ok := orgsvc.ResolveOffice(lookup, "Registrar")
	assert.True(t, ok)
	assert.Equal(t, "Office of the Registrar", loc.Office)
	assert.Equal(t, "Main Campus", loc.Campus)

	// Không phân biệt hoa thường
	_, ok = orgsvc.ResolveOffice(lookup, "ACCOUNTING OFFICE")
	assert.True(t, ok)

	// Tên không tồn tại
	_, ok = orgsvc.ResolveOffice(lookup, "Cafeteria")
	assert.False(t, ok)
}

func TestHasRecurrenceWithinWindow(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	// 3 lần trong 10 ngày: đạt ngưỡng
	within := []int64{
		base.UnixMilli(),
		base.AddDate(0, 0, 5).UnixMilli(),
		base.AddDate(0, 0, 10).UnixMilli(),
	}
	ok, count := HasRecurrenceWithinWindow(within, 3, 14*24*time.Hour)
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	// 3 lần rải trên 2 tháng: không có cửa sổ 14 ngày nào chứa đủ
	spread := []int64{
		base.UnixMilli(),
		base.AddDate(0, 1, 0).UnixMilli(),
		base.AddDate(0, 2, 0).UnixMilli(),
	}
	ok, _ = HasRecurrenceWithinWindow(spread, 3, 14*24*time.Hour)
	assert.False(t, ok)

	// Ít hơn ngưỡng
	ok, _ = HasRecurrenceWithinWindow([]int64{base.UnixMilli()}, 3, 14*24*time.Hour)
	assert.False(t, ok)
}

func TestBuildMaintenanceFlags(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	jobOrders := []jomodels.JobOrder{
		{Description: "Broken AC", ReqOffice: "Registrar", CreatedAt: base.UnixMilli()},
		{Description: "broken ac", ReqOffice: "Registrar", CreatedAt: base.AddDate(0, 0, 3).UnixMilli()},
		{Description: "BROKEN AC", ReqOffice: "Registrar", CreatedAt: base.AddDate(0, 0, 7).UnixMilli()},
		// Cùng sự cố nhưng phòng ban khác, không đủ ngưỡng
		{Description: "Broken AC", ReqOffice: "Accounting Office", CreatedAt: base.UnixMilli()},
	}

	flags := BuildMaintenanceFlags(jobOrders, sampleCampuses())

	assert.Len(t, flags, 1)
	assert.Equal(t, "Broken AC", flags[0].Issue)
	assert.Equal(t, "Registrar", flags[0].ReqOffice)
	assert.Equal(t, "error", flags[0].Severity)
	assert.Equal(t, 3, flags[0].Occurrences)
	// Registrar khớp Office of the Registrar qua fallback
	assert.Equal(t, "Main Campus", flags[0].Campus)
	assert.Equal(t, "Administration Building", flags[0].Building)
}

func TestBuildMaintenanceFlags_UnknownOffice(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	jobOrders := []jomodels.JobOrder{
		{Description: "Leak", ReqOffice: "Mystery Office", CreatedAt: base.UnixMilli()},
		{Description: "Leak", ReqOffice: "Mystery Office", CreatedAt: base.AddDate(0, 0, 1).UnixMilli()},
		{Description: "Leak", ReqOffice: "Mystery Office", CreatedAt: base.AddDate(0, 0, 2).UnixMilli()},
	}

	flags := BuildMaintenanceFlags(jobOrders, sampleCampuses())

	assert.Len(t, flags, 1)
	// Phòng ban không khớp cây tổ chức vẫn được cảnh báo với vị trí Unknown
	assert.Equal(t, "Unknown", flags[0].Campus)
	assert.Equal(t, "Unknown", flags[0].Building)
}
