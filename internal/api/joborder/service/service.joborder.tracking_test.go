package service

import (
	"testing"

	"facility_works/internal/api/joborder/dto"
	jomodels "facility_works/internal/api/joborder/models"
)

func TestNormalizeTrackingEntries_CoerceInvalidStatus(t *testing.T) {
	inputs := []dto.TrackingEntryInput{
		{Status: "ongoing", Date: 1000},
		{Status: "paused", Date: 2000},   // Không hợp lệ
		{Status: "", Date: 3000},         // Rỗng
		{Status: "notCompleted", Date: 4000},
	}

	entries := NormalizeTrackingEntries(inputs)
	if len(entries) != 4 {
		t.Fatalf("số mốc phải giữ nguyên, nhận %d", len(entries))
	}

	if entries[0].Status != jomodels.TrackingOngoing {
		t.Errorf("trạng thái hợp lệ phải giữ nguyên, nhận %q", entries[0].Status)
	}
	if entries[1].Status != jomodels.TrackingPending {
		t.Errorf("trạng thái không hợp lệ phải về pending, nhận %q", entries[1].Status)
	}
	if entries[2].Status != jomodels.TrackingPending {
		t.Errorf("trạng thái rỗng phải về pending, nhận %q", entries[2].Status)
	}
	if entries[3].Status != jomodels.TrackingNotCompleted {
		t.Errorf("notCompleted là trạng thái hợp lệ, nhận %q", entries[3].Status)
	}
}

func TestNormalizeTrackingEntries_FillMissingDate(t *testing.T) {
	entries := NormalizeTrackingEntries([]dto.TrackingEntryInput{
		{Status: "completed", Note: "xong"},
	})

	if entries[0].Date <= 0 {
		t.Error("mốc thiếu thời gian phải được gán thời điểm hiện tại")
	}
	if entries[0].Note != "xong" {
		t.Errorf("note phải được giữ nguyên, nhận %q", entries[0].Note)
	}
}

func TestNormalizeTrackingEntries_Empty(t *testing.T) {
	entries := NormalizeTrackingEntries(nil)
	if entries == nil || len(entries) != 0 {
		t.Errorf("input rỗng phải trả về slice rỗng, nhận %v", entries)
	}
}
