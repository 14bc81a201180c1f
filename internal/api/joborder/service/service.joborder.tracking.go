package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "facility_works/internal/api/base/service"
	"facility_works/internal/api/joborder/dto"
	jomodels "facility_works/internal/api/joborder/models"
)

// NormalizeTrackingEntries chuẩn hóa các mốc tiến độ từ client: trạng
// thái không hợp lệ được đưa về pending, mốc thiếu thời gian được gán
// thời điểm hiện tại.
func NormalizeTrackingEntries(inputs []dto.TrackingEntryInput) []jomodels.TrackingEntry {
	entries := make([]jomodels.TrackingEntry, 0, len(inputs))
	now := time.Now().UnixMilli()

	for _, input := range inputs {
		status := input.Status
		if !jomodels.IsValidTrackingStatus(status) {
			status = jomodels.TrackingPending
		}

		date := input.Date
		if date <= 0 {
			date = now
		}

		entries = append(entries, jomodels.TrackingEntry{
			Status: status,
			Date:   date,
			Note:   input.Note,
		})
	}

	return entries
}

// SetTracking thay thế toàn bộ mảng tiến độ của phiếu. Mảng cũ không
// được giữ lại phần tử nào.
func (s *JobOrderService) SetTracking(ctx context.Context, id primitive.ObjectID, inputs []dto.TrackingEntryInput) (jomodels.JobOrder, error) {
	entries := NormalizeTrackingEntries(inputs)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, bson.M{"_id": id}, &basesvc.UpdateData{
		Set: map[string]interface{}{"tracking": entries},
	}, opts)
}
