package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "facility_works/internal/api/base/service"
	jomodels "facility_works/internal/api/joborder/models"
	"facility_works/internal/common"
	"facility_works/internal/global"
)

// SequenceService cấp số phiếu yêu cầu theo ngày.
type SequenceService struct {
	*basesvc.BaseServiceMongoImpl[jomodels.JobOrderCounter]
}

// NewSequenceService tạo service cấp số phiếu.
func NewSequenceService() (*SequenceService, error) {
	colName := global.MongoDB_ColNames.JobOrderCounters
	collection, ok := global.RegistryCollections.Get(colName)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", colName, common.ErrNotFound)
	}

	return &SequenceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[jomodels.JobOrderCounter](collection),
	}, nil
}

// BuildCounterKey tạo key bộ đếm theo ngày, dạng jobOrder-{YY}-{MM}-{DD}.
func BuildCounterKey(t time.Time) string {
	return fmt.Sprintf("jobOrder-%s-%s-%s", t.Format("06"), t.Format("01"), t.Format("02"))
}

// FormatJobOrderNumber tạo số phiếu dạng YY-MMDDNN từ thời điểm tạo và
// số thứ tự trong ngày.
func FormatJobOrderNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s%s%02d", t.Format("06"), t.Format("01"), t.Format("02"), seq)
}

// isCounterRace nhận diện lỗi trùng key khi hai upsert cùng chen insert
// bộ đếm của một ngày mới.
func isCounterRace(err error) bool {
	return errors.Is(err, common.ErrMongoDuplicate)
}

// Next tăng bộ đếm của ngày hiện tại và trả về số thứ tự mới.
// Upsert với $inc đảm bảo hai phiếu tạo đồng thời không trùng số.
func (s *SequenceService) Next(ctx context.Context, t time.Time) (int64, error) {
	key := BuildCounterKey(t)

	// Field key đã nằm trong filter nên tự được gán khi insert,
	// đưa vào $setOnInsert sẽ gây conflict operator.
	update := &basesvc.UpdateData{
		Inc:         map[string]interface{}{"seq": int64(1)},
		SetOnInsert: map[string]interface{}{"createdAt": t.UnixMilli()},
	}

	counter, err := s.Upsert(ctx, bson.M{"key": key}, update)
	if isCounterRace(err) {
		// Hai phiếu đầu tiên của ngày có thể cùng chen insert bộ đếm.
		// Document lúc này chắc chắn đã tồn tại nên upsert lại sẽ khớp
		// và chỉ còn $inc.
		counter, err = s.Upsert(ctx, bson.M{"key": key}, update)
	}
	if err != nil {
		return 0, err
	}

	return counter.Seq, nil
}
