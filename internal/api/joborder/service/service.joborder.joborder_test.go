package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"facility_works/internal/common"
)

// Service chưa nối database: guard lý do rỗng phải chặn request trước
// khi đụng tới store, nếu không test này sẽ panic vì con trỏ nil.
func TestReject_EmptyReason(t *testing.T) {
	svc := &JobOrderService{}

	_, err := svc.Reject(context.Background(), primitive.NewObjectID(), "")
	if err == nil {
		t.Fatal("lý do từ chối rỗng phải trả về lỗi")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("lỗi phải là *common.Error, nhận %T", err)
	}
	if customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("lỗi phải là 400 Bad Request, nhận: %v", err)
	}
}

// Archive dùng chung chính sách với Reject nên cũng phải chặn lý do rỗng.
func TestArchive_EmptyReason(t *testing.T) {
	svc := &JobOrderService{}

	_, err := svc.Archive(context.Background(), primitive.NewObjectID(), "")
	if err == nil {
		t.Fatal("lưu trữ không kèm lý do phải trả về lỗi")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) || customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("lỗi phải là 400 Bad Request, nhận: %v", err)
	}
}
