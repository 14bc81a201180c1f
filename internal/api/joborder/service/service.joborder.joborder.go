package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	authsvc "facility_works/internal/api/auth/service"
	basesvc "facility_works/internal/api/base/service"
	"facility_works/internal/api/joborder/dto"
	jomodels "facility_works/internal/api/joborder/models"
	"facility_works/internal/api/notification"
	"facility_works/internal/common"
	"facility_works/internal/global"
	"facility_works/internal/logger"
)

// JobOrderService quản lý vòng đời phiếu yêu cầu bảo trì.
type JobOrderService struct {
	*basesvc.BaseServiceMongoImpl[jomodels.JobOrder]
	sequenceSvc *SequenceService
	identitySvc *authsvc.IdentityService
	mailer      *notification.Mailer
}

// NewJobOrderService tạo service phiếu yêu cầu. Mailer có thể nil nếu
// hệ thống không cấu hình gửi mail.
func NewJobOrderService(sequenceSvc *SequenceService, identitySvc *authsvc.IdentityService, mailer *notification.Mailer) (*JobOrderService, error) {
	colName := global.MongoDB_ColNames.JobOrders
	collection, ok := global.RegistryCollections.Get(colName)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", colName, common.ErrNotFound)
	}

	return &JobOrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[jomodels.JobOrder](collection),
		sequenceSvc:          sequenceSvc,
		identitySvc:          identitySvc,
		mailer:               mailer,
	}, nil
}

// Create tạo phiếu yêu cầu mới với số phiếu cấp từ bộ đếm theo ngày.
// Nếu không cấp được số thì phiếu không được tạo.
func (s *JobOrderService) Create(ctx context.Context, input *dto.CreateJobOrderInput, userID primitive.ObjectID) (jomodels.JobOrder, error) {
	var zero jomodels.JobOrder

	if err := global.Validate.Struct(input); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	now := time.Now()
	seq, err := s.sequenceSvc.Next(ctx, now)
	if err != nil {
		return zero, fmt.Errorf("không cấp được số phiếu: %w", err)
	}

	jobOrder := jomodels.JobOrder{
		JobOrderNumber: FormatJobOrderNumber(now, seq),
		UserID:         userID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		ReqOffice:      input.ReqOffice,
		Campus:         input.Campus,
		Building:       input.Building,
		Floor:          input.Floor,
		Room:           input.Room,
		Position:       input.Position,
		Description:    input.Description,
		Status:         jomodels.StatusPending,
		Tracking:       []jomodels.TrackingEntry{},
		FileUrl:        input.FileUrl,
	}

	created, err := s.InsertOne(ctx, jobOrder)
	if err != nil {
		return zero, err
	}

	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"jobOrderNumber": created.JobOrderNumber,
		"userId":         userID.Hex(),
	}).Info("Tạo phiếu yêu cầu mới")

	return created, nil
}

// GetById trả về phiếu theo id.
func (s *JobOrderService) GetById(ctx context.Context, id primitive.ObjectID) (jomodels.JobOrder, error) {
	return s.FindOneById(ctx, id)
}

// Approve duyệt phiếu: chuyển trạng thái sang ongoing.
// Phiếu đã completed vẫn duyệt lại được.
func (s *JobOrderService) Approve(ctx context.Context, id primitive.ObjectID) (jomodels.JobOrder, error) {
	return s.transition(ctx, id, map[string]interface{}{
		"status": jomodels.StatusOngoing,
	})
}

// Reject từ chối phiếu với lý do bắt buộc.
func (s *JobOrderService) Reject(ctx context.Context, id primitive.ObjectID, reason string) (jomodels.JobOrder, error) {
	var zero jomodels.JobOrder
	if reason == "" {
		return zero, common.NewError(common.ErrCodeValidationInput, "Lý do từ chối không được rỗng", common.StatusBadRequest, nil)
	}

	return s.transition(ctx, id, map[string]interface{}{
		"status":          jomodels.StatusRejected,
		"rejectionReason": reason,
	})
}

// Complete đánh dấu phiếu hoàn thành. Thao tác này không kiểm tra trạng
// thái trước đó để admin có thể chốt phiếu ở bất kỳ giai đoạn nào.
func (s *JobOrderService) Complete(ctx context.Context, id primitive.ObjectID) (jomodels.JobOrder, error) {
	return s.transition(ctx, id, map[string]interface{}{
		"status": jomodels.StatusCompleted,
	})
}

// Archive lưu trữ phiếu. Chính sách lưu trữ thống nhất với từ chối:
// phiếu chuyển sang rejected và lý do là bắt buộc.
func (s *JobOrderService) Archive(ctx context.Context, id primitive.ObjectID, reason string) (jomodels.JobOrder, error) {
	return s.Reject(ctx, id, reason)
}

// Update cập nhật thưa các field xử lý của phiếu. Field người yêu cầu
// không được đụng tới. Khi đổi assignedTo, tên hiển thị được tra từ tài
// khoản và dateAssigned được gán thời điểm hiện tại.
func (s *JobOrderService) Update(ctx context.Context, id primitive.ObjectID, input *dto.UpdateJobOrderInput) (jomodels.JobOrder, error) {
	var zero jomodels.JobOrder

	if err := global.Validate.Struct(input); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	set := map[string]interface{}{}
	if input.Priority != "" {
		set["priority"] = input.Priority
	}
	if input.Status != "" {
		set["status"] = input.Status
	}
	if input.Remarks != "" {
		set["remarks"] = input.Remarks
	}
	if input.ScheduleWork != "" {
		set["scheduleWork"] = input.ScheduleWork
	}
	if input.DateFrom > 0 {
		set["dateFrom"] = input.DateFrom
	}
	if input.DateTo > 0 {
		set["dateTo"] = input.DateTo
	}
	if input.CostRequired > 0 {
		set["costRequired"] = input.CostRequired
	}
	if input.ChargeTo != "" {
		set["chargeTo"] = input.ChargeTo
	}

	if input.AssignedTo != "" {
		assigneeID, err := primitive.ObjectIDFromHex(input.AssignedTo)
		if err != nil {
			return zero, common.ErrInvalidId
		}
		displayName, err := s.identitySvc.ResolveDisplayName(ctx, assigneeID)
		if err != nil {
			return zero, fmt.Errorf("không tìm thấy người được phân công: %w", err)
		}
		set["assignedTo"] = displayName
		set["dateAssigned"] = time.Now().UnixMilli()
	}

	if len(set) == 0 {
		return zero, common.NewError(common.ErrCodeValidationInput, "Không có field nào để cập nhật", common.StatusBadRequest, nil)
	}

	return s.transition(ctx, id, set)
}

// SubmitFeedback ghi phản hồi của người yêu cầu. Chỉ chấp nhận khi người
// gọi là chủ phiếu, phiếu đã ở trạng thái kết thúc và chưa có phản hồi
// trước đó.
func (s *JobOrderService) SubmitFeedback(ctx context.Context, id primitive.ObjectID, callerID primitive.ObjectID, feedback string) (jomodels.JobOrder, error) {
	var zero jomodels.JobOrder
	if feedback == "" {
		return zero, common.NewError(common.ErrCodeValidationInput, "Nội dung phản hồi không được rỗng", common.StatusBadRequest, nil)
	}

	jobOrder, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if jobOrder.UserID != callerID {
		return zero, common.ErrForbidden
	}
	if !jomodels.IsTerminal(jobOrder.Status) {
		return zero, common.NewError(common.ErrCodeBusinessState, "Chỉ phản hồi được khi phiếu đã kết thúc", common.StatusBadRequest, nil)
	}
	if jobOrder.FeedbackSubmitted {
		return zero, common.NewError(common.ErrCodeBusinessState, "Phiếu đã có phản hồi", common.StatusBadRequest, nil)
	}

	return s.transition(ctx, id, map[string]interface{}{
		"feedback":          feedback,
		"feedbackSubmitted": true,
	})
}

// transition cập nhật phiếu nguyên tử và gửi thông báo đổi trạng thái.
func (s *JobOrderService) transition(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (jomodels.JobOrder, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id}, &basesvc.UpdateData{Set: set}, opts)
	if err != nil {
		return updated, err
	}

	if newStatus, ok := set["status"].(string); ok {
		logger.GetAuditLogger().WithFields(map[string]interface{}{
			"jobOrderNumber": updated.JobOrderNumber,
			"status":         newStatus,
		}).Info("Phiếu yêu cầu đổi trạng thái")
		s.notifyStatusChanged(ctx, &updated, newStatus)
	}

	return updated, nil
}

// notifyStatusChanged gửi email cho người yêu cầu, best-effort.
func (s *JobOrderService) notifyStatusChanged(ctx context.Context, jobOrder *jomodels.JobOrder, status string) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return
	}

	identity, err := s.identitySvc.FindOneById(ctx, jobOrder.UserID)
	if err != nil {
		logger.GetErrorLogger().WithField("userId", jobOrder.UserID.Hex()).
			Warn("Không tìm thấy người yêu cầu để gửi thông báo")
		return
	}

	s.mailer.SendStatusChanged(identity.Email, jobOrder.JobOrderNumber, status, jobOrder.RejectionReason)
}
