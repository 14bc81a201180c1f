package handler

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "facility_works/internal/api/auth/models"
	basehdl "facility_works/internal/api/base/handler"
	"facility_works/internal/api/joborder/dto"
	jomodels "facility_works/internal/api/joborder/models"
	josvc "facility_works/internal/api/joborder/service"
	"facility_works/internal/common"
)

// JobOrderHandler xử lý các request về phiếu yêu cầu bảo trì.
type JobOrderHandler struct {
	JobOrderService *josvc.JobOrderService
}

// NewJobOrderHandler tạo handler phiếu yêu cầu.
func NewJobOrderHandler(jobOrderSvc *josvc.JobOrderService) *JobOrderHandler {
	return &JobOrderHandler{JobOrderService: jobOrderSvc}
}

// parseIdParam đọc và kiểm tra param :id, trả về ErrInvalidId nếu sai định dạng.
func parseIdParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidId
	}
	return id, nil
}

// callerIdentity đọc danh tính do AuthMiddleware gắn vào context.
func callerIdentity(c fiber.Ctx) (userID string, role string) {
	userID, _ = c.Locals("user_id").(string)
	role, _ = c.Locals("role").(string)
	return userID, role
}

// HandleCreate tạo phiếu yêu cầu mới cho người đang đăng nhập.
func (h *JobOrderHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input dto.CreateJobOrderInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		callerID, _ := callerIdentity(c)
		userID, err := primitive.ObjectIDFromHex(callerID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidId)
		}

		jobOrder, err := h.JobOrderService.Create(c.Context(), &input, userID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.JSONResponse(c, common.StatusCreated, fiber.Map{
			"code":    common.StatusCreated,
			"message": common.MsgCreated,
			"data":    jobOrder,
			"status":  "success",
		})
	})
}

// HandleList trả về danh sách phiếu theo filter và phân trang.
// Phạm vi dữ liệu phụ thuộc vai trò người gọi.
func (h *JobOrderHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query dto.ListJobOrdersQuery
		if err := c.Bind().Query(&query); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		callerID, role := callerIdentity(c)
		result, err := h.JobOrderService.List(c.Context(), &query, callerID, role)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleGetById trả về một phiếu theo id.
func (h *JobOrderHandler) HandleGetById(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		jobOrder, err := h.JobOrderService.GetById(c.Context(), id)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		// User thường chỉ xem được phiếu của chính mình, trả về 404 để
		// không lộ sự tồn tại của phiếu người khác
		callerID, role := callerIdentity(c)
		if role == authmodels.RoleUser && jobOrder.UserID.Hex() != callerID {
			return basehdl.HandleResponse(c, nil, common.ErrNotFound)
		}

		return basehdl.HandleResponse(c, jobOrder, nil)
	})
}

// HandleApprove duyệt phiếu, chuyển trạng thái sang ongoing.
func (h *JobOrderHandler) HandleApprove(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		jobOrder, err := h.JobOrderService.Approve(c.Context(), id)
		return basehdl.HandleResponse(c, jobOrder, err)
	})
}

// HandleReject từ chối phiếu với lý do bắt buộc.
func (h *JobOrderHandler) HandleReject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.RejectJobOrderInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		jobOrder, err := h.JobOrderService.Reject(c.Context(), id, input.Reason)
		return basehdl.HandleResponse(c, jobOrder, err)
	})
}

// HandleComplete đánh dấu phiếu hoàn thành.
func (h *JobOrderHandler) HandleComplete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		jobOrder, err := h.JobOrderService.Complete(c.Context(), id)
		return basehdl.HandleResponse(c, jobOrder, err)
	})
}

// HandleArchive lưu trữ phiếu, cùng chính sách với từ chối.
func (h *JobOrderHandler) HandleArchive(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.RejectJobOrderInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		jobOrder, err := h.JobOrderService.Archive(c.Context(), id, input.Reason)
		return basehdl.HandleResponse(c, jobOrder, err)
	})
}

// HandleUpdate cập nhật thưa các field xử lý của phiếu.
func (h *JobOrderHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.UpdateJobOrderInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		jobOrder, err := h.JobOrderService.Update(c.Context(), id, &input)
		return basehdl.HandleResponse(c, jobOrder, err)
	})
}

// HandleSetTracking thay thế toàn bộ mảng tiến độ của phiếu.
func (h *JobOrderHandler) HandleSetTracking(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.SetTrackingInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		jobOrder, err := h.JobOrderService.SetTracking(c.Context(), id, input.Tracking)
		return basehdl.HandleResponse(c, jobOrder, err)
	})
}

// HandleGetTracking trả về mảng tiến độ của phiếu.
func (h *JobOrderHandler) HandleGetTracking(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		jobOrder, err := h.JobOrderService.GetById(c.Context(), id)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		callerID, role := callerIdentity(c)
		if role == authmodels.RoleUser && jobOrder.UserID.Hex() != callerID {
			return basehdl.HandleResponse(c, nil, common.ErrNotFound)
		}

		tracking := jobOrder.Tracking
		if tracking == nil {
			tracking = []jomodels.TrackingEntry{}
		}
		return basehdl.HandleResponse(c, fiber.Map{"tracking": tracking}, nil)
	})
}

// HandleSubmitFeedback ghi phản hồi của người yêu cầu sau khi phiếu kết thúc.
func (h *JobOrderHandler) HandleSubmitFeedback(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIdParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.FeedbackInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		callerID, _ := callerIdentity(c)
		userID, err := primitive.ObjectIDFromHex(callerID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidId)
		}

		jobOrder, err := h.JobOrderService.SubmitFeedback(c.Context(), id, userID, input.Feedback)
		return basehdl.HandleResponse(c, jobOrder, err)
	})
}

// HandleReportByDate gom số phiếu theo ngày tạo trong khoảng
// [startDate, endDate], mỗi đầu là một mốc ngày/tháng/năm.
func (h *JobOrderHandler) HandleReportByDate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		startDate := c.Query("startDate")
		endDate := c.Query("endDate")
		if startDate == "" || endDate == "" {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "Thiếu tham số startDate hoặc endDate", common.StatusBadRequest, nil))
		}

		from, to, err := josvc.ParseDateBounds(startDate, endDate, "")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		results, err := h.JobOrderService.CountByDate(c.Context(), from, to)
		return basehdl.HandleResponse(c, results, err)
	})
}

// HandleReportByOffice gom số phiếu theo phòng ban yêu cầu.
func (h *JobOrderHandler) HandleReportByOffice(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		results, err := h.JobOrderService.CountByOffice(c.Context())
		return basehdl.HandleResponse(c, results, err)
	})
}
