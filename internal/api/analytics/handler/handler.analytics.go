package handler

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	analyticssvc "facility_works/internal/api/analytics/service"
	basehdl "facility_works/internal/api/base/handler"
	orgsvc "facility_works/internal/api/org/service"
	"facility_works/internal/common"
	"facility_works/internal/logger"
)

// AnalyticsHandler xử lý các request phân tích dữ liệu phiếu.
type AnalyticsHandler struct {
	AnalyticsService *analyticssvc.AnalyticsService
	CampusService    *orgsvc.CampusService
}

// NewAnalyticsHandler tạo handler phân tích.
func NewAnalyticsHandler(analyticsSvc *analyticssvc.AnalyticsService, campusSvc *orgsvc.CampusService) *AnalyticsHandler {
	return &AnalyticsHandler{
		AnalyticsService: analyticsSvc,
		CampusService:    campusSvc,
	}
}

// HandleAnalyzeJobOrders chạy trọn bộ phân tích: sự cố tái diễn và thống
// kê theo học kỳ. Bất kỳ bước nào lỗi thì toàn bộ kết quả bị hủy, client
// nhận 500 với thông báo chung, chi tiết chỉ ghi vào log server.
func (h *AnalyticsHandler) HandleAnalyzeJobOrders(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		recurrences, err := h.AnalyticsService.AnalyzeRecurrences(c.Context())
		if err != nil {
			return h.analysisFailed(c, "recurrence", err)
		}

		semesterBreakdown, err := h.AnalyticsService.AnalyzeBySemester(c.Context())
		if err != nil {
			return h.analysisFailed(c, "semester", err)
		}

		return basehdl.HandleResponse(c, fiber.Map{
			"recommendations":   recurrences,
			"semesterBreakdown": semesterBreakdown,
		}, nil)
	})
}

// HandleSemesterByOffice trả về thống kê số phiếu theo học kỳ của từng
// phòng ban.
func (h *AnalyticsHandler) HandleSemesterByOffice(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		breakdown, err := h.AnalyticsService.AnalyzeBySemester(c.Context())
		if err != nil {
			return h.analysisFailed(c, "semesterByOffice", err)
		}
		return basehdl.HandleResponse(c, breakdown, nil)
	})
}

// HandleResolveRecommendation đánh dấu một khuyến nghị đã được xử lý.
func (h *AnalyticsHandler) HandleResolveRecommendation(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidId)
		}

		recommendation, err := h.AnalyticsService.ResolveRecommendation(c.Context(), id)
		return basehdl.HandleResponse(c, recommendation, err)
	})
}

// HandleMaintenanceFlags trả về cảnh báo sự cố dồn dập theo phòng ban.
func (h *AnalyticsHandler) HandleMaintenanceFlags(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		flags, err := h.AnalyticsService.AnalyzeMaintenanceFlags(c.Context(), h.CampusService)
		if err != nil {
			return h.analysisFailed(c, "maintenanceFlags", err)
		}
		return basehdl.HandleResponse(c, fiber.Map{"flags": flags}, nil)
	})
}

// analysisFailed ghi log chi tiết phía server và trả về 500 chung.
func (h *AnalyticsHandler) analysisFailed(c fiber.Ctx, step string, err error) error {
	logger.WithRequest(c).WithFields(map[string]interface{}{
		"step":  step,
		"error": err.Error(),
	}).Error("Phân tích dữ liệu phiếu thất bại")

	return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	})
}
