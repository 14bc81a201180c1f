package handler

import (
	"github.com/gofiber/fiber/v3"

	basehdl "facility_works/internal/api/base/handler"
	orgsvc "facility_works/internal/api/org/service"
)

// CampusHandler xử lý các request về cây tổ chức.
type CampusHandler struct {
	CampusService *orgsvc.CampusService
}

// NewCampusHandler tạo handler cây tổ chức.
func NewCampusHandler(campusSvc *orgsvc.CampusService) *CampusHandler {
	return &CampusHandler{CampusService: campusSvc}
}

// HandleListCampuses trả về toàn bộ cây campus - tòa nhà - tầng - phòng ban,
// dùng cho form chọn vị trí khi tạo phiếu yêu cầu.
func (h *CampusHandler) HandleListCampuses(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		campuses, err := h.CampusService.ListCampuses(c.Context())
		return basehdl.HandleResponse(c, campuses, err)
	})
}
