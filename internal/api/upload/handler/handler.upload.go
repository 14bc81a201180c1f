package handler

import (
	"github.com/gofiber/fiber/v3"

	basehdl "facility_works/internal/api/base/handler"
	uploadsvc "facility_works/internal/api/upload/service"
	"facility_works/internal/common"
)

// UploadHandler xử lý upload file đính kèm.
type UploadHandler struct {
	StorageService *uploadsvc.StorageService
}

// NewUploadHandler tạo handler upload.
func NewUploadHandler(storageSvc *uploadsvc.StorageService) *UploadHandler {
	return &UploadHandler{StorageService: storageSvc}
}

// HandleUpload nhận file từ form field "file" và trả về fileUrl.
func (h *UploadHandler) HandleUpload(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "Thiếu file trong form field \"file\"", common.StatusBadRequest, nil))
		}

		fileUrl, err := h.StorageService.UploadFile(c.Context(), fileHeader)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		return basehdl.HandleResponse(c, fiber.Map{"fileUrl": fileUrl}, nil)
	})
}
