package handler

import (
	"github.com/gofiber/fiber/v3"

	authsvc "facility_works/internal/api/auth/service"
	basehdl "facility_works/internal/api/base/handler"
	"facility_works/internal/common"
	"facility_works/internal/utility"
)

// IdentityHandler xử lý các request về tài khoản người dùng.
type IdentityHandler struct {
	IdentityService *authsvc.IdentityService
}

// NewIdentityHandler tạo handler tài khoản.
func NewIdentityHandler(identitySvc *authsvc.IdentityService) *IdentityHandler {
	return &IdentityHandler{IdentityService: identitySvc}
}

// HandleGetMe trả về thông tin tài khoản đang đăng nhập.
func (h *IdentityHandler) HandleGetMe(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		objectID := utility.String2ObjectID(userID)
		if objectID.IsZero() {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidId)
		}

		identity, err := h.IdentityService.FindOneById(c.Context(), objectID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		return basehdl.HandleResponse(c, fiber.Map{
			"id":          identity.ID.Hex(),
			"email":       identity.Email,
			"firstName":   identity.FirstName,
			"lastName":    identity.LastName,
			"displayName": identity.DisplayName(),
			"role":        identity.Role,
			"position":    identity.Position,
			"reqOffice":   identity.ReqOffice,
			"campus":      identity.Campus,
		}, nil)
	})
}
