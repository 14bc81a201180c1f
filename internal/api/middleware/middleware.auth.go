package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	authmodels "facility_works/internal/api/auth/models"
	authsvc "facility_works/internal/api/auth/service"
	basehdl "facility_works/internal/api/base/handler"
	"facility_works/internal/common"
	"facility_works/internal/utility"
)

// identityCache giảm số truy vấn tra danh tính khi cùng một người dùng
// gọi nhiều request liên tiếp. Toàn bộ cache được làm mới sau mỗi 5 phút
// nên thay đổi vai trò có hiệu lực chậm nhất sau chu kỳ đó.
var identityCache = utility.NewCache(5 * time.Minute)

// AuthMiddleware xác thực JWT và kiểm tra vai trò. Nếu roles rỗng thì chỉ
// cần đăng nhập hợp lệ. Danh tính được gắn vào context qua c.Locals.
func AuthMiddleware(identitySvc *authsvc.IdentityService, roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorizedResponse(c, common.MsgTokenMissing)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return unauthorizedResponse(c, common.MsgTokenInvalid)
		}

		claims, err := identitySvc.ParseToken(tokenString)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		identity, err := lookupIdentity(c, identitySvc, claims.UserID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrUserNotFound)
		}

		if len(roles) > 0 && !hasRole(identity.Role, roles) {
			return basehdl.HandleResponse(c, nil, common.ErrForbidden)
		}

		c.Locals("user_id", identity.ID.Hex())
		c.Locals("role", identity.Role)
		c.Locals("position", identity.Position)
		c.Locals("display_name", identity.DisplayName())

		return c.Next()
	}
}

// lookupIdentity tra danh tính, ưu tiên cache để mỗi người dùng chỉ tốn
// một truy vấn trong mỗi chu kỳ cache.
func lookupIdentity(c fiber.Ctx, identitySvc *authsvc.IdentityService, userID string) (authmodels.Identity, error) {
	if cached, ok := identityCache.Get(userID); ok {
		if identity, ok := cached.(authmodels.Identity); ok {
			return identity, nil
		}
	}

	objectID := utility.String2ObjectID(userID)
	if objectID.IsZero() {
		return authmodels.Identity{}, common.ErrInvalidId
	}

	identity, err := identitySvc.FindOneById(c.Context(), objectID)
	if err != nil {
		return authmodels.Identity{}, err
	}

	identityCache.Set(userID, identity)
	return identity, nil
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func unauthorizedResponse(c fiber.Ctx, message string) error {
	return basehdl.JSONResponse(c, common.StatusUnauthorized, fiber.Map{
		"code":    common.ErrCodeAuthToken.Code,
		"message": message,
		"status":  "error",
	})
}
