package router

import (
	"github.com/gofiber/fiber/v3"

	authhdl "facility_works/internal/api/auth/handler"
	authsvc "facility_works/internal/api/auth/service"
	"facility_works/internal/api/middleware"
	apirouter "facility_works/internal/api/router"
)

// Register gắn các route tài khoản vào group /api/v1.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	identitySvc, err := authsvc.NewIdentityService()
	if err != nil {
		return err
	}
	h := authhdl.NewIdentityHandler(identitySvc)

	authRequired := []fiber.Handler{middleware.AuthMiddleware(identitySvc)}

	return apirouter.RegisterRouteWithMiddleware(v1, "GET", "/auth/me", authRequired, h.HandleGetMe)
}
