package router

import (
	"github.com/gofiber/fiber/v3"

	authsvc "facility_works/internal/api/auth/service"
	"facility_works/internal/api/middleware"
	orghdl "facility_works/internal/api/org/handler"
	orgsvc "facility_works/internal/api/org/service"
	apirouter "facility_works/internal/api/router"
)

// Register gắn các route cây tổ chức vào group /api/v1.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	identitySvc, err := authsvc.NewIdentityService()
	if err != nil {
		return err
	}
	campusSvc, err := orgsvc.NewCampusService()
	if err != nil {
		return err
	}
	h := orghdl.NewCampusHandler(campusSvc)

	authRequired := []fiber.Handler{middleware.AuthMiddleware(identitySvc)}

	return apirouter.RegisterRouteWithMiddleware(v1, "GET", "/campuses", authRequired, h.HandleListCampuses)
}
