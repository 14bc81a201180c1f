package router

import (
	"github.com/gofiber/fiber/v3"

	authmodels "facility_works/internal/api/auth/models"
	authsvc "facility_works/internal/api/auth/service"
	johdl "facility_works/internal/api/joborder/handler"
	josvc "facility_works/internal/api/joborder/service"
	"facility_works/internal/api/middleware"
	"facility_works/internal/api/notification"
	apirouter "facility_works/internal/api/router"
	"facility_works/internal/global"
)

// Register gắn các route phiếu yêu cầu vào group /api/v1.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	identitySvc, err := authsvc.NewIdentityService()
	if err != nil {
		return err
	}
	sequenceSvc, err := josvc.NewSequenceService()
	if err != nil {
		return err
	}
	mailer := notification.NewMailer(global.MongoDB_ServerConfig)
	jobOrderSvc, err := josvc.NewJobOrderService(sequenceSvc, identitySvc, mailer)
	if err != nil {
		return err
	}
	h := johdl.NewJobOrderHandler(jobOrderSvc)

	authRequired := []fiber.Handler{middleware.AuthMiddleware(identitySvc)}
	adminOnly := []fiber.Handler{middleware.AuthMiddleware(identitySvc, authmodels.RoleAdmin, authmodels.RoleSuperAdmin)}

	// Fiber khớp route theo thứ tự đăng ký nên các path tĩnh dưới
	// /jobOrders phải đứng trước /jobOrders/:id.
	routes := []struct {
		method      string
		path        string
		middlewares []fiber.Handler
		handler     fiber.Handler
	}{
		{"POST", "/jobOrders", authRequired, h.HandleCreate},
		{"GET", "/jobOrders", authRequired, h.HandleList},
		{"GET", "/jobOrders/byDate", adminOnly, h.HandleReportByDate},
		{"GET", "/jobOrders/byDepartment", adminOnly, h.HandleReportByOffice},
		{"GET", "/jobOrders/:id", authRequired, h.HandleGetById},
		{"PATCH", "/jobOrders/:id/update", adminOnly, h.HandleUpdate},
		{"PATCH", "/jobOrders/:id/approve", adminOnly, h.HandleApprove},
		{"PATCH", "/jobOrders/:id/reject", adminOnly, h.HandleReject},
		{"PATCH", "/jobOrders/:id/complete", adminOnly, h.HandleComplete},
		{"DELETE", "/jobOrders/:id", adminOnly, h.HandleArchive},
		{"PATCH", "/jobOrders/:id/tracking", adminOnly, h.HandleSetTracking},
		{"GET", "/jobOrders/:id/tracking", authRequired, h.HandleGetTracking},
		{"PUT", "/jobOrders/:id/feedback", authRequired, h.HandleSubmitFeedback},
	}

	for _, route := range routes {
		if err := apirouter.RegisterRouteWithMiddleware(v1, route.method, route.path, route.middlewares, route.handler); err != nil {
			return err
		}
	}
	return nil
}
