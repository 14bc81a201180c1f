package router

import (
	"github.com/gofiber/fiber/v3"

	analyticshdl "facility_works/internal/api/analytics/handler"
	analyticssvc "facility_works/internal/api/analytics/service"
	authmodels "facility_works/internal/api/auth/models"
	authsvc "facility_works/internal/api/auth/service"
	"facility_works/internal/api/middleware"
	orgsvc "facility_works/internal/api/org/service"
	apirouter "facility_works/internal/api/router"
)

// Register gắn các route phân tích vào group /api/v1.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	identitySvc, err := authsvc.NewIdentityService()
	if err != nil {
		return err
	}
	analyticsSvc, err := analyticssvc.NewAnalyticsService()
	if err != nil {
		return err
	}
	campusSvc, err := orgsvc.NewCampusService()
	if err != nil {
		return err
	}
	h := analyticshdl.NewAnalyticsHandler(analyticsSvc, campusSvc)

	adminOnly := []fiber.Handler{middleware.AuthMiddleware(identitySvc, authmodels.RoleAdmin, authmodels.RoleSuperAdmin)}

	// Route thống kê học kỳ nằm dưới /jobOrders nên module này phải
	// đăng ký trước module phiếu để không bị /jobOrders/:id nuốt.
	routes := []struct {
		method  string
		path    string
		handler fiber.Handler
	}{
		{"GET", "/jobOrders/ByDepartmentAndSemester", h.HandleSemesterByOffice},
		{"GET", "/analytics/analyzeJobOrders", h.HandleAnalyzeJobOrders},
		{"GET", "/analytics/maintenanceFlags", h.HandleMaintenanceFlags},
		{"PATCH", "/analytics/recommendations/:id/resolve", h.HandleResolveRecommendation},
	}

	for _, route := range routes {
		if err := apirouter.RegisterRouteWithMiddleware(v1, route.method, route.path, adminOnly, route.handler); err != nil {
			return err
		}
	}
	return nil
}
