package router

import (
	"github.com/gofiber/fiber/v3"

	authsvc "facility_works/internal/api/auth/service"
	"facility_works/internal/api/middleware"
	apirouter "facility_works/internal/api/router"
	uploadhdl "facility_works/internal/api/upload/handler"
	uploadsvc "facility_works/internal/api/upload/service"
	"facility_works/internal/global"
	"facility_works/internal/logger"
)

// Register gắn route upload vào group /api/v1.
// Nếu object storage chưa được cấu hình thì bỏ qua route này.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	cfg := global.MongoDB_ServerConfig
	if cfg.Minio_Endpoint == "" {
		logger.GetAppLogger().Warn("Object storage chưa cấu hình, route upload bị tắt")
		return nil
	}

	identitySvc, err := authsvc.NewIdentityService()
	if err != nil {
		return err
	}
	storageSvc, err := uploadsvc.NewStorageService(cfg)
	if err != nil {
		return err
	}
	h := uploadhdl.NewUploadHandler(storageSvc)

	authRequired := []fiber.Handler{middleware.AuthMiddleware(identitySvc)}

	return apirouter.RegisterRouteWithMiddleware(v1, "POST", "/uploads", authRequired, h.HandleUpload)
}
