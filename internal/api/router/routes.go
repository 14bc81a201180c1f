package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// RoutePrefix chứa các prefix chuẩn của API.
type RoutePrefix struct {
	Base string
	V1   string
}

// NewRoutePrefix trả về prefix mặc định.
func NewRoutePrefix() RoutePrefix {
	return RoutePrefix{
		Base: "/api",
		V1:   "/api/v1",
	}
}

// Router giữ app Fiber và prefix để các domain tự đăng ký route.
type Router struct {
	App    *fiber.App
	Prefix RoutePrefix
}

// NewRouter tạo router với prefix mặc định.
func NewRouter(app *fiber.App) *Router {
	return &Router{
		App:    app,
		Prefix: NewRoutePrefix(),
	}
}

// RegisterRouteWithMiddleware đăng ký một route kèm danh sách middleware.
func RegisterRouteWithMiddleware(router fiber.Router, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) error {
	group := router.Group(path)
	for _, mw := range middlewares {
		group.Use(mw)
	}

	switch method {
	case "GET":
		group.Get("", handler)
	case "POST":
		group.Post("", handler)
	case "PUT":
		group.Put("", handler)
	case "PATCH":
		group.Patch("", handler)
	case "DELETE":
		group.Delete("", handler)
	default:
		return fmt.Errorf("phương thức HTTP không được hỗ trợ: %s", method)
	}

	return nil
}

// RegisterFunc là hàm đăng ký route của một domain.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes gắn toàn bộ route của các domain vào app dưới prefix /api/v1.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	r := NewRouter(app)
	v1 := app.Group(r.Prefix.V1)

	for _, register := range regs {
		if err := register(v1, r); err != nil {
			return err
		}
	}

	// Health check nằm ngoài prefix API
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return nil
}
