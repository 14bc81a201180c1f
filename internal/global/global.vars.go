package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"facility_works/config"
	"facility_works/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong database.
// Mỗi field tương ứng một collection, được đăng ký vào RegistryCollections
// khi khởi động server.
type MongoDB_CollectionName struct {
	JobOrders        string // Phiếu yêu cầu bảo trì
	JobOrderCounters string // Bộ đếm cấp số phiếu theo ngày
	Recommendations  string // Khuyến nghị bảo trì định kỳ
	Identities       string // Tài khoản người dùng hệ thống
	Campuses         string // Cây tổ chức campus - tòa nhà - tầng - phòng ban
}

var (
	// Validate là validator dùng chung toàn hệ thống
	Validate *validator.Validate

	// MongoDB_Session là kết nối MongoDB dùng chung
	MongoDB_Session *mongo.Client

	// MongoDB_ServerConfig là cấu hình server đọc từ biến môi trường
	MongoDB_ServerConfig *config.Configuration

	// MongoDB_ColNames chứa tên các collection
	MongoDB_ColNames MongoDB_CollectionName

	// RegistryCollections đăng ký các collection đã khởi tạo
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()
)
