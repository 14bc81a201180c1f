package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò trong hệ thống
const (
	RoleUser       = "user"       // Người gửi yêu cầu bảo trì
	RoleAdmin      = "admin"      // Người tiếp nhận và phân công
	RoleSuperAdmin = "superAdmin" // Quản trị toàn hệ thống
)

// Identity là tài khoản người dùng hệ thống. Vai trò được gắn trực tiếp
// trên tài khoản, mọi tra cứu danh tính chỉ cần một truy vấn.
type Identity struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	FirstName    string             `json:"firstName" bson:"firstName"`
	LastName     string             `json:"lastName" bson:"lastName" index:"single"`
	Role         string             `json:"role" bson:"role" index:"single"`
	Position     string             `json:"position" bson:"position"`
	ReqOffice    string             `json:"reqOffice" bson:"reqOffice"`
	Campus       string             `json:"campus" bson:"campus"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// DisplayName trả về tên hiển thị của người dùng.
func (u *Identity) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
