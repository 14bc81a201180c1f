package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "facility_works/internal/api/auth/models"
	basesvc "facility_works/internal/api/base/service"
	"facility_works/internal/common"
	"facility_works/internal/global"
)

// IdentityClaims là claims trong JWT của hệ thống.
type IdentityClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IdentityService quản lý tài khoản người dùng và xác thực token.
type IdentityService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.Identity]
	jwtSecret []byte
}

// NewIdentityService tạo service quản lý tài khoản.
func NewIdentityService() (*IdentityService, error) {
	colName := global.MongoDB_ColNames.Identities
	collection, ok := global.RegistryCollections.Get(colName)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", colName, common.ErrNotFound)
	}

	return &IdentityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.Identity](collection),
		jwtSecret:            []byte(global.MongoDB_ServerConfig.JwtSecret),
	}, nil
}

// ParseToken xác thực chữ ký JWT và trả về claims.
func (s *IdentityService) ParseToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// FindByEmail tìm tài khoản theo email.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (authmodels.Identity, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}

// ResolveDisplayName tra cứu tên hiển thị của người dùng theo id.
// Trả về ErrNotFound nếu tài khoản không tồn tại.
func (s *IdentityService) ResolveDisplayName(ctx context.Context, id primitive.ObjectID) (string, error) {
	identity, err := s.FindOneById(ctx, id)
	if err != nil {
		return "", err
	}
	return identity.DisplayName(), nil
}
