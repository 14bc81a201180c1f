package main

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	authmodels "facility_works/internal/api/auth/models"
	basesvc "facility_works/internal/api/base/service"
	orgmodels "facility_works/internal/api/org/models"
	"facility_works/internal/common"
	"facility_works/internal/global"
	"facility_works/internal/logger"
)

// InitDefaultData seed dữ liệu khởi đầu khi chạy với INITMODE=true:
// một tài khoản superAdmin và cây tổ chức mẫu. Dữ liệu đã tồn tại thì
// giữ nguyên.
func InitDefaultData() error {
	if !global.MongoDB_ServerConfig.InitMode {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seedSuperAdmin(ctx); err != nil {
		return err
	}
	return seedCampuses(ctx)
}

func seedSuperAdmin(ctx context.Context) error {
	collection, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.Identities)
	if !ok {
		return common.ErrNotFound
	}
	identities := basesvc.NewBaseServiceMongo[authmodels.Identity](collection)

	const adminEmail = "admin@facility.local"
	_, err := identities.FindOne(ctx, bson.M{"email": adminEmail}, nil)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	_, err = identities.InsertOne(ctx, authmodels.Identity{
		Email:     adminEmail,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      authmodels.RoleSuperAdmin,
		Position:  "Administrator",
	})
	if err != nil {
		return err
	}

	logger.GetAppLogger().WithField("email", adminEmail).Info("Seed tài khoản superAdmin")
	return nil
}

func seedCampuses(ctx context.Context) error {
	collection, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.Campuses)
	if !ok {
		return common.ErrNotFound
	}
	campuses := basesvc.NewBaseServiceMongo[orgmodels.Campus](collection)

	total, err := campuses.CountDocuments(ctx, nil)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	_, err = campuses.InsertOne(ctx, orgmodels.Campus{
		Name: "Main Campus",
		Buildings: []orgmodels.Building{
			{
				Name: "Administration Building",
				Floors: []orgmodels.Floor{
					{
						Name: "Ground Floor",
						Offices: []orgmodels.Office{
							{Name: "Office of the Registrar"},
							{Name: "Accounting Office"},
						},
					},
					{
						Name: "Second Floor",
						Offices: []orgmodels.Office{
							{Name: "Human Resources Office"},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return err
	}

	logger.GetAppLogger().Info("Seed cây tổ chức mẫu")
	return nil
}
