package main

import (
	"reflect"

	"facility_works/internal/global"
	"facility_works/internal/logger"
)

// InitRegistry đăng ký toàn bộ collection vào registry dùng chung.
// Các service lấy collection qua registry thay vì giữ session trực tiếp.
func InitRegistry() error {
	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)

	v := reflect.ValueOf(global.MongoDB_ColNames)
	for i := 0; i < v.NumField(); i++ {
		colName, ok := v.Field(i).Interface().(string)
		if !ok || colName == "" {
			continue
		}

		isNew, err := global.RegistryCollections.Register(colName, db.Collection(colName))
		if err != nil {
			return err
		}

		logger.GetAppLogger().WithFields(map[string]interface{}{
			"collection": colName,
			"isNew":      isNew,
		}).Debug("Đăng ký collection vào registry")
	}

	return nil
}
