package main

import (
	"context"
	"fmt"
	"time"

	"facility_works/config"
	authmodels "facility_works/internal/api/auth/models"
	jomodels "facility_works/internal/api/joborder/models"
	orgmodels "facility_works/internal/api/org/models"
	"facility_works/internal/database"
	"facility_works/internal/global"
	"facility_works/internal/logger"
)

// initColNames gán tên các collection của hệ thống.
func initColNames() {
	global.MongoDB_ColNames.JobOrders = "jo_job_orders"
	global.MongoDB_ColNames.JobOrderCounters = "jo_counters"
	global.MongoDB_ColNames.Recommendations = "jo_recommendations"
	global.MongoDB_ColNames.Identities = "auth_identities"
	global.MongoDB_ColNames.Campuses = "org_campuses"
}

// initConfig đọc cấu hình server từ biến môi trường.
func initConfig() error {
	cfg := config.NewConfig()
	if cfg == nil {
		return fmt.Errorf("không đọc được cấu hình server")
	}
	global.MongoDB_ServerConfig = cfg
	return nil
}

// initValidator khởi tạo validator dùng chung.
func initValidator() error {
	return global.InitValidator()
}

// initDatabase_MongoDB kết nối MongoDB, đảm bảo collection và index.
func initDatabase_MongoDB() error {
	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		return err
	}
	global.MongoDB_Session = client

	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	if err := database.EnsureDatabaseAndCollections(client, dbName, &global.MongoDB_ColNames); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)
	indexTargets := []struct {
		colName string
		model   interface{}
	}{
		{global.MongoDB_ColNames.JobOrders, jomodels.JobOrder{}},
		{global.MongoDB_ColNames.JobOrderCounters, jomodels.JobOrderCounter{}},
		{global.MongoDB_ColNames.Identities, authmodels.Identity{}},
		{global.MongoDB_ColNames.Campuses, orgmodels.Campus{}},
	}
	for _, target := range indexTargets {
		if err := database.CreateIndexes(ctx, db.Collection(target.colName), target.model); err != nil {
			return err
		}
	}

	logger.GetAppLogger().WithField("database", dbName).Info("Khởi tạo MongoDB hoàn tất")
	return nil
}

// InitGlobal khởi tạo toàn bộ tài nguyên dùng chung theo thứ tự phụ thuộc.
func InitGlobal() error {
	initColNames()

	if err := initConfig(); err != nil {
		return err
	}
	if err := initValidator(); err != nil {
		return err
	}
	if err := initDatabase_MongoDB(); err != nil {
		return err
	}

	return nil
}
