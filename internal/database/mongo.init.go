package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureDatabaseAndCollections đảm bảo các collection khai báo trong struct
// colNames đã tồn tại trong database, tạo mới nếu thiếu.
func EnsureDatabaseAndCollections(client *mongo.Client, dbName string, colNames interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)

	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("không thể liệt kê collection: %w", err)
	}
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	v := reflect.ValueOf(colNames)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		name, ok := v.Field(i).Interface().(string)
		if !ok || name == "" {
			continue
		}
		if existingSet[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("không thể tạo collection %s: %w", name, err)
		}
	}

	return nil
}

// indexField mô tả một field tham gia index, parse từ struct tag `index`.
type indexField struct {
	name      string // Tên field trong MongoDB (theo bson tag)
	indexType string
	order     int
	sparse    bool
	ttl       int32
	group     string
	unique    bool
}

// CreateIndexes tạo index cho collection theo struct tag `index` của model.
//
// Các cấu hình hỗ trợ:
//
//	index:"text"                 - text index
//	index:"single"               - index đơn, thêm order:-1 để đảo chiều
//	index:"unique"               - unique index, thêm sparse nếu cần
//	index:"ttl:3600"             - TTL index theo giây
//	index:"compound:groupName"   - compound index theo nhóm, hậu tố _unique để unique
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var singles []indexField
	compounds := make(map[string][]indexField)
	compoundOrder := []string{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		indexTag := field.Tag.Get("index")
		if indexTag == "" {
			continue
		}

		bsonName := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonName == "" || bsonName == "-" {
			continue
		}

		for _, cfg := range strings.Split(indexTag, ";") {
			idx := parseIndexTag(bsonName, cfg)
			if idx.group != "" {
				if _, ok := compounds[idx.group]; !ok {
					compoundOrder = append(compoundOrder, idx.group)
				}
				compounds[idx.group] = append(compounds[idx.group], idx)
			} else {
				singles = append(singles, idx)
			}
		}
	}

	var models []mongo.IndexModel

	for _, idx := range singles {
		switch idx.indexType {
		case "text":
			models = append(models, mongo.IndexModel{
				Keys: bson.D{{Key: idx.name, Value: "text"}},
			})
		case "unique":
			opts := options.Index().SetUnique(true)
			if idx.sparse {
				opts.SetSparse(true)
			}
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: idx.name, Value: idx.order}},
				Options: opts,
			})
		case "ttl":
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: idx.name, Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(idx.ttl),
			})
		default:
			models = append(models, mongo.IndexModel{
				Keys: bson.D{{Key: idx.name, Value: idx.order}},
			})
		}
	}

	for _, group := range compoundOrder {
		fields := compounds[group]
		keys := bson.D{}
		unique := false
		for _, idx := range fields {
			keys = append(keys, bson.E{Key: idx.name, Value: idx.order})
			if idx.unique {
				unique = true
			}
		}
		opts := options.Index().SetName(group)
		if unique {
			opts.SetUnique(true)
		}
		models = append(models, mongo.IndexModel{Keys: keys, Options: opts})
	}

	if len(models) == 0 {
		return nil
	}

	if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("không thể tạo index cho collection %s: %w", collection.Name(), err)
	}
	return nil
}

// parseIndexTag đọc một cấu hình index (các thuộc tính cách nhau bởi dấu phẩy).
func parseIndexTag(bsonName, cfg string) indexField {
	idx := indexField{name: bsonName, indexType: "single", order: 1}

	for _, part := range strings.Split(cfg, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "text":
			idx.indexType = "text"
		case part == "single":
			idx.indexType = "single"
		case part == "unique":
			idx.indexType = "unique"
		case part == "sparse":
			idx.sparse = true
		case strings.HasPrefix(part, "ttl:"):
			idx.indexType = "ttl"
			if n, err := strconv.Atoi(strings.TrimPrefix(part, "ttl:")); err == nil {
				idx.ttl = int32(n)
			}
		case strings.HasPrefix(part, "compound:"):
			group := strings.TrimPrefix(part, "compound:")
			if strings.HasSuffix(group, "_unique") {
				idx.unique = true
			}
			idx.group = group
		case strings.HasPrefix(part, "order:"):
			if n, err := strconv.Atoi(strings.TrimPrefix(part, "order:")); err == nil {
				idx.order = n
			}
		}
	}

	return idx
}
