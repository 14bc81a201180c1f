package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "facility_works/internal/api/base/models"
	"facility_works/internal/common"
	"facility_works/internal/utility"
)

// UpdateData gom các operator cập nhật MongoDB thường dùng.
// Field nào nil sẽ không xuất hiện trong câu lệnh update.
type UpdateData struct {
	Set         map[string]interface{} `bson:"$set,omitempty"`
	SetOnInsert map[string]interface{} `bson:"$setOnInsert,omitempty"`
	Unset       map[string]interface{} `bson:"$unset,omitempty"`
	Push        map[string]interface{} `bson:"$push,omitempty"`
	AddToSet    map[string]interface{} `bson:"$addToSet,omitempty"`
	Inc         map[string]interface{} `bson:"$inc,omitempty"`
}

// ToUpdateData chuẩn hóa dữ liệu update về dạng có operator.
// Chấp nhận *UpdateData, map đã có operator ($...), hoặc map/struct
// thường (sẽ được bọc trong $set).
func ToUpdateData(data interface{}) (*UpdateData, error) {
	if data == nil {
		return nil, common.ErrInvalidInput
	}

	if ud, ok := data.(*UpdateData); ok {
		return ud, nil
	}

	m, ok := data.(map[string]interface{})
	if !ok {
		converted, err := utility.ToMap(data)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
		}
		m = converted
	}

	// Nếu map đã chứa operator thì map tương ứng vào UpdateData
	hasOperator := false
	for key := range m {
		if len(key) > 0 && key[0] == '$' {
			hasOperator = true
			break
		}
	}

	if !hasOperator {
		return &UpdateData{Set: m}, nil
	}

	ud := &UpdateData{}
	for key, value := range m {
		opMap, ok := value.(map[string]interface{})
		if !ok {
			return nil, common.ErrInvalidFormat
		}
		switch key {
		case "$set":
			ud.Set = opMap
		case "$setOnInsert":
			ud.SetOnInsert = opMap
		case "$unset":
			ud.Unset = opMap
		case "$push":
			ud.Push = opMap
		case "$addToSet":
			ud.AddToSet = opMap
		case "$inc":
			ud.Inc = opMap
		default:
			return nil, common.ErrInvalidFormat
		}
	}
	return ud, nil
}

// BaseServiceMongo định nghĩa các thao tác CRUD chung trên một collection.
type BaseServiceMongo[T any] interface {
	Collection() *mongo.Collection
	InsertOne(ctx context.Context, data T) (T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	UpdateOne(ctx context.Context, filter interface{}, data interface{}) (T, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, data interface{}, opts *options.FindOneAndUpdateOptions) (T, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)
	Upsert(ctx context.Context, filter interface{}, data interface{}) (T, error)
}

// BaseServiceMongoImpl là cài đặt chuẩn của BaseServiceMongo trên một collection.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo base service cho collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection mà service đang thao tác.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne thêm mới một document, tự gán createdAt/updatedAt theo UnixMilli
// và loại bỏ các field chuỗi rỗng để không đụng sparse unique index.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
	}

	for key, value := range dataMap {
		if str, ok := value.(string); ok && str == "" {
			delete(dataMap, key)
		}
	}

	now := time.Now().UnixMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now
	delete(dataMap, "_id")

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var inserted T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&inserted); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return inserted, nil
}

// FindOne tìm một document theo filter.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T

	if filter == nil {
		filter = bson.D{}
	}

	var result T
	err := s.collection.FindOne(ctx, filter, opts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm document theo ObjectID.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// FindManyByIds tìm nhiều document theo danh sách ObjectID.
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// Find tìm nhiều document theo filter.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// UpdateOne cập nhật một document theo filter, trả về bản ghi sau cập nhật.
// Trả về ErrNotFound nếu document không tồn tại.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, data interface{}) (T, error) {
	var zero T

	if _, err := s.FindOne(ctx, filter, nil); err != nil {
		return zero, err
	}

	ud, err := ToUpdateData(data)
	if err != nil {
		return zero, err
	}
	if ud.Set == nil {
		ud.Set = map[string]interface{}{}
	}
	ud.Set["updatedAt"] = time.Now().UnixMilli()

	if _, err := s.collection.UpdateOne(ctx, filter, ud); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return s.FindOne(ctx, filter, nil)
}

// FindOneAndUpdate cập nhật và trả về document trong một thao tác nguyên tử.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, data interface{}, opts *options.FindOneAndUpdateOptions) (T, error) {
	var zero T

	ud, err := ToUpdateData(data)
	if err != nil {
		return zero, err
	}
	if ud.Set == nil {
		ud.Set = map[string]interface{}{}
	}
	ud.Set["updatedAt"] = time.Now().UnixMilli()

	var result T
	err = s.collection.FindOneAndUpdate(ctx, filter, ud, opts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// DeleteOne xóa một document theo filter. Trả về ErrNotFound nếu không có gì bị xóa.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	result, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// CountDocuments đếm số document thỏa filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return total, nil
}

// Distinct trả về danh sách giá trị khác nhau của một field.
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	if filter == nil {
		filter = bson.D{}
	}
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// NormalizePageLimit đưa tham số phân trang về giá trị hợp lệ:
// page < 1 được đưa về 1, limit <= 0 được đưa về 10.
func NormalizePageLimit(page int64, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}

// ComputeTotalPage tính tổng số trang từ tổng số document. Giá trị chỉ
// phụ thuộc total và limit, không phụ thuộc trang đang yêu cầu.
func ComputeTotalPage(total int64, limit int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// FindWithPagination tìm document theo filter kèm phân trang.
// Trang vượt quá trang cuối trả về danh sách rỗng, totalPage giữ nguyên.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if filter == nil {
		filter = bson.D{}
	}
	page, limit = NormalizePageLimit(page, limit)

	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &basemodels.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: ComputeTotalPage(total, limit),
	}, nil
}

// Upsert cập nhật document theo filter, tạo mới nếu chưa tồn tại.
// Trả về bản ghi sau cập nhật trong một thao tác nguyên tử.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data interface{}) (T, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, filter, data, opts)
}
