package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "facility_works/internal/api/base/service"
	jomodels "facility_works/internal/api/joborder/models"
	"facility_works/internal/common"
	"facility_works/internal/global"
)

// RecurrenceThreshold là số lần lặp tối thiểu để một sự cố được coi là
// tái diễn và sinh khuyến nghị bảo trì định kỳ.
const RecurrenceThreshold = 5

// RecommendationMessage là nội dung khuyến nghị chung cho mọi sự cố tái diễn.
const RecommendationMessage = "Sự cố này tái diễn nhiều lần, nên đưa vào kế hoạch bảo trì định kỳ thay vì xử lý từng phiếu."

// RecurrenceItem là một sự cố tái diễn kèm khuyến nghị.
type RecurrenceItem struct {
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
	Occurrences    int    `json:"occurrences"`
}

// AnalyticsService phân tích dữ liệu phiếu yêu cầu đã xử lý.
type AnalyticsService struct {
	jobOrders       *basesvc.BaseServiceMongoImpl[jomodels.JobOrder]
	recommendations *basesvc.BaseServiceMongoImpl[jomodels.Recommendation]
}

// NewAnalyticsService tạo service phân tích.
func NewAnalyticsService() (*AnalyticsService, error) {
	joColName := global.MongoDB_ColNames.JobOrders
	joCollection, ok := global.RegistryCollections.Get(joColName)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", joColName, common.ErrNotFound)
	}

	recColName := global.MongoDB_ColNames.Recommendations
	recCollection, ok := global.RegistryCollections.Get(recColName)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", recColName, common.ErrNotFound)
	}

	return &AnalyticsService{
		jobOrders:       basesvc.NewBaseServiceMongo[jomodels.JobOrder](joCollection),
		recommendations: basesvc.NewBaseServiceMongo[jomodels.Recommendation](recCollection),
	}, nil
}

// NormalizeDescription chuẩn hóa mô tả sự cố để gom nhóm: lowercase,
// cắt khoảng trắng hai đầu và gộp khoảng trắng bên trong về một dấu cách.
func NormalizeDescription(description string) string {
	return strings.Join(strings.Fields(strings.ToLower(description)), " ")
}

// GroupRecurrences gom các phiếu theo mô tả đã chuẩn hóa và trả về các
// sự cố đạt ngưỡng tái diễn, sắp xếp giảm dần theo số lần. Issue giữ
// nguyên văn mô tả xuất hiện đầu tiên trong nhóm.
func GroupRecurrences(jobOrders []jomodels.JobOrder, threshold int) []RecurrenceItem {
	counts := map[string]int{}
	firstLiteral := map[string]string{}
	order := []string{}

	for _, jobOrder := range jobOrders {
		key := NormalizeDescription(jobOrder.Description)
		if key == "" {
			continue
		}
		if counts[key] == 0 {
			firstLiteral[key] = jobOrder.Description
			order = append(order, key)
		}
		counts[key]++
	}

	items := []RecurrenceItem{}
	for _, key := range order {
		if counts[key] < threshold {
			continue
		}
		items = append(items, RecurrenceItem{
			Issue:          firstLiteral[key],
			Recommendation: RecommendationMessage,
			Occurrences:    counts[key],
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Occurrences > items[j].Occurrences
	})

	return items
}

// AnalyzeRecurrences tìm các sự cố tái diễn trong các phiếu đã duyệt
// hoặc đã hoàn thành, đồng thời lưu khuyến nghị vào collection để tra
// cứu lại sau. Gom nhóm thực hiện trong Go vì chuẩn hóa chuỗi phức tạp
// hơn nhiều so với aggregation tương đương.
func (s *AnalyticsService) AnalyzeRecurrences(ctx context.Context) ([]RecurrenceItem, error) {
	jobOrders, err := s.jobOrders.Find(ctx, bson.M{
		"status": bson.M{"$in": []string{jomodels.StatusOngoing, jomodels.StatusCompleted}},
	}, nil)
	if err != nil {
		return nil, err
	}

	items := GroupRecurrences(jobOrders, RecurrenceThreshold)

	now := time.Now().UnixMilli()
	for _, item := range items {
		filter, update := BuildRecommendationUpsert(item, now)
		if _, err := s.recommendations.Upsert(ctx, filter, update); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// BuildRecommendationUpsert dựng filter và nội dung upsert cho một
// khuyến nghị. Trường resolved chỉ gán khi insert để lần phân tích sau
// không ghi đè trạng thái đã xử lý.
func BuildRecommendationUpsert(item RecurrenceItem, now int64) (bson.M, *basesvc.UpdateData) {
	return bson.M{"issue": item.Issue}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"recommendation": item.Recommendation,
			"occurrences":    item.Occurrences,
		},
		SetOnInsert: map[string]interface{}{
			"createdAt": now,
			"resolved":  false,
		},
	}
}

// ResolveRecommendation đánh dấu một khuyến nghị đã được xử lý.
func (s *AnalyticsService) ResolveRecommendation(ctx context.Context, id primitive.ObjectID) (jomodels.Recommendation, error) {
	return s.recommendations.FindOneAndUpdate(ctx, bson.M{"_id": id}, &basesvc.UpdateData{
		Set: map[string]interface{}{"resolved": true},
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))
}
