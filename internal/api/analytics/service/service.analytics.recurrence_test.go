package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	jomodels "facility_works/internal/api/joborder/models"
)

func jobOrdersWithDescriptions(descriptions ...string) []jomodels.JobOrder {
	jobOrders := make([]jomodels.JobOrder, 0, len(descriptions))
	for _, d := range descriptions {
		jobOrders = append(jobOrders, jomodels.JobOrder{Description: d})
	}
	return jobOrders
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "fix aircon", NormalizeDescription("Fix  Aircon"))
	assert.Equal(t, "fix aircon", NormalizeDescription(" FIX AIRCON "))
	assert.Equal(t, "fix aircon", NormalizeDescription("fix aircon"))
	assert.Equal(t, "", NormalizeDescription("   "))
}

func TestGroupRecurrences_CaseAndWhitespaceVariants(t *testing.T) {
	// Năm cách ghi khác nhau của cùng một sự cố phải gom về một nhóm
	jobOrders := jobOrdersWithDescriptions(
		"Fix  Aircon",
		"fix aircon",
		" FIX AIRCON ",
		"Fix Aircon",
		"fix  aircon ",
	)

	items := GroupRecurrences(jobOrders, 5)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Occurrences)
	// Issue giữ nguyên văn mô tả xuất hiện đầu tiên
	assert.Equal(t, "Fix  Aircon", items[0].Issue)
	assert.Equal(t, RecommendationMessage, items[0].Recommendation)
}

func TestGroupRecurrences_BelowThreshold(t *testing.T) {
	jobOrders := jobOrdersWithDescriptions(
		"Leaking faucet", "leaking faucet", "Leaking Faucet", "LEAKING FAUCET",
	)

	items := GroupRecurrences(jobOrders, 5)
	assert.Empty(t, items, "4 lần lặp chưa đạt ngưỡng 5 nên không sinh khuyến nghị")
}

func TestGroupRecurrences_SortedByOccurrencesDesc(t *testing.T) {
	jobOrders := jobOrdersWithDescriptions(
		"broken light", "broken light", "broken light", "broken light", "broken light",
		"fix aircon", "fix aircon", "fix aircon", "fix aircon", "fix aircon", "fix aircon", "fix aircon",
	)

	items := GroupRecurrences(jobOrders, 5)
	assert.Len(t, items, 2)
	assert.Equal(t, "fix aircon", items[0].Issue)
	assert.Equal(t, 7, items[0].Occurrences)
	assert.Equal(t, "broken light", items[1].Issue)
	assert.Equal(t, 5, items[1].Occurrences)
}

func TestGroupRecurrences_IgnoresEmptyDescriptions(t *testing.T) {
	jobOrders := jobOrdersWithDescriptions("", "   ", "\t", "", "")

	items := GroupRecurrences(jobOrders, 1)
	assert.Empty(t, items, "mô tả rỗng không được tính là sự cố")
}

func TestBuildRecommendationUpsert(t *testing.T) {
	item := RecurrenceItem{
		Issue:          "Fix  Aircon",
		Recommendation: RecommendationMessage,
		Occurrences:    6,
	}

	filter, update := BuildRecommendationUpsert(item, 1724000000000)

	assert.Equal(t, "Fix  Aircon", filter["issue"])
	assert.Equal(t, RecommendationMessage, update.Set["recommendation"])
	assert.Equal(t, 6, update.Set["occurrences"])

	// Trạng thái resolved chỉ gán lúc insert: lần phân tích sau chạy
	// lại không được trả khuyến nghị đã xử lý về chưa xử lý
	assert.NotContains(t, update.Set, "resolved")
	assert.Equal(t, false, update.SetOnInsert["resolved"])
	assert.Equal(t, int64(1724000000000), update.SetOnInsert["createdAt"])
}
