package service

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"facility_works/internal/common"
)

func TestBuildCounterKey(t *testing.T) {
	at := time.Date(2024, time.August, 15, 10, 30, 0, 0, time.UTC)

	key := BuildCounterKey(at)
	if key != "jobOrder-24-08-15" {
		t.Errorf("key bộ đếm không đúng, nhận %q", key)
	}
}

func TestBuildCounterKey_PerDay(t *testing.T) {
	day1 := time.Date(2025, time.January, 1, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2025, time.January, 2, 0, 1, 0, 0, time.UTC)

	if BuildCounterKey(day1) == BuildCounterKey(day2) {
		t.Error("hai ngày khác nhau phải có key bộ đếm khác nhau")
	}
}

func TestFormatJobOrderNumber(t *testing.T) {
	at := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		seq  int64
		want string
	}{
		{1, "24-081501"},
		{9, "24-081509"},
		{10, "24-081510"},
		{42, "24-081542"},
	}

	for _, tc := range cases {
		got := FormatJobOrderNumber(at, tc.seq)
		if got != tc.want {
			t.Errorf("seq %d: mong đợi %q, nhận %q", tc.seq, tc.want, got)
		}
	}
}

func TestFormatJobOrderNumber_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{2}-\d{6}$`)

	at := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	for seq := int64(1); seq <= 99; seq++ {
		number := FormatJobOrderNumber(at, seq)
		if !pattern.MatchString(number) {
			t.Fatalf("số phiếu %q không khớp định dạng YY-MMDDNN", number)
		}
	}
}

// Hai upsert đầu ngày có thể đụng nhau khi cùng insert bộ đếm: lỗi
// trùng key phải được nhận diện để thử lại, các lỗi khác thì không.
func TestIsCounterRace(t *testing.T) {
	if !isCounterRace(common.ErrMongoDuplicate) {
		t.Error("lỗi trùng key phải được nhận diện là đụng độ bộ đếm")
	}
	if !isCounterRace(fmt.Errorf("upsert bộ đếm: %w", common.ErrMongoDuplicate)) {
		t.Error("lỗi trùng key bị bọc vẫn phải được nhận diện")
	}
	if isCounterRace(common.ErrNotFound) {
		t.Error("lỗi khác trùng key không được kích hoạt thử lại")
	}
	if isCounterRace(nil) {
		t.Error("không có lỗi thì không có đụng độ")
	}
}
