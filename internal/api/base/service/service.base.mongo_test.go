package service

import "testing"

func TestNormalizePageLimit(t *testing.T) {
	cases := []struct {
		page, limit         int64
		wantPage, wantLimit int64
	}{
		{0, 0, 1, 10},
		{-5, -1, 1, 10},
		{1, 10, 1, 10},
		{3, 25, 3, 25},
	}
	for _, c := range cases {
		page, limit := NormalizePageLimit(c.page, c.limit)
		if page != c.wantPage || limit != c.wantLimit {
			t.Errorf("NormalizePageLimit(%d, %d) = (%d, %d), muốn (%d, %d)",
				c.page, c.limit, page, limit, c.wantPage, c.wantLimit)
		}
	}
}

func TestComputeTotalPage(t *testing.T) {
	cases := []struct {
		total, limit int64
		want         int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, c := range cases {
		if got := ComputeTotalPage(c.total, c.limit); got != c.want {
			t.Errorf("ComputeTotalPage(%d, %d) = %d, muốn %d", c.total, c.limit, got, c.want)
		}
	}
}

// Trang vượt quá trang cuối: totalPage chỉ phụ thuộc total và limit nên
// giữ nguyên, còn skip vượt tổng số document nên kết quả là trang rỗng.
func TestComputeTotalPage_PageBeyondEnd(t *testing.T) {
	const total, limit = 25, 10

	page, _ := NormalizePageLimit(99, limit)
	skip := (page - 1) * limit
	if skip < total {
		t.Fatalf("skip %d phải vượt tổng %d để trang trả về rỗng", skip, total)
	}

	if got := ComputeTotalPage(total, limit); got != 3 {
		t.Errorf("totalPage phải giữ nguyên 3 dù trang yêu cầu vượt cuối, nhận %d", got)
	}
}
