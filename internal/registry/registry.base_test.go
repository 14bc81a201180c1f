package registry

import (
	"errors"
	"testing"

	"facility_works/internal/common"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry[string]()

	isNew, err := reg.Register("a", "giá trị 1")
	if err != nil {
		t.Fatalf("Register trả về lỗi không mong muốn: %v", err)
	}
	if !isNew {
		t.Error("đăng ký lần đầu phải trả về isNew = true")
	}

	isNew, err = reg.Register("a", "giá trị 2")
	if err != nil {
		t.Fatalf("Register ghi đè trả về lỗi không mong muốn: %v", err)
	}
	if isNew {
		t.Error("đăng ký trùng tên phải trả về isNew = false")
	}

	got, ok := reg.Get("a")
	if !ok {
		t.Fatal("không tìm thấy item vừa đăng ký")
	}
	if got != "giá trị 2" {
		t.Errorf("item không được ghi đè, nhận %q", got)
	}
}

func TestRegistry_RegisterEmptyName(t *testing.T) {
	reg := NewRegistry[int]()

	_, err := reg.Register("", 1)
	if err == nil {
		t.Fatal("đăng ký với tên rỗng phải trả về lỗi")
	}
	if !errors.Is(err, common.ErrRequiredField) {
		t.Errorf("lỗi phải wrap ErrRequiredField, nhận: %v", err)
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	reg := NewRegistry[int]()
	calls := 0

	v, err := reg.GetOrCreate("x", func() (int, error) {
		calls++
		return 42, nil
	})
	if err != nil {
		t.Fatalf("GetOrCreate trả về lỗi không mong muốn: %v", err)
	}
	if v != 42 {
		t.Errorf("giá trị mong đợi 42, nhận %d", v)
	}

	v, err = reg.GetOrCreate("x", func() (int, error) {
		calls++
		return 99, nil
	})
	if err != nil {
		t.Fatalf("GetOrCreate lần hai trả về lỗi: %v", err)
	}
	if v != 42 {
		t.Errorf("lần hai phải trả về giá trị đã có, nhận %d", v)
	}
	if calls != 1 {
		t.Errorf("hàm create chỉ được gọi một lần, đã gọi %d lần", calls)
	}
}

func TestRegistry_UpdateMissing(t *testing.T) {
	reg := NewRegistry[string]()

	err := reg.Update("chưa có", "v")
	if err == nil {
		t.Fatal("Update tên chưa đăng ký phải trả về lỗi")
	}
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("lỗi phải wrap ErrNotFound, nhận: %v", err)
	}
}

func TestRegistry_ClearAll(t *testing.T) {
	reg := NewRegistry[string]()
	reg.Register("a", "1")
	reg.Register("b", "2")

	cleaned := 0
	reg.ClearAll(func(string) { cleaned++ })

	if reg.Len() != 0 {
		t.Errorf("registry phải rỗng sau ClearAll, còn %d item", reg.Len())
	}
	if cleaned != 2 {
		t.Errorf("cleanup phải được gọi cho cả 2 item, đã gọi %d lần", cleaned)
	}
}
