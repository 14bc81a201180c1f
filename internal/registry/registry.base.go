package registry

import (
	"fmt"
	"sync"

	"facility_works/internal/common"
)

// Registry là cấu trúc registry dùng chung cho nhiều loại đối tượng,
// an toàn khi truy cập đồng thời từ nhiều goroutine.
//
// Ví dụ:
//
//	reg := registry.NewRegistry[*mongo.Collection]()
//	reg.Register("jo_job_orders", coll)
//	coll, ok := reg.Get("jo_job_orders")
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo một registry mới, sẵn sàng sử dụng.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item với tên cho trước.
// Trả về true nếu tên chưa tồn tại (đăng ký mới), false nếu ghi đè item cũ.
func (r *Registry[T]) Register(name string, item T) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("tên đăng ký không được rỗng: %w", common.ErrRequiredField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên. Trả về false nếu chưa được đăng ký.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok
}

// GetOrCreate lấy item theo tên, nếu chưa có thì gọi create để tạo và đăng ký.
func (r *Registry[T]) GetOrCreate(name string, create func() (T, error)) (T, error) {
	if item, ok := r.Get(name); ok {
		return item, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Kiểm tra lại sau khi giữ write lock
	if item, ok := r.items[name]; ok {
		return item, nil
	}

	item, err := create()
	if err != nil {
		var zero T
		return zero, err
	}
	r.items[name] = item
	return item, nil
}

// Update cập nhật item đã tồn tại. Trả về lỗi nếu tên chưa được đăng ký.
func (r *Registry[T]) Update(name string, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[name]; !ok {
		return fmt.Errorf("không tìm thấy item %s trong registry: %w", name, common.ErrNotFound)
	}
	r.items[name] = item
	return nil
}

// Names trả về danh sách tên đã đăng ký.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

// Len trả về số lượng item đang được đăng ký.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Clear xóa item theo tên, gọi cleanup (nếu có) trước khi xóa.
func (r *Registry[T]) Clear(name string, cleanup func(T)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.items[name]; ok {
		if cleanup != nil {
			cleanup(item)
		}
		delete(r.items, name)
	}
}

// ClearAll xóa toàn bộ item, gọi cleanup (nếu có) cho từng item.
func (r *Registry[T]) ClearAll(cleanup func(T)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, item := range r.items {
		if cleanup != nil {
			cleanup(item)
		}
		delete(r.items, name)
	}
}
