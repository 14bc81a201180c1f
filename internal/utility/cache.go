package utility

import (
	"sync"
	"time"
)

// Cache là cache đơn giản trong bộ nhớ với TTL chung cho toàn bộ item.
// Một goroutine nền xóa toàn bộ cache theo chu kỳ TTL.
type Cache struct {
	items    map[string]interface{}
	mu       sync.RWMutex
	ttl      time.Duration
	stopChan chan struct{}
}

// NewCache tạo cache mới với TTL cho trước và khởi động vòng dọn dẹp.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		items:    make(map[string]interface{}),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Set lưu một giá trị vào cache.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

// Get lấy giá trị từ cache. Trả về false nếu key không tồn tại.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.items[key]
	return value, ok
}

// Delete xóa một key khỏi cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Stop dừng vòng dọn dẹp nền.
func (c *Cache) Stop() {
	close(c.stopChan)
}

// cleanupLoop xóa toàn bộ cache sau mỗi chu kỳ TTL.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.items = make(map[string]interface{})
			c.mu.Unlock()
		case <-c.stopChan:
			return
		}
	}
}
