package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ qua buffered channel để không chặn
// luồng xử lý request. Khi buffer đầy, entry mới bị bỏ qua.
type AsyncHook struct {
	writer  io.Writer
	entries chan *logrus.Entry
	done    chan struct{}
}

// NewAsyncHook tạo hook với buffer cho trước và khởi động goroutine ghi log.
func NewAsyncHook(writer io.Writer, bufferSize int) *AsyncHook {
	hook := &AsyncHook{
		writer:  writer,
		entries: make(chan *logrus.Entry, bufferSize),
		done:    make(chan struct{}),
	}
	go hook.processEntries()
	return hook
}

// Levels trả về các mức log mà hook xử lý.
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào buffer. Không chặn: nếu buffer đầy thì bỏ entry.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	select {
	case h.entries <- entry:
	default:
		// Buffer đầy, bỏ qua entry để không chặn request
	}
	return nil
}

// Close dừng goroutine ghi log sau khi flush hết buffer.
func (h *AsyncHook) Close() {
	close(h.entries)
	<-h.done
}

func (h *AsyncHook) processEntries() {
	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("panic trong goroutine ghi log: %v\n", r)
		}
	}()

	for entry := range h.entries {
		line, err := entry.Logger.Formatter.Format(entry)
		if err != nil {
			continue
		}
		h.writer.Write(line)
	}
}
