package logger

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Tên các logger trong hệ thống
const (
	LoggerApp   = "app"   // Log nghiệp vụ chung
	LoggerAudit = "audit" // Log thao tác thay đổi dữ liệu
	LoggerError = "error" // Log lỗi hệ thống
)

var (
	loggers  map[string]*logrus.Logger
	hooks    []*AsyncHook
	initOnce sync.Once
)

// Init khởi tạo toàn bộ logger theo cấu hình. Truyền nil để dùng cấu hình
// mặc định. Gọi một lần khi start server.
func Init(cfg *LogConfig) error {
	initOnce.Do(func() {
		if cfg == nil {
			cfg = DefaultConfig()
		}
		loggers = make(map[string]*logrus.Logger)
		for _, name := range []string{LoggerApp, LoggerAudit, LoggerError} {
			loggers[name] = newLogger(name, cfg)
		}
	})
	return nil
}

func newLogger(name string, cfg *LogConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Output, name+".log"),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	hook := NewAsyncHook(writer, cfg.BufferSize)
	log.AddHook(hook)
	hooks = append(hooks, hook)

	// Output chính chuyển sang Discard, toàn bộ ghi file đi qua async hook
	log.SetOutput(io.Discard)

	return log
}

// GetAppLogger trả về logger nghiệp vụ chung.
func GetAppLogger() *logrus.Logger {
	return getLogger(LoggerApp)
}

// GetAuditLogger trả về logger audit.
func GetAuditLogger() *logrus.Logger {
	return getLogger(LoggerAudit)
}

// GetErrorLogger trả về logger lỗi hệ thống.
func GetErrorLogger() *logrus.Logger {
	return getLogger(LoggerError)
}

func getLogger(name string) *logrus.Logger {
	if loggers == nil {
		// Fallback khi chưa Init (ví dụ trong test)
		Init(DefaultConfig())
	}
	if log, ok := loggers[name]; ok {
		return log
	}
	return loggers[LoggerApp]
}

// Close flush và dừng toàn bộ async hook. Gọi khi shutdown server.
func Close() {
	for _, hook := range hooks {
		hook.Close()
	}
}
