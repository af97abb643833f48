package log

import (
	"github.com/hatlonely/tablex/log/logger"
	"github.com/hatlonely/tablex/log/writer"
)

type Logger = logger.Logger

type Options = logger.SLogOptions

var defaultLogger logger.Logger

func init() {
	// 创建默认的SLog实例，向终端输出text格式日志
	slog, err := logger.NewSLogWithOptions(&logger.SLogOptions{
		Level:  "info",
		Format: "text",
	})
	if err != nil {
		panic("failed to initialize default logger: " + err.Error())
	}
	defaultLogger = slog
}

// Default 默认日志器，info 级别，text 格式输出到 stdout
func Default() logger.Logger {
	return defaultLogger
}

// NewLoggerWithOptions 根据选项创建日志器，options 为 nil 时返回默认日志器
func NewLoggerWithOptions(options *Options) (logger.Logger, error) {
	if options == nil {
		return Default(), nil
	}
	return logger.NewSLogWithOptions(options)
}

// Discard 丢弃所有输出的日志器
func Discard() logger.Logger {
	l, _ := logger.NewSLog(writer.Discard, &logger.SLogOptions{Level: "error"})
	return l
}
