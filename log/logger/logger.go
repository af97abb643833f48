package logger

import (
	"context"
)

// Logger 结构化日志接口，参数为交替出现的 key、value
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)

	// With 返回附带固定字段的日志器
	With(args ...any) Logger
	// WithGroup 返回把后续字段归入 name 分组的日志器
	WithGroup(name string) Logger
}

var _ Logger = (*SLog)(nil)
