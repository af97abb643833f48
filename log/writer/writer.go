package writer

import (
	"fmt"
	"io"
	"strings"
)

// Writer 日志输出器接口
type Writer interface {
	io.Writer
	io.Closer
}

// Options 输出器配置，Type 决定使用哪个子配置
type Options struct {
	// 输出器类型：console, file, multi, discard
	Type    string                `cfg:"type" validate:"omitempty,oneof=console file multi discard"`
	Console *ConsoleWriterOptions `cfg:"console"`
	File    *FileWriterOptions    `cfg:"file"`
	Multi   *MultiWriterOptions   `cfg:"multi"`
}

// NewWriterWithOptions 根据 Type 创建输出器，Type 为空时输出到 stdout
func NewWriterWithOptions(options *Options) (Writer, error) {
	if options == nil {
		return NewConsoleWriterWithOptions(nil)
	}

	switch strings.ToLower(options.Type) {
	case "", "console":
		return NewConsoleWriterWithOptions(options.Console)
	case "file":
		return NewFileWriterWithOptions(options.File)
	case "multi":
		return NewMultiWriterWithOptions(options.Multi)
	case "discard":
		return Discard, nil
	default:
		return nil, fmt.Errorf("unsupported writer type: %s", options.Type)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
func (discard) Close() error                { return nil }

// Discard 丢弃所有输出
var Discard Writer = discard{}

// nopCloser 包装不需要关闭的 io.Writer
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Wrap 把任意 io.Writer 包装为 Writer，Close 为空操作
func Wrap(w io.Writer) Writer {
	if ww, ok := w.(Writer); ok {
		return ww
	}
	return nopCloser{Writer: w}
}
