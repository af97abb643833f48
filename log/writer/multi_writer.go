package writer

import (
	"fmt"
	"io"
)

// MultiWriterOptions 多输出配置
type MultiWriterOptions struct {
	// 输出器列表
	Writers []Options `cfg:"writers" validate:"required,min=1,dive"`
}

// MultiWriter 同时写入多个输出器
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriterWithOptions 创建多输出器，任何一个子输出器创建失败时关闭已创建的输出器
func NewMultiWriterWithOptions(options *MultiWriterOptions) (*MultiWriter, error) {
	if options == nil || len(options.Writers) == 0 {
		return nil, fmt.Errorf("at least one writer is required")
	}

	writers := make([]Writer, 0, len(options.Writers))
	for i := range options.Writers {
		w, err := NewWriterWithOptions(&options.Writers[i])
		if err != nil {
			for _, created := range writers {
				_ = created.Close()
			}
			return nil, fmt.Errorf("failed to create writer %d: %w", i, err)
		}
		writers = append(writers, w)
	}

	return &MultiWriter{writers: writers}, nil
}

// NewMultiWriter 从已有的 Writer 创建多输出器
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write 依次写入所有输出器，遇到错误立即返回
func (m *MultiWriter) Write(p []byte) (n int, err error) {
	for i, w := range m.writers {
		n, err = w.Write(p)
		if err != nil {
			return n, fmt.Errorf("writer %d failed: %w", i, err)
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Close 关闭所有输出器，返回最后一个错误
func (m *MultiWriter) Close() error {
	var lastErr error
	for i, w := range m.writers {
		if err := w.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close writer %d: %w", i, err)
		}
	}
	return lastErr
}
