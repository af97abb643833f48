package writer

import (
	"io"
	"os"
)

// ConsoleWriterOptions 控制台输出配置
type ConsoleWriterOptions struct {
	// 输出目标：stdout, stderr
	Target string `cfg:"target" def:"stdout" validate:"omitempty,oneof=stdout stderr"`
}

// ConsoleWriter 控制台输出器
type ConsoleWriter struct {
	writer io.Writer
	target string
}

// NewConsoleWriterWithOptions 创建控制台输出器，未知的目标输出到 stdout
func NewConsoleWriterWithOptions(options *ConsoleWriterOptions) (*ConsoleWriter, error) {
	if options == nil {
		options = &ConsoleWriterOptions{Target: "stdout"}
	}

	switch options.Target {
	case "stderr":
		return &ConsoleWriter{writer: os.Stderr, target: "stderr"}, nil
	default:
		return &ConsoleWriter{writer: os.Stdout, target: "stdout"}, nil
	}
}

func (c *ConsoleWriter) Target() string {
	return c.target
}

// Write 实现 io.Writer 接口
func (c *ConsoleWriter) Write(p []byte) (n int, err error) {
	return c.writer.Write(p)
}

// Close 控制台不需要关闭
func (c *ConsoleWriter) Close() error {
	return nil
}
