package provider

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hatlonely/tablex/log"
	"github.com/pkg/errors"
)

type FileProviderOptions struct {
	FilePath string `cfg:"filePath" validate:"required"`
}

// FileProvider 监听文件所在目录，只响应该文件的写入和重建事件
// 编辑器通常先写临时文件再 rename，所以不能直接监听文件本身
type FileProvider struct {
	filePath string
	logger   log.Logger

	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	onChange []func(data []byte) error
	once     sync.Once
	done     chan struct{}
}

func NewFileProviderWithOptions(options *FileProviderOptions) (*FileProvider, error) {
	if options == nil || options.FilePath == "" {
		return nil, errors.New("file path is required")
	}

	absPath, err := filepath.Abs(options.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "invalid file path")
	}

	return &FileProvider{
		filePath: filepath.Clean(absPath),
		logger:   log.Default(),
		done:     make(chan struct{}),
	}, nil
}

func (p *FileProvider) SetLogger(logger log.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = logger
}

func (p *FileProvider) Path() string {
	return p.filePath
}

func (p *FileProvider) Load() ([]byte, error) {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	return data, nil
}

func (p *FileProvider) OnChange(fn func(data []byte) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = append(p.onChange, fn)
}

func (p *FileProvider) Watch() error {
	var initErr error
	p.once.Do(func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			initErr = errors.Wrap(err, "failed to create file watcher")
			return
		}
		if err := watcher.Add(filepath.Dir(p.filePath)); err != nil {
			_ = watcher.Close()
			initErr = errors.Wrap(err, "failed to add directory to watcher")
			return
		}

		p.mu.Lock()
		p.watcher = watcher
		p.mu.Unlock()

		go p.loop(watcher)
	})
	return initErr
}

func (p *FileProvider) loop(watcher *fsnotify.Watcher) {
	defer close(p.done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.filePath || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p.dispatch()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.currentLogger().Warn("file watcher error", "path", p.filePath, "error", err)
		}
	}
}

func (p *FileProvider) dispatch() {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		p.currentLogger().Warn("failed to read changed file", "path", p.filePath, "error", err)
		return
	}

	p.mu.RLock()
	handlers := make([]func(data []byte) error, len(p.onChange))
	copy(handlers, p.onChange)
	p.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(data); err != nil {
			p.currentLogger().Warn("file change handler failed", "path", p.filePath, "error", err)
		}
	}
}

func (p *FileProvider) currentLogger() log.Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

// Close 停止监听并等待监听协程退出，可以重复调用
func (p *FileProvider) Close() error {
	p.mu.Lock()
	watcher := p.watcher
	p.watcher = nil
	p.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-p.done
	return errors.Wrap(err, "failed to close file watcher")
}

var _ Provider = (*FileProvider)(nil)
