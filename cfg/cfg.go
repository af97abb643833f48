package cfg

import (
	"io"
	"sync"

	"github.com/hatlonely/tablex/cfg/decoder"
	"github.com/hatlonely/tablex/cfg/provider"
	"github.com/hatlonely/tablex/cfg/storage"
	"github.com/hatlonely/tablex/cfg/validator"
	"github.com/hatlonely/tablex/log"
	"github.com/pkg/errors"
)

// Options 配置文件选项
type Options struct {
	// FilePath 配置文件路径
	FilePath string `cfg:"filePath" validate:"required"`
	// Format 文件格式，为空时按扩展名推断：json, yaml, toml, ini
	Format string `cfg:"format" validate:"omitempty,oneof=json json5 yaml yml toml ini"`
	// Logger 记录重新加载失败等事件，为空时使用默认日志器
	Logger *log.Options `cfg:"logger"`
}

// Config 一个配置文件的解码结果，Watch 之后文件变更会重新解码并通知回调
type Config struct {
	provider provider.Provider
	decoder  decoder.Decoder
	logger   log.Logger
	// closer 由 Options.Logger 创建的日志器，默认日志器为 nil
	closer io.Closer

	mu       sync.RWMutex
	storage  storage.Storage
	handlers []func(*Config) error

	closeOnce sync.Once
	closeErr  error
}

func NewConfigWithOptions(options *Options) (*Config, error) {
	if options == nil {
		return nil, errors.New("options cannot be nil")
	}
	if err := validator.ValidateStruct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid config options")
	}

	var dec decoder.Decoder
	var err error
	if options.Format != "" {
		dec, err = decoder.NewDecoder(options.Format)
	} else {
		dec, err = decoder.NewDecoderForFile(options.FilePath)
	}
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLoggerWithOptions(options.Logger)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create logger")
	}
	var closer io.Closer
	if options.Logger != nil {
		closer, _ = logger.(io.Closer)
	}

	prov, err := provider.NewFileProviderWithOptions(&provider.FileProviderOptions{FilePath: options.FilePath})
	if err != nil {
		closeQuietly(closer)
		return nil, err
	}
	prov.SetLogger(logger)

	return newConfig(prov, dec, logger, closer)
}

// newConfig 接管 closer，失败时关闭它
func newConfig(prov provider.Provider, dec decoder.Decoder, logger log.Logger, closer io.Closer) (*Config, error) {
	data, err := prov.Load()
	if err != nil {
		closeQuietly(closer)
		return nil, err
	}
	stor, err := dec.Decode(data)
	if err != nil {
		closeQuietly(closer)
		return nil, err
	}

	c := &Config{
		provider: prov,
		decoder:  dec,
		logger:   logger,
		closer:   closer,
		storage:  stor,
	}
	prov.OnChange(c.reload)
	return c, nil
}

// Storage 当前的配置数据
func (c *Config) Storage() storage.Storage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storage
}

// Unmarshal 把 key 对应的子配置写入 object，key 为空表示整个文件
func (c *Config) Unmarshal(key string, object any) error {
	return Unmarshal(c.Storage().Sub(key), object)
}

// OnChange 注册变更回调，回调返回的错误只记录日志
func (c *Config) OnChange(fn func(*Config) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

func (c *Config) Watch() error {
	return c.provider.Watch()
}

// Close 停止监听并关闭由 Options.Logger 创建的日志输出
func (c *Config) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.provider.Close()
		if c.closer != nil {
			if err := c.closer.Close(); err != nil && c.closeErr == nil {
				c.closeErr = errors.Wrap(err, "failed to close logger")
			}
		}
	})
	return c.closeErr
}

func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// reload 解码失败时保留旧数据
func (c *Config) reload(data []byte) error {
	stor, err := c.decoder.Decode(data)
	if err != nil {
		c.logger.Warn("failed to decode changed config, keep previous", "error", err)
		return err
	}

	c.mu.Lock()
	c.storage = stor
	handlers := make([]func(*Config) error, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	c.logger.Info("config reloaded")
	for _, handler := range handlers {
		if err := handler(c); err != nil {
			c.logger.Warn("config change handler failed", "error", err)
		}
	}
	return nil
}

// Unmarshal 依次填充默认值、写入配置数据、校验
func Unmarshal(stor storage.Storage, object any) error {
	if err := SetDefaults(object); err != nil {
		return errors.WithMessage(err, "failed to set defaults")
	}
	if err := stor.ConvertTo(object); err != nil {
		return errors.WithMessage(err, "failed to convert config")
	}
	if err := validator.ValidateStruct(object); err != nil {
		return errors.WithMessage(err, "invalid config")
	}
	return nil
}

// Load 读取配置文件写入 object，格式按扩展名推断
func Load(filename string, object any) error {
	dec, err := decoder.NewDecoderForFile(filename)
	if err != nil {
		return err
	}
	prov, err := provider.NewFileProviderWithOptions(&provider.FileProviderOptions{FilePath: filename})
	if err != nil {
		return err
	}
	data, err := prov.Load()
	if err != nil {
		return err
	}
	stor, err := dec.Decode(data)
	if err != nil {
		return err
	}
	return Unmarshal(stor, object)
}

// Bind 把 key 对应的子配置绑定到新的 T 上，文件变更后重新解码为新的 T 并调用 onChange
// 新配置不合法时不调用 onChange，只记录日志
func Bind[T any](c *Config, key string, onChange func(*T)) (*T, error) {
	object := new(T)
	if err := c.Unmarshal(key, object); err != nil {
		return nil, err
	}
	if onChange != nil {
		c.OnChange(func(c *Config) error {
			next := new(T)
			if err := c.Unmarshal(key, next); err != nil {
				return errors.WithMessagef(err, "key %q", key)
			}
			onChange(next)
			return nil
		})
	}
	return object, nil
}
