package provider

// Provider 配置数据来源
type Provider interface {
	// Load 读取配置数据
	Load() ([]byte, error)
	// OnChange 注册变更回调，Watch 之后才会触发
	OnChange(fn func(data []byte) error)
	// Watch 开始监听变更
	Watch() error
	Close() error
}
