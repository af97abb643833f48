package table

import (
	"slices"

	"github.com/hatlonely/tablex/cfg"
	"github.com/hatlonely/tablex/cfg/validator"
	"github.com/hatlonely/tablex/log"
	"github.com/hatlonely/tablex/log/logger"
	"github.com/pkg/errors"
)

// Options 表的初始化配置
type Options struct {
	// Name 表名，用作指标名前缀和日志的 component 字段
	Name string `cfg:"name" def:"table" validate:"required"`

	// PageSize 初始每页条数
	PageSize int `cfg:"pageSize" def:"10" validate:"min=1"`

	// PageSizeOptions 可供选择的每页条数，只给渲染层使用，ChangePageSize 不做限制
	PageSizeOptions []int `cfg:"pageSizeOptions" def:"10,20,50,100" validate:"dive,min=1"`

	// SelectionMode 行选择模式：none, single, multiple
	SelectionMode string `cfg:"selectionMode" def:"none" validate:"oneof=none single multiple multi"`

	EnableMetrics bool `cfg:"enableMetrics" def:"false"`
	EnableTracing bool `cfg:"enableTracing" def:"false"`
	EnableLogging bool `cfg:"enableLogging" def:"true"`

	// Logger 日志配置，EnableLogging 为 false 时忽略
	Logger *log.Options `cfg:"logger"`
}

// NewOptions 返回填充了默认值的配置
func NewOptions() *Options {
	options := &Options{}
	_ = cfg.SetDefaults(options)
	return options
}

// LoadOptions 从配置文件读取 Options，格式按扩展名推断（json, yaml, toml, ini）
// 文件中没有的字段使用默认值
func LoadOptions(filename string) (*Options, error) {
	options := &Options{}
	if err := cfg.Load(filename, options); err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return options, nil
}

// prepareOptions 填充默认值并校验，不修改调用方的 options
// options 为 nil 时等同于 NewOptions()
func prepareOptions(options *Options) (*Options, error) {
	if options == nil {
		return NewOptions(), nil
	}

	prepared := *options
	prepared.PageSizeOptions = slices.Clone(options.PageSizeOptions)
	if options.Logger != nil {
		loggerOptions := *options.Logger
		prepared.Logger = &loggerOptions
	}
	// 布尔字段的零值和显式的 false 无法区分，按调用方给的值使用
	enableMetrics, enableTracing, enableLogging := options.EnableMetrics, options.EnableTracing, options.EnableLogging
	if err := cfg.SetDefaults(&prepared); err != nil {
		return nil, errors.WithMessage(err, "failed to set default options")
	}
	prepared.EnableMetrics, prepared.EnableTracing, prepared.EnableLogging = enableMetrics, enableTracing, enableLogging
	if err := validator.ValidateStruct(&prepared); err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return &prepared, nil
}

// ContextOption 构造 Context 时的可选项
type ContextOption[R comparable] func(*Context[R])

// WithControlledState 使用调用方持有的状态（受控模式），每次状态变化后调用 onStateChange
// 调用方可以在回调里修改状态，或者通过 SetState 重新提供状态
func WithControlledState[R comparable](state *State[R], onStateChange func(state *State[R])) ContextOption[R] {
	return func(c *Context[R]) {
		c.state = state
		c.controlled = true
		c.onStateChange = onStateChange
	}
}

// WithRows 初始数据
func WithRows[R comparable](rows []R) ContextOption[R] {
	return func(c *Context[R]) {
		c.rows = rows
	}
}

// WithLogger 使用指定的日志器，优先于 Options.Logger
func WithLogger[R comparable](l logger.Logger) ContextOption[R] {
	return func(c *Context[R]) {
		c.logger = l
	}
}

func OnSortChange[R comparable](fn func(columnID string, direction SortDirection)) ContextOption[R] {
	return func(c *Context[R]) {
		c.callbacks.onSortChange = fn
	}
}

func OnPageChange[R comparable](fn func(page int)) ContextOption[R] {
	return func(c *Context[R]) {
		c.callbacks.onPageChange = fn
	}
}

func OnPageSizeChange[R comparable](fn func(pageSize int)) ContextOption[R] {
	return func(c *Context[R]) {
		c.callbacks.onPageSizeChange = fn
	}
}

// OnRowSelect 单行选中状态变化时调用，只由 ToggleRowSelection 和 SelectRow 触发
func OnRowSelect[R comparable](fn func(row R, selected bool)) ContextOption[R] {
	return func(c *Context[R]) {
		c.callbacks.onRowSelect = fn
	}
}

// OnSelectionChange 选择集合变化时调用，参数按选中顺序排列
func OnSelectionChange[R comparable](fn func(selected []R)) ContextOption[R] {
	return func(c *Context[R]) {
		c.callbacks.onSelectionChange = fn
	}
}

func OnFilterChange[R comparable](fn func(filters Filters)) ContextOption[R] {
	return func(c *Context[R]) {
		c.callbacks.onFilterChange = fn
	}
}

// OnRender 任何变化之后、所有其他回调之后调用，参数为最新的流水线结果
func OnRender[R comparable](fn func(result Result[R])) ContextOption[R] {
	return func(c *Context[R]) {
		c.callbacks.onRender = fn
	}
}

type callbacks[R comparable] struct {
	onSortChange      func(columnID string, direction SortDirection)
	onPageChange      func(page int)
	onPageSizeChange  func(pageSize int)
	onRowSelect       func(row R, selected bool)
	onSelectionChange func(selected []R)
	onFilterChange    func(filters Filters)
	onRender          func(result Result[R])
}
