package table

import (
	"cmp"
	"strings"

	"github.com/hatlonely/tablex/table/value"
	"github.com/pkg/errors"
)

// Column 类型擦除之后的列，流水线只通过这个接口访问和比较数据
type Column[R any] interface {
	ID() string
	Header() string
	Sortable() bool
	// Filterable 是否参与全局搜索
	Filterable() bool
	// Value 读取行在该列上的值，访问器 panic 时返回 ErrAccessor
	Value(row R) (any, error)
	// Compare 比较两个由 Value 返回的值
	Compare(a, b any) int
	// Format 返回值的展示文本
	Format(v any) string
}

// ColumnDef 带类型的列定义，R 为行类型，V 为列值类型
//
//	col := table.NewColumn("name", func(u *User) string { return u.Name }).WithHeader("Name")
type ColumnDef[R any, V any] struct {
	id         string
	header     string
	accessor   func(R) V
	comparator func(a, b V) int
	formatter  func(V) string
	sortable   bool
	filterable bool
}

// NewColumn 创建列，默认可排序、可搜索，使用 value.Compare 的自然顺序
func NewColumn[R any, V any](id string, accessor func(R) V) *ColumnDef[R, V] {
	return &ColumnDef[R, V]{
		id:         id,
		header:     id,
		accessor:   accessor,
		sortable:   true,
		filterable: true,
	}
}

// NewOrderedColumn 创建值类型有序的列，直接使用 cmp.Compare
func NewOrderedColumn[R any, V cmp.Ordered](id string, accessor func(R) V) *ColumnDef[R, V] {
	return NewColumn(id, accessor).WithComparator(cmp.Compare[V])
}

func (c *ColumnDef[R, V]) WithHeader(header string) *ColumnDef[R, V] {
	c.header = header
	return c
}

// WithComparator 自定义排序，需要是全序
func (c *ColumnDef[R, V]) WithComparator(comparator func(a, b V) int) *ColumnDef[R, V] {
	c.comparator = comparator
	return c
}

func (c *ColumnDef[R, V]) WithFormatter(formatter func(V) string) *ColumnDef[R, V] {
	c.formatter = formatter
	return c
}

func (c *ColumnDef[R, V]) WithSortable(sortable bool) *ColumnDef[R, V] {
	c.sortable = sortable
	return c
}

func (c *ColumnDef[R, V]) WithFilterable(filterable bool) *ColumnDef[R, V] {
	c.filterable = filterable
	return c
}

func (c *ColumnDef[R, V]) ID() string       { return c.id }
func (c *ColumnDef[R, V]) Header() string   { return c.header }
func (c *ColumnDef[R, V]) Sortable() bool   { return c.sortable }
func (c *ColumnDef[R, V]) Filterable() bool { return c.filterable }

// Validate 列 id 不能为空，访问器不能为 nil
func (c *ColumnDef[R, V]) Validate() error {
	if strings.TrimSpace(c.id) == "" {
		return errors.Wrap(ErrInvalidArgument, "column id is empty")
	}
	if c.accessor == nil {
		return errors.Wrapf(ErrInvalidArgument, "column %s has no accessor", c.id)
	}
	return nil
}

func (c *ColumnDef[R, V]) Value(row R) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = errors.Wrapf(ErrAccessor, "column %s: %v", c.id, r)
		}
	}()
	return c.accessor(row), nil
}

// TypedValue 不经过类型擦除直接读取列值
func (c *ColumnDef[R, V]) TypedValue(row R) (V, error) {
	var zero V
	v, err := c.Value(row)
	if err != nil {
		return zero, err
	}
	typed, _ := v.(V)
	return typed, nil
}

func (c *ColumnDef[R, V]) Compare(a, b any) int {
	if c.comparator != nil {
		av, aok := a.(V)
		bv, bok := b.(V)
		if aok && bok {
			return c.comparator(av, bv)
		}
	}
	return value.Compare(a, b)
}

func (c *ColumnDef[R, V]) Format(v any) string {
	if c.formatter != nil {
		if typed, ok := v.(V); ok {
			return c.formatter(typed)
		}
	}
	return value.ToString(v)
}

// Columns 一张表的有序列集合，创建之后只读
type Columns[R any] struct {
	list  []Column[R]
	index map[string]int
}

// NewColumns 创建列集合，列 id 为空或者重复时返回错误
func NewColumns[R any](columns ...Column[R]) (*Columns[R], error) {
	cs := &Columns[R]{
		list:  make([]Column[R], 0, len(columns)),
		index: make(map[string]int, len(columns)),
	}
	for i, column := range columns {
		if value.IsNil(column) {
			return nil, errors.Wrapf(ErrInvalidArgument, "column %d is nil", i)
		}
		if v, ok := column.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		} else if strings.TrimSpace(column.ID()) == "" {
			return nil, errors.Wrapf(ErrInvalidArgument, "column %d id is empty", i)
		}
		if _, dup := cs.index[column.ID()]; dup {
			return nil, errors.Wrapf(ErrDuplicateColumn, "column %s", column.ID())
		}
		cs.index[column.ID()] = len(cs.list)
		cs.list = append(cs.list, column)
	}
	return cs, nil
}

// MustColumns 同 NewColumns，出错时 panic
func MustColumns[R any](columns ...Column[R]) *Columns[R] {
	cs, err := NewColumns(columns...)
	if err != nil {
		panic(err)
	}
	return cs
}

// Find 按 id 查找列
func (cs *Columns[R]) Find(id string) (Column[R], bool) {
	if cs == nil {
		return nil, false
	}
	i, ok := cs.index[id]
	if !ok {
		return nil, false
	}
	return cs.list[i], true
}

func (cs *Columns[R]) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.list)
}

// All 按注册顺序返回全部列
func (cs *Columns[R]) All() []Column[R] {
	if cs == nil {
		return nil
	}
	return append([]Column[R](nil), cs.list...)
}

func (cs *Columns[R]) IDs() []string {
	ids := make([]string, 0, cs.Len())
	for _, column := range cs.All() {
		ids = append(ids, column.ID())
	}
	return ids
}

// Subset 按给定顺序返回列，未知 id 被忽略，用于只渲染部分列
func (cs *Columns[R]) Subset(ids ...string) []Column[R] {
	subset := make([]Column[R], 0, len(ids))
	for _, id := range ids {
		if column, ok := cs.Find(id); ok {
			subset = append(subset, column)
		}
	}
	return subset
}
