package table

import (
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/hatlonely/tablex/log"
	"github.com/hatlonely/tablex/log/logger"
	"github.com/hatlonely/tablex/table/aggregation"
	"github.com/hatlonely/tablex/table/query"
	"github.com/pkg/errors"
)

// Context 一张表的交互入口，持有数据、列、状态和过滤条件，每次修改后重新执行流水线
//
// 受控模式下状态由调用方持有（WithControlledState），非受控模式下由 Context 自己创建；
// 两种模式走同一条修改路径，区别只在于修改之后是否调用 onStateChange。
//
// 回调在修改方法内部同步调用，顺序为：排序、每页条数、页码、过滤、单行选择、选择集合、
// onStateChange、OnRender。没有产生任何变化的修改不触发回调。
//
// Context 不是并发安全的，所有方法应在同一个 goroutine 上调用。
type Context[R comparable] struct {
	id              string
	name            string
	columns         *Columns[R]
	state           *State[R]
	controlled      bool
	onStateChange   func(state *State[R])
	rows            []R
	rowsVersion     uint64
	filters         filterState[R]
	result          Result[R]
	pageSizeOptions []int
	callbacks       callbacks[R]

	logger   logger.Logger
	closer   io.Closer
	observer *observer

	// 本次修改涉及的单行，用于 OnRowSelect
	pendingRow *rowEvent[R]
}

type rowEvent[R comparable] struct {
	row      R
	selected bool
}

// checkpoint 一次修改前后用于比较的状态
type checkpoint struct {
	snapshot  Snapshot
	selection uint64
	filters   uint64
	rows      uint64
}

// NewContextWithOptions 创建表上下文，options 为 nil 时使用默认配置
func NewContextWithOptions[R comparable](options *Options, columns *Columns[R], opts ...ContextOption[R]) (*Context[R], error) {
	if columns == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "columns is nil")
	}

	options, err := prepareOptions(options)
	if err != nil {
		return nil, err
	}
	mode, err := ParseSelectionMode(options.SelectionMode)
	if err != nil {
		return nil, err
	}

	c := &Context[R]{
		id:              uuid.NewString(),
		name:            options.Name,
		columns:         columns,
		pageSizeOptions: slices.Clone(options.PageSizeOptions),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.controlled && c.state == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "controlled state is nil")
	}
	if c.state == nil {
		c.state = NewState[R](options.PageSize, mode)
	}

	if c.logger == nil {
		l, err := newLogger(options)
		if err != nil {
			return nil, err
		}
		c.logger = l
		if closer, ok := l.(io.Closer); ok {
			c.closer = closer
		}
	}
	c.logger = c.logger.WithGroup("table").With("component", c.name, "table", c.id)
	c.observer = newObserver(options, c.id, c.logger)

	c.refresh()
	return c, nil
}

func newLogger(options *Options) (logger.Logger, error) {
	if !options.EnableLogging {
		return log.Discard(), nil
	}
	l, err := log.NewLoggerWithOptions(options.Logger)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create logger")
	}
	return l, nil
}

// Close 释放 Context 自己创建的日志输出器
func (c *Context[R]) Close() error {
	if c.closer == nil {
		return nil
	}
	closer := c.closer
	c.closer = nil
	return closer.Close()
}

// ToggleSort 在 columnID 上循环切换排序方向，切换到其他列时从升序开始，并回到第一页
// 空的、不存在的或者不可排序的列被忽略
func (c *Context[R]) ToggleSort(columnID string) {
	if !c.sortable(columnID) {
		return
	}
	_ = c.mutate("toggle_sort", func() error {
		if err := c.state.Sorting().ToggleSort(columnID); err != nil {
			return err
		}
		c.state.Pagination().FirstPage()
		return nil
	})
}

// SetSort 设置排序列和方向，SortNone 等同于 ClearSort
// 非法的方向返回 ErrInvalidArgument，不可用的列被忽略
func (c *Context[R]) SetSort(columnID string, direction SortDirection) error {
	if !direction.valid() {
		return errors.Wrapf(ErrInvalidArgument, "invalid sort direction %d", int(direction))
	}
	if direction == SortNone {
		c.ClearSort()
		return nil
	}
	if !c.sortable(columnID) {
		return nil
	}
	sorting := c.state.Sorting()
	if sorting.IsSorted(columnID) && sorting.SortDirection() == direction {
		return nil
	}
	return c.mutate("set_sort", func() error {
		if err := sorting.SetSort(columnID, direction); err != nil {
			return err
		}
		c.state.Pagination().FirstPage()
		return nil
	})
}

func (c *Context[R]) ClearSort() {
	if !c.state.Sorting().IsActive() {
		return
	}
	_ = c.mutate("clear_sort", func() error {
		c.state.Sorting().ClearSort()
		c.state.Pagination().FirstPage()
		return nil
	})
}

// sortable 排序列来自界面状态，可能已经过期，这里只记录调试日志
func (c *Context[R]) sortable(columnID string) bool {
	if strings.TrimSpace(columnID) == "" {
		c.logger.Debug("ignore sort on blank column id")
		return false
	}
	column, ok := c.columns.Find(columnID)
	if !ok {
		c.logger.Debug("ignore sort on unknown column", "column", columnID)
		return false
	}
	if !column.Sortable() {
		c.logger.Debug("ignore sort on unsortable column", "column", columnID)
		return false
	}
	return true
}

// ToggleRowSelection 切换一行的选中状态，row 为 nil 时返回 ErrInvalidArgument
func (c *Context[R]) ToggleRowSelection(row R) error {
	return c.mutate("toggle_row_selection", func() error {
		selection := c.state.Selection()
		if err := selection.Toggle(row); err != nil {
			return err
		}
		c.pendingRow = &rowEvent[R]{row: row, selected: selection.IsSelected(row)}
		return nil
	})
}

// SelectRow 选中或取消选中一行
func (c *Context[R]) SelectRow(row R, selected bool) error {
	return c.mutate("select_row", func() error {
		selection := c.state.Selection()
		var err error
		if selected {
			err = selection.Select(row)
		} else {
			err = selection.Deselect(row)
		}
		if err != nil {
			return err
		}
		c.pendingRow = &rowEvent[R]{row: row, selected: selection.IsSelected(row)}
		return nil
	})
}

// SelectAllOnPage 选中或取消选中当前页的所有行，选中只在 multiple 模式下生效
func (c *Context[R]) SelectAllOnPage(selected bool) error {
	return c.mutate("select_all_on_page", func() error {
		return c.state.Selection().SetSelection(c.result.Page, selected)
	})
}

// SelectAllFiltered 选中或取消选中过滤之后的所有行（所有页），选中只在 multiple 模式下生效
func (c *Context[R]) SelectAllFiltered(selected bool) error {
	return c.mutate("select_all_filtered", func() error {
		return c.state.Selection().SetSelection(c.result.Filtered, selected)
	})
}

func (c *Context[R]) ClearSelection() {
	_ = c.mutate("clear_selection", func() error {
		c.state.Selection().Clear()
		return nil
	})
}

// SetSelectionMode 切换选择模式，single 只保留最近选中的一行，none 清空选择
func (c *Context[R]) SetSelectionMode(mode SelectionMode) error {
	if !mode.valid() {
		return errors.Wrapf(ErrInvalidArgument, "invalid selection mode %d", int(mode))
	}
	return c.mutate("set_selection_mode", func() error {
		c.state.Selection().SetMode(mode)
		return nil
	})
}

// GoToPage 跳转到指定页，超出范围的页码被截断
func (c *Context[R]) GoToPage(page int) {
	_ = c.mutate("go_to_page", func() error {
		c.state.Pagination().GoToPage(page)
		return nil
	})
}

func (c *Context[R]) NextPage() {
	_ = c.mutate("next_page", func() error {
		c.state.Pagination().NextPage()
		return nil
	})
}

func (c *Context[R]) PreviousPage() {
	_ = c.mutate("previous_page", func() error {
		c.state.Pagination().PreviousPage()
		return nil
	})
}

func (c *Context[R]) FirstPage() {
	_ = c.mutate("first_page", func() error {
		c.state.Pagination().FirstPage()
		return nil
	})
}

func (c *Context[R]) LastPage() {
	_ = c.mutate("last_page", func() error {
		c.state.Pagination().LastPage()
		return nil
	})
}

// ChangePageSize 修改每页条数并回到第一页，pageSize 小于 1 时返回 ErrInvalidArgument
func (c *Context[R]) ChangePageSize(pageSize int) error {
	return c.mutate("change_page_size", func() error {
		return c.state.Pagination().SetPageSize(pageSize)
	})
}

// SetRows 替换数据，Context 只保存 rows 的引用，不会修改它
// 页码按新的总条数截断，已选中的行保持不变
func (c *Context[R]) SetRows(rows []R) {
	_ = c.mutate("set_rows", func() error {
		c.rows = rows
		c.rowsVersion++
		return nil
	})
}

// Refresh 行的内容被原地修改之后重新执行流水线
func (c *Context[R]) Refresh() {
	_ = c.mutate("refresh", func() error {
		c.rowsVersion++
		return nil
	})
}

// SetGlobalFilter 设置全局搜索词，在所有可搜索列的展示文本中做忽略大小写的子串匹配，空串表示不过滤
func (c *Context[R]) SetGlobalFilter(term string) {
	_ = c.mutate("set_global_filter", func() error {
		if c.filters.setGlobal(term) {
			c.state.Pagination().FirstPage()
		}
		return nil
	})
}

// SetColumnFilter 为列设置查询条件，q 为 nil 时删除该列的条件
// 查询按字段名（列 id）对行求值，列不存在时返回 ErrColumnNotFound
func (c *Context[R]) SetColumnFilter(columnID string, q query.Query) error {
	if _, ok := c.columns.Find(columnID); !ok {
		return errors.Wrapf(ErrColumnNotFound, "column %s", columnID)
	}
	return c.mutate("set_column_filter", func() error {
		if c.filters.setColumn(columnID, q) {
			c.state.Pagination().FirstPage()
		}
		return nil
	})
}

// SetFilter 设置自定义过滤函数，与全局搜索和列条件同时生效，nil 表示删除
func (c *Context[R]) SetFilter(pred Predicate[R]) {
	_ = c.mutate("set_filter", func() error {
		if c.filters.setCustom(pred) {
			c.state.Pagination().FirstPage()
		}
		return nil
	})
}

func (c *Context[R]) ClearFilters() {
	_ = c.mutate("clear_filters", func() error {
		if c.filters.clear() {
			c.state.Pagination().FirstPage()
		}
		return nil
	})
}

// SetState 受控模式下重新提供状态，非受控模式返回 ErrInvalidArgument
func (c *Context[R]) SetState(state *State[R]) error {
	if state == nil {
		return errors.Wrap(ErrInvalidArgument, "state is nil")
	}
	if !c.controlled {
		return errors.Wrap(ErrInvalidArgument, "state of an uncontrolled table is owned by the table")
	}
	if state == c.state {
		return nil
	}
	return c.mutate("set_state", func() error {
		c.state = state
		return nil
	})
}

// ApplyOptions 应用新的配置，只有每页条数、可选条数和选择模式会生效
// 名字、日志和观测相关的配置只在创建时读取
func (c *Context[R]) ApplyOptions(options *Options) error {
	options, err := prepareOptions(options)
	if err != nil {
		return err
	}
	mode, err := ParseSelectionMode(options.SelectionMode)
	if err != nil {
		return err
	}
	return c.mutate("apply_options", func() error {
		c.pageSizeOptions = slices.Clone(options.PageSizeOptions)
		if options.PageSize != c.state.Pagination().PageSize() {
			if err := c.state.Pagination().SetPageSize(options.PageSize); err != nil {
				return err
			}
		}
		if mode != c.state.Selection().Mode() {
			c.state.Selection().SetMode(mode)
		}
		return nil
	})
}

// mutate 执行一次修改：修改子状态、重新执行流水线、按变化触发回调
func (c *Context[R]) mutate(operation string, fn func() error) error {
	return c.observer.observe(operation, func() error {
		before := c.checkpoint()
		c.pendingRow = nil
		if err := fn(); err != nil {
			return err
		}
		c.refresh()
		c.notify(before, c.checkpoint())
		return nil
	})
}

func (c *Context[R]) checkpoint() checkpoint {
	return checkpoint{
		snapshot:  c.state.Snapshot(),
		selection: c.state.Selection().Version(),
		filters:   c.filters.version,
		rows:      c.rowsVersion,
	}
}

func (c *Context[R]) refresh() {
	if sorting := c.state.Sorting(); sorting.IsActive() {
		if _, ok := c.columns.Find(sorting.SortedColumnID()); !ok {
			c.logger.Debug("sort column not found, rows keep input order", "column", sorting.SortedColumnID())
		}
	}

	c.result = Process(c.rows, c.state, c.columns, c.filters.predicate(c.columns))

	if c.result.DroppedRows > 0 {
		c.logger.Debug("rows dropped by filter errors", "rows", c.result.DroppedRows)
	}
	if c.result.UnsortedRows > 0 {
		c.logger.Debug("rows without sort key moved to the end", "rows", c.result.UnsortedRows)
	}
	c.observer.observeRows(len(c.rows), c.result.TotalItems, len(c.result.Page))
}

func (c *Context[R]) notify(before, after checkpoint) {
	if before == after {
		return
	}

	b, a := before.snapshot, after.snapshot
	cb := c.callbacks
	if (b.SortColumn != a.SortColumn || b.SortDirection != a.SortDirection) && cb.onSortChange != nil {
		sorting := c.state.Sorting()
		cb.onSortChange(sorting.SortedColumnID(), sorting.SortDirection())
	}
	if b.PageSize != a.PageSize && cb.onPageSizeChange != nil {
		cb.onPageSizeChange(a.PageSize)
	}
	if b.CurrentPage != a.CurrentPage && cb.onPageChange != nil {
		cb.onPageChange(a.CurrentPage)
	}
	if before.filters != after.filters && cb.onFilterChange != nil {
		cb.onFilterChange(c.filters.filters())
	}
	if before.selection != after.selection {
		if c.pendingRow != nil && cb.onRowSelect != nil {
			cb.onRowSelect(c.pendingRow.row, c.pendingRow.selected)
		}
		if cb.onSelectionChange != nil {
			cb.onSelectionChange(c.state.Selection().SelectedRows())
		}
	}
	c.pendingRow = nil

	stateChanged := b != a || before.selection != after.selection
	if stateChanged && c.controlled && c.onStateChange != nil {
		c.onStateChange(c.state)
		// 调用方可以在回调里否决或改写状态，结果需要和最终状态一致，但不再重复通知
		if c.state.Snapshot() != a || c.state.Selection().Version() != after.selection {
			c.logger.Debug("state changed by onStateChange, rerun pipeline")
			c.refresh()
		}
	}
	if cb.onRender != nil {
		cb.onRender(c.result)
	}
}

// ProcessedData 当前页的数据
func (c *Context[R]) ProcessedData() []R {
	return c.result.Page
}

// FilteredData 过滤并排序之后、分页之前的数据
func (c *Context[R]) FilteredData() []R {
	return c.result.Filtered
}

func (c *Context[R]) Result() Result[R] {
	return c.result
}

func (c *Context[R]) Rows() []R {
	return c.rows
}

func (c *Context[R]) Columns() *Columns[R] {
	return c.columns
}

func (c *Context[R]) State() *State[R] {
	return c.state
}

func (c *Context[R]) Filters() Filters {
	return c.filters.filters()
}

func (c *Context[R]) IsRowSelected(row R) bool {
	return c.state.Selection().IsSelected(row)
}

// AreAllOnPageSelected 当前页非空且全部被选中
func (c *Context[R]) AreAllOnPageSelected() bool {
	return c.state.Selection().AreAllSelected(c.result.Page)
}

// AreSomeOnPageSelected 当前页部分行被选中，用于全选框的半选状态
func (c *Context[R]) AreSomeOnPageSelected() bool {
	return c.state.Selection().AreSomeSelected(c.result.Page)
}

// SortDirection 列的排序方向，未按该列排序时为 SortNone
func (c *Context[R]) SortDirection(columnID string) SortDirection {
	return c.state.Sorting().Direction(columnID)
}

func (c *Context[R]) IsSortedBy(columnID string) bool {
	return c.state.Sorting().IsSorted(columnID)
}

func (c *Context[R]) CanGoNext() bool {
	return c.state.Pagination().CanGoNext()
}

func (c *Context[R]) CanGoPrevious() bool {
	return c.state.Pagination().CanGoPrevious()
}

// PageWindow 分页按钮的页码，0 表示省略号
func (c *Context[R]) PageWindow(siblings int) []int {
	return c.state.Pagination().PageWindow(siblings)
}

func (c *Context[R]) PageSizeOptions() []int {
	return slices.Clone(c.pageSizeOptions)
}

func (c *Context[R]) IsControlled() bool {
	return c.controlled
}

func (c *Context[R]) ID() string {
	return c.id
}

func (c *Context[R]) Name() string {
	return c.name
}

func (c *Context[R]) Snapshot() Snapshot {
	return c.state.Snapshot()
}

// Aggregate 在过滤之后的全部行（所有页）上计算聚合，字段名为列 id
func (c *Context[R]) Aggregate(aggs ...aggregation.Aggregation) (*aggregation.Result, error) {
	records := make([]query.Record, len(c.result.Filtered))
	for i, row := range c.result.Filtered {
		records[i] = &rowRecord[R]{row: row, columns: c.columns}
	}
	return aggregation.Aggregate(records, aggs...)
}

// ApplySnapshot 从快照恢复排序、分页位置和选择模式
func (c *Context[R]) ApplySnapshot(snap Snapshot) error {
	return c.mutate("apply_snapshot", func() error {
		return c.state.ApplySnapshot(snap)
	})
}
