package table

import (
	"slices"
	"strings"

	"github.com/hatlonely/tablex/table/query"
	"github.com/pkg/errors"
)

// Predicate 行过滤条件，返回错误或 panic 时视为该行不匹配
type Predicate[R any] func(row R) (bool, error)

// Result 一次流水线执行的结果
type Result[R any] struct {
	// Page 当前页的数据
	Page []R
	// Filtered 过滤并排序之后、分页之前的数据
	Filtered []R
	// TotalItems 过滤之后的总条数
	TotalItems int
	// DroppedRows 过滤时因为取值失败被当作不匹配的行数
	DroppedRows int
	// UnsortedRows 排序时取值失败、被排到末尾的行数
	UnsortedRows int
}

// Process 依次执行过滤、排序、分页，并更新 state 中的总条数
// rows 本身不会被修改
func Process[R comparable](rows []R, state *State[R], columns *Columns[R], pred Predicate[R]) Result[R] {
	filtered, dropped := filterRows(rows, pred)
	sorted, unsorted := sortRows(filtered, state.Sorting(), columns)
	page := Paginate(sorted, state.Pagination())
	return Result[R]{
		Page:         page,
		Filtered:     sorted,
		TotalItems:   len(sorted),
		DroppedRows:  dropped,
		UnsortedRows: unsorted,
	}
}

// Filter 保留满足 pred 的行，pred 为 nil 时保留全部
// 单行的错误或 panic 只影响该行，不会中断整个过滤
func Filter[R any](rows []R, pred Predicate[R]) []R {
	filtered, _ := filterRows(rows, pred)
	return filtered
}

// Sort 按当前排序列稳定排序，返回新的切片
// 未排序、排序列不存在或者不可排序时保持原顺序
func Sort[R any](rows []R, sorting *SortingState, columns *Columns[R]) []R {
	sorted, _ := sortRows(rows, sorting, columns)
	return sorted
}

// Paginate 用 rows 的长度更新总条数（会重新截断页码），返回当前页的数据
func Paginate[R any](rows []R, pagination *PaginationState) []R {
	pagination.SetTotalItems(len(rows))
	return slices.Clone(rows[pagination.StartIndex():pagination.EndIndex()])
}

// All 组合多个条件，全部满足才匹配，nil 条件被忽略
func All[R any](preds ...Predicate[R]) Predicate[R] {
	preds = slices.DeleteFunc(slices.Clone(preds), func(p Predicate[R]) bool { return p == nil })
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	return func(row R) (bool, error) {
		for _, pred := range preds {
			ok, err := pred(row)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// GlobalSearch 在所有可搜索列的展示文本中做忽略大小写的子串匹配，空搜索词返回 nil
func GlobalSearch[R any](term string, columns *Columns[R]) Predicate[R] {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	return QueryFilter[R](&query.MultiMatchQuery{Value: term}, columns)
}

// QueryFilter 用列 id 作为字段名对行求值
func QueryFilter[R any](q query.Query, columns *Columns[R]) Predicate[R] {
	if q == nil {
		return nil
	}
	return func(row R) (bool, error) {
		return q.Match(&rowRecord[R]{row: row, columns: columns})
	}
}

func filterRows[R any](rows []R, pred Predicate[R]) ([]R, int) {
	if pred == nil {
		return slices.Clone(rows), 0
	}
	filtered := make([]R, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		ok, err := safeMatch(pred, row)
		if err != nil {
			dropped++
			continue
		}
		if ok {
			filtered = append(filtered, row)
		}
	}
	return filtered, dropped
}

func safeMatch[R any](pred Predicate[R], row R) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = errors.Wrapf(ErrAccessor, "predicate panic: %v", r)
		}
	}()
	return pred(row)
}

type sortItem[R any] struct {
	row R
	key any
	ok  bool
}

// sortRows 每行只取一次排序键，取值失败的行在升序和降序下都排在最后
func sortRows[R any](rows []R, sorting *SortingState, columns *Columns[R]) (sorted []R, unsorted int) {
	sorted = slices.Clone(rows)
	if sorting == nil || !sorting.IsActive() || len(rows) < 2 {
		return sorted, 0
	}
	column, ok := columns.Find(sorting.SortedColumnID())
	if !ok || !column.Sortable() {
		return sorted, 0
	}

	items := make([]sortItem[R], len(rows))
	for i, row := range rows {
		key, err := column.Value(row)
		items[i] = sortItem[R]{row: row, key: key, ok: err == nil}
		if err != nil {
			unsorted++
		}
	}

	descending := sorting.SortDirection() == SortDescending
	if err := stableSort(items, column, descending); err != nil {
		// 比较函数 panic 时放弃排序，保持输入顺序
		return sorted, 0
	}

	for i, item := range items {
		sorted[i] = item.row
	}
	return sorted, unsorted
}

func stableSort[R any](items []sortItem[R], column Column[R], descending bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrAccessor, "column %s comparator panic: %v", column.ID(), r)
		}
	}()
	slices.SortStableFunc(items, func(a, b sortItem[R]) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		c := column.Compare(a.key, b.key)
		if descending {
			return -c
		}
		return c
	})
	return nil
}

// rowRecord 把一行适配成 query.Record，字段名为列 id
type rowRecord[R any] struct {
	row     R
	columns *Columns[R]
}

func (r *rowRecord[R]) Fields() []string {
	fields := make([]string, 0, r.columns.Len())
	for _, column := range r.columns.All() {
		if column.Filterable() {
			fields = append(fields, column.ID())
		}
	}
	return fields
}

func (r *rowRecord[R]) Field(name string) (any, bool, error) {
	column, ok := r.columns.Find(name)
	if !ok {
		return nil, false, nil
	}
	v, err := column.Value(r.row)
	if err != nil {
		return nil, true, err
	}
	return v, true, nil
}

func (r *rowRecord[R]) Text(name string) (string, bool, error) {
	column, ok := r.columns.Find(name)
	if !ok {
		return "", false, nil
	}
	v, err := column.Value(r.row)
	if err != nil {
		return "", true, err
	}
	return column.Format(v), true, nil
}
