package table

import (
	"maps"
	"slices"
	"strings"

	"github.com/hatlonely/tablex/table/query"
)

// Filters 当前生效的过滤条件
type Filters struct {
	// Global 全局搜索词
	Global string
	// Columns 按列 id 设置的查询条件
	Columns map[string]query.Query
	// Custom 是否设置了自定义过滤函数
	Custom bool
}

// IsEmpty 没有任何过滤条件
func (f Filters) IsEmpty() bool {
	return strings.TrimSpace(f.Global) == "" && len(f.Columns) == 0 && !f.Custom
}

// filterState Context 的过滤条件，所有条件同时满足才保留
type filterState[R any] struct {
	global  string
	columns map[string]query.Query
	custom  Predicate[R]
	version uint64
}

func (f *filterState[R]) setGlobal(term string) bool {
	if f.global == term {
		return false
	}
	f.global = term
	f.version++
	return true
}

func (f *filterState[R]) setColumn(columnID string, q query.Query) bool {
	if q == nil {
		if _, ok := f.columns[columnID]; !ok {
			return false
		}
		delete(f.columns, columnID)
	} else {
		if f.columns == nil {
			f.columns = map[string]query.Query{}
		}
		f.columns[columnID] = q
	}
	f.version++
	return true
}

func (f *filterState[R]) setCustom(pred Predicate[R]) bool {
	if pred == nil && f.custom == nil {
		return false
	}
	f.custom = pred
	f.version++
	return true
}

func (f *filterState[R]) clear() bool {
	if f.global == "" && len(f.columns) == 0 && f.custom == nil {
		return false
	}
	f.global = ""
	f.columns = nil
	f.custom = nil
	f.version++
	return true
}

func (f *filterState[R]) filters() Filters {
	return Filters{
		Global:  f.global,
		Columns: maps.Clone(f.columns),
		Custom:  f.custom != nil,
	}
}

// predicate 组合所有条件，列条件按列 id 排序后依次求值
func (f *filterState[R]) predicate(columns *Columns[R]) Predicate[R] {
	preds := []Predicate[R]{GlobalSearch(f.global, columns)}
	for _, id := range slices.Sorted(maps.Keys(f.columns)) {
		preds = append(preds, QueryFilter[R](f.columns[id], columns))
	}
	preds = append(preds, f.custom)
	return All(preds...)
}
