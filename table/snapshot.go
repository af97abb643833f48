package table

import (
	"strings"

	"github.com/pkg/errors"
)

// Snapshot 表状态的只读快照，供渲染层或宿主桥接层使用
// 选择集合按引用识别，快照中只保留数量
type Snapshot struct {
	SortColumn    string `json:"sortColumn,omitempty" msgpack:"sortColumn,omitempty" bson:"sortColumn,omitempty"`
	SortDirection string `json:"sortDirection" msgpack:"sortDirection" bson:"sortDirection"`
	CurrentPage   int    `json:"currentPage" msgpack:"currentPage" bson:"currentPage"`
	PageSize      int    `json:"pageSize" msgpack:"pageSize" bson:"pageSize"`
	TotalItems    int    `json:"totalItems" msgpack:"totalItems" bson:"totalItems"`
	TotalPages    int    `json:"totalPages" msgpack:"totalPages" bson:"totalPages"`
	StartIndex    int    `json:"startIndex" msgpack:"startIndex" bson:"startIndex"`
	EndIndex      int    `json:"endIndex" msgpack:"endIndex" bson:"endIndex"`
	CanGoNext     bool   `json:"canGoNext" msgpack:"canGoNext" bson:"canGoNext"`
	CanGoPrevious bool   `json:"canGoPrevious" msgpack:"canGoPrevious" bson:"canGoPrevious"`
	SelectedCount int    `json:"selectedCount" msgpack:"selectedCount" bson:"selectedCount"`
	SelectionMode string `json:"selectionMode" msgpack:"selectionMode" bson:"selectionMode"`
}

// Snapshot 生成当前状态的快照
func (s *State[R]) Snapshot() Snapshot {
	p := s.pagination
	return Snapshot{
		SortColumn:    s.sorting.SortedColumnID(),
		SortDirection: s.sorting.SortDirection().String(),
		CurrentPage:   p.CurrentPage(),
		PageSize:      p.PageSize(),
		TotalItems:    p.TotalItems(),
		TotalPages:    p.TotalPages(),
		StartIndex:    p.StartIndex(),
		EndIndex:      p.EndIndex(),
		CanGoNext:     p.CanGoNext(),
		CanGoPrevious: p.CanGoPrevious(),
		SelectedCount: s.selection.Count(),
		SelectionMode: s.selection.Mode().String(),
	}
}

// ApplySnapshot 从快照恢复排序、分页位置和选择模式，PageSize 为 0 或 SelectionMode 为空时保持不变
// 先校验全部字段，任何字段非法时不做任何修改
func (s *State[R]) ApplySnapshot(snap Snapshot) error {
	direction, err := ParseSortDirection(snap.SortDirection)
	if err != nil {
		return err
	}
	if direction != SortNone && strings.TrimSpace(snap.SortColumn) == "" {
		return errors.Wrap(ErrInvalidArgument, "sort direction without sort column")
	}
	mode := s.selection.Mode()
	if snap.SelectionMode != "" {
		if mode, err = ParseSelectionMode(snap.SelectionMode); err != nil {
			return err
		}
	}
	if snap.PageSize < 0 {
		return errors.Wrapf(ErrInvalidArgument, "page size must be >= 1, got %d", snap.PageSize)
	}

	if direction == SortNone {
		s.sorting.ClearSort()
	} else if err := s.sorting.SetSort(snap.SortColumn, direction); err != nil {
		return err
	}
	if snap.PageSize > 0 && snap.PageSize != s.pagination.PageSize() {
		_ = s.pagination.SetPageSize(snap.PageSize)
	}
	// 总条数由下一次流水线重新计算，这里只是为了让页码不被提前截断
	s.pagination.SetTotalItems(snap.TotalItems)
	s.pagination.GoToPage(snap.CurrentPage)
	s.selection.SetMode(mode)
	return nil
}
