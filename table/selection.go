package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hatlonely/tablex/table/value"
	"github.com/pkg/errors"
)

// SelectionMode 行选择模式
type SelectionMode int

const (
	SelectionNone SelectionMode = iota
	SelectionSingle
	SelectionMultiple
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionNone:
		return "none"
	case SelectionSingle:
		return "single"
	case SelectionMultiple:
		return "multiple"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

func (m SelectionMode) valid() bool {
	return m >= SelectionNone && m <= SelectionMultiple
}

// ParseSelectionMode 解析 none/single/multiple
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SelectionNone, nil
	case "single":
		return SelectionSingle, nil
	case "multiple", "multi":
		return SelectionMultiple, nil
	}
	return SelectionNone, errors.Wrapf(ErrInvalidArgument, "unknown selection mode %q", s)
}

// SelectionState 行选择状态，按引用（== 比较）识别行
// 行类型一般是指针，选择期间调用方不能替换行的引用，否则 IsSelected 会失去同步
type SelectionState[R comparable] struct {
	mode     SelectionMode
	selected map[R]struct{}
	order    []R
	version  uint64
}

func NewSelectionState[R comparable](mode SelectionMode) *SelectionState[R] {
	return &SelectionState[R]{
		mode:     mode,
		selected: make(map[R]struct{}),
	}
}

func (s *SelectionState[R]) Mode() SelectionMode { return s.mode }

// Count 已选中的行数
func (s *SelectionState[R]) Count() int { return len(s.order) }

// Version 每次选中集合发生变化时递增
func (s *SelectionState[R]) Version() uint64 { return s.version }

// SelectedRows 按选中先后顺序返回已选中的行
func (s *SelectionState[R]) SelectedRows() []R {
	return slices.Clone(s.order)
}

// SetMode 切换选择模式，single 只保留最近选中的一行，none 清空选择
func (s *SelectionState[R]) SetMode(mode SelectionMode) {
	s.mode = mode
	switch mode {
	case SelectionNone:
		s.Clear()
	case SelectionSingle:
		if len(s.order) > 1 {
			last := s.order[len(s.order)-1]
			s.reset()
			s.add(last)
		}
	}
}

// Select 选中一行，none 模式下忽略，single 模式下替换之前的选择
func (s *SelectionState[R]) Select(row R) error {
	if err := checkRow(row); err != nil {
		return err
	}
	s.selectRow(row)
	return nil
}

// Deselect 取消选中一行
func (s *SelectionState[R]) Deselect(row R) error {
	if err := checkRow(row); err != nil {
		return err
	}
	s.remove(row)
	return nil
}

// Toggle 切换一行的选中状态
func (s *SelectionState[R]) Toggle(row R) error {
	if err := checkRow(row); err != nil {
		return err
	}
	if s.IsSelected(row) {
		s.remove(row)
	} else {
		s.selectRow(row)
	}
	return nil
}

// SelectAll 批量选中，只在 multiple 模式下生效
func (s *SelectionState[R]) SelectAll(rows []R) error {
	if err := checkRows(rows); err != nil {
		return err
	}
	if s.mode != SelectionMultiple {
		return nil
	}
	for _, row := range rows {
		s.add(row)
	}
	return nil
}

// DeselectAll 批量取消选中
func (s *SelectionState[R]) DeselectAll(rows []R) error {
	if err := checkRows(rows); err != nil {
		return err
	}
	for _, row := range rows {
		s.remove(row)
	}
	return nil
}

// SetSelection 批量设置 rows 的选中状态
func (s *SelectionState[R]) SetSelection(rows []R, selected bool) error {
	if selected {
		return s.SelectAll(rows)
	}
	return s.DeselectAll(rows)
}

// Clear 清空选择
func (s *SelectionState[R]) Clear() {
	if len(s.order) == 0 {
		return
	}
	s.reset()
}

func (s *SelectionState[R]) IsSelected(row R) bool {
	_, ok := s.selected[row]
	return ok
}

// AreAllSelected rows 非空且全部被选中
func (s *SelectionState[R]) AreAllSelected(rows []R) bool {
	if len(rows) == 0 {
		return false
	}
	return s.countIn(rows) == len(rows)
}

// AreSomeSelected rows 中有行被选中但没有全部选中，用于复选框的半选状态
func (s *SelectionState[R]) AreSomeSelected(rows []R) bool {
	n := s.countIn(rows)
	return n > 0 && n < len(rows)
}

// countIn 统计 rows 中被选中的行数，rows 中重复的行只计一次
func (s *SelectionState[R]) countIn(rows []R) int {
	if len(s.order) == 0 || len(rows) == 0 {
		return 0
	}
	seen := make(map[R]struct{}, len(rows))
	n := 0
	for _, row := range rows {
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		if s.IsSelected(row) {
			n++
		}
	}
	return n
}

func (s *SelectionState[R]) selectRow(row R) {
	switch s.mode {
	case SelectionNone:
		return
	case SelectionSingle:
		if s.IsSelected(row) {
			return
		}
		s.reset()
	}
	s.add(row)
}

func (s *SelectionState[R]) add(row R) {
	if s.IsSelected(row) {
		return
	}
	s.selected[row] = struct{}{}
	s.order = append(s.order, row)
	s.version++
}

func (s *SelectionState[R]) remove(row R) {
	if !s.IsSelected(row) {
		return
	}
	delete(s.selected, row)
	s.order = slices.DeleteFunc(s.order, func(r R) bool { return r == row })
	s.version++
}

func (s *SelectionState[R]) reset() {
	clear(s.selected)
	s.order = nil
	s.version++
}

func checkRow[R any](row R) error {
	if value.IsNil(row) {
		return errors.Wrap(ErrInvalidArgument, "row is nil")
	}
	return nil
}

func checkRows[R any](rows []R) error {
	for i, row := range rows {
		if value.IsNil(row) {
			return errors.Wrapf(ErrInvalidArgument, "row %d is nil", i)
		}
	}
	return nil
}
