package table

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SortDirection 排序方向
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (d SortDirection) String() string {
	switch d {
	case SortNone:
		return "none"
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// ParseSortDirection 解析 none/asc/desc（也接受 ascending/descending）
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return SortNone, errors.Wrapf(ErrInvalidArgument, "unknown sort direction %q", s)
}

func (d SortDirection) valid() bool {
	return d >= SortNone && d <= SortDescending
}

// next 同一列上的三态循环 none -> asc -> desc -> none
func (d SortDirection) next() SortDirection {
	switch d {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// SortingState 单列排序状态
// 不变式：direction == SortNone 当且仅当 columnID == ""
type SortingState struct {
	columnID  string
	direction SortDirection
}

// NewSortingState 创建未排序的状态
func NewSortingState() *SortingState {
	return &SortingState{}
}

// SortedColumnID 当前排序列，未排序时为空字符串
func (s *SortingState) SortedColumnID() string {
	return s.columnID
}

// SortDirection 当前排序方向
func (s *SortingState) SortDirection() SortDirection {
	return s.direction
}

// IsActive 是否存在生效的排序
func (s *SortingState) IsActive() bool {
	return s.direction != SortNone
}

// SetSort 直接设置排序，direction 为 SortNone 时清空排序列
func (s *SortingState) SetSort(columnID string, direction SortDirection) error {
	if strings.TrimSpace(columnID) == "" {
		return errors.Wrap(ErrInvalidArgument, "column id is empty")
	}
	if !direction.valid() {
		return errors.Wrapf(ErrInvalidArgument, "invalid sort direction %d", int(direction))
	}

	if direction == SortNone {
		s.ClearSort()
		return nil
	}
	s.columnID = columnID
	s.direction = direction
	return nil
}

// SetSortColumn 设置排序列，方向默认为升序
func (s *SortingState) SetSortColumn(columnID string) error {
	return s.SetSort(columnID, SortAscending)
}

// ToggleSort 三态切换
// 同一列按 none -> asc -> desc -> none 循环，切换到其他列时总是从升序开始
func (s *SortingState) ToggleSort(columnID string) error {
	if strings.TrimSpace(columnID) == "" {
		return errors.Wrap(ErrInvalidArgument, "column id is empty")
	}

	if s.columnID != columnID {
		s.columnID = columnID
		s.direction = SortAscending
		return nil
	}

	s.direction = s.direction.next()
	if s.direction == SortNone {
		s.columnID = ""
	}
	return nil
}

// ClearSort 重置为未排序
func (s *SortingState) ClearSort() {
	s.columnID = ""
	s.direction = SortNone
}

// IsSorted 指定列是否为当前排序列
func (s *SortingState) IsSorted(columnID string) bool {
	return s.direction != SortNone && s.columnID == columnID
}

// Direction 指定列的排序方向，非当前排序列返回 SortNone
func (s *SortingState) Direction(columnID string) SortDirection {
	if !s.IsSorted(columnID) {
		return SortNone
	}
	return s.direction
}
