package table

// State 一张表的全部状态，排序、分页和选择三个子状态
// 子状态在整个生命周期内原地修改，从不整体替换，持有 State 的调用方总能看到最新值
type State[R comparable] struct {
	sorting    *SortingState
	pagination *PaginationState
	selection  *SelectionState[R]
}

// NewState 创建表状态，pageSize 小于 1 时使用 DefaultPageSize
func NewState[R comparable](pageSize int, mode SelectionMode) *State[R] {
	return &State[R]{
		sorting:    NewSortingState(),
		pagination: NewPaginationState(pageSize),
		selection:  NewSelectionState[R](mode),
	}
}

func (s *State[R]) Sorting() *SortingState        { return s.sorting }
func (s *State[R]) Pagination() *PaginationState  { return s.pagination }
func (s *State[R]) Selection() *SelectionState[R] { return s.selection }
