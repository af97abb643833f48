package table

import "github.com/pkg/errors"

const DefaultPageSize = 10

// PaginationState 分页状态
// 不变式：1 <= currentPage <= max(TotalPages, 1)，任何修改之后都成立
type PaginationState struct {
	currentPage int
	pageSize    int
	totalItems  int
}

// NewPaginationState 创建分页状态，pageSize 小于 1 时使用 DefaultPageSize
func NewPaginationState(pageSize int) *PaginationState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &PaginationState{
		currentPage: 1,
		pageSize:    pageSize,
	}
}

func (p *PaginationState) CurrentPage() int { return p.currentPage }
func (p *PaginationState) PageSize() int    { return p.pageSize }
func (p *PaginationState) TotalItems() int  { return p.totalItems }

// TotalPages 总页数，没有数据时为 0
func (p *PaginationState) TotalPages() int {
	if p.totalItems == 0 {
		return 0
	}
	return (p.totalItems + p.pageSize - 1) / p.pageSize
}

// StartIndex 当前页第一条数据的下标（包含）
func (p *PaginationState) StartIndex() int {
	return (p.currentPage - 1) * p.pageSize
}

// EndIndex 当前页最后一条数据之后的下标（不包含）
func (p *PaginationState) EndIndex() int {
	return min(p.StartIndex()+p.pageSize, p.totalItems)
}

func (p *PaginationState) CanGoNext() bool {
	return p.currentPage < p.TotalPages()
}

func (p *PaginationState) CanGoPrevious() bool {
	return p.currentPage > 1
}

// NextPage 已经在最后一页时不做任何事
func (p *PaginationState) NextPage() {
	if p.CanGoNext() {
		p.currentPage++
	}
}

// PreviousPage 已经在第一页时不做任何事
func (p *PaginationState) PreviousPage() {
	if p.CanGoPrevious() {
		p.currentPage--
	}
}

func (p *PaginationState) FirstPage() {
	p.currentPage = 1
}

func (p *PaginationState) LastPage() {
	p.currentPage = p.maxPage()
}

// GoToPage 跳转到指定页，超出范围时截断到 [1, max(TotalPages, 1)]
func (p *PaginationState) GoToPage(page int) {
	p.currentPage = p.clamp(page)
}

// Reset 回到第一页
func (p *PaginationState) Reset() {
	p.currentPage = 1
}

// SetPageSize 修改每页条数并回到第一页
func (p *PaginationState) SetPageSize(pageSize int) error {
	if pageSize < 1 {
		return errors.Wrapf(ErrInvalidArgument, "page size must be >= 1, got %d", pageSize)
	}
	p.pageSize = pageSize
	p.currentPage = 1
	return nil
}

// SetTotalItems 由流水线在过滤之后调用，只会重新截断当前页
func (p *PaginationState) SetTotalItems(totalItems int) {
	p.totalItems = max(totalItems, 0)
	p.currentPage = p.clamp(p.currentPage)
}

// PageWindow 返回分页条上展示的页码，当前页两侧各保留 siblings 个页码，首尾页总是展示，0 表示省略号
//
//	TotalPages=10, currentPage=5, siblings=1 => [1 0 4 5 6 0 10]
func (p *PaginationState) PageWindow(siblings int) []int {
	total := p.TotalPages()
	if total == 0 {
		return nil
	}
	siblings = max(siblings, 0)

	// 首尾页 + 当前页 + 两侧 siblings + 两个省略号
	if total <= 2*siblings+5 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	left := max(p.currentPage-siblings, 2)
	right := min(p.currentPage+siblings, total-1)

	// 省略号只替换掉不止一个页码的空隙，否则直接展示那个页码
	pages := []int{1}
	if left > 3 {
		pages = append(pages, 0)
	} else {
		for i := 2; i < left; i++ {
			pages = append(pages, i)
		}
	}
	for i := left; i <= right; i++ {
		pages = append(pages, i)
	}
	if right < total-2 {
		pages = append(pages, 0)
	} else {
		for i := right + 1; i < total; i++ {
			pages = append(pages, i)
		}
	}
	return append(pages, total)
}

func (p *PaginationState) maxPage() int {
	return max(p.TotalPages(), 1)
}

func (p *PaginationState) clamp(page int) int {
	return min(max(page, 1), p.maxPage())
}
