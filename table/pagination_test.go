package table

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPaginationState(t *testing.T) {
	Convey("测试 PaginationState", t, func() {
		Convey("默认值", func() {
			p := NewPaginationState(0)
			So(p.PageSize(), ShouldEqual, DefaultPageSize)
			So(p.CurrentPage(), ShouldEqual, 1)
			So(p.TotalPages(), ShouldEqual, 0)
			So(p.StartIndex(), ShouldEqual, 0)
			So(p.EndIndex(), ShouldEqual, 0)
			So(p.CanGoNext(), ShouldBeFalse)
			So(p.CanGoPrevious(), ShouldBeFalse)
		})

		Convey("7 条数据每页 3 条", func() {
			p := NewPaginationState(3)
			p.SetTotalItems(7)
			So(p.TotalPages(), ShouldEqual, 3)

			p.GoToPage(3)
			So(p.StartIndex(), ShouldEqual, 6)
			So(p.EndIndex(), ShouldEqual, 7)
			So(p.CanGoNext(), ShouldBeFalse)
			So(p.CanGoPrevious(), ShouldBeTrue)

			p.NextPage()
			So(p.CurrentPage(), ShouldEqual, 3)

			p.PreviousPage()
			So(p.CurrentPage(), ShouldEqual, 2)
			p.FirstPage()
			p.PreviousPage()
			So(p.CurrentPage(), ShouldEqual, 1)
			p.LastPage()
			So(p.CurrentPage(), ShouldEqual, 3)
		})

		Convey("页码截断", func() {
			p := NewPaginationState(10)
			p.SetTotalItems(25)
			p.GoToPage(100)
			So(p.CurrentPage(), ShouldEqual, 3)
			p.GoToPage(-5)
			So(p.CurrentPage(), ShouldEqual, 1)

			p.GoToPage(3)
			p.SetTotalItems(11)
			So(p.CurrentPage(), ShouldEqual, 2)
			p.SetTotalItems(0)
			So(p.CurrentPage(), ShouldEqual, 1)
			p.SetTotalItems(-3)
			So(p.TotalItems(), ShouldEqual, 0)
		})

		Convey("修改每页条数回到第一页", func() {
			p := NewPaginationState(5)
			p.SetTotalItems(50)
			p.GoToPage(4)
			So(p.SetPageSize(5), ShouldBeNil)
			So(p.CurrentPage(), ShouldEqual, 1)

			p.GoToPage(4)
			err := p.SetPageSize(0)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			So(p.PageSize(), ShouldEqual, 5)
			So(p.CurrentPage(), ShouldEqual, 4)
		})

		Convey("任意操作序列之后页码都在范围内", func() {
			r := rand.New(rand.NewSource(42))
			p := NewPaginationState(3)
			for i := 0; i < 1000; i++ {
				switch r.Intn(4) {
				case 0:
					p.GoToPage(r.Intn(40) - 10)
				case 1:
					_ = p.SetPageSize(r.Intn(12))
				case 2:
					p.SetTotalItems(r.Intn(60) - 5)
				case 3:
					p.NextPage()
				}
				So(p.CurrentPage(), ShouldBeGreaterThanOrEqualTo, 1)
				So(p.CurrentPage(), ShouldBeLessThanOrEqualTo, max(p.TotalPages(), 1))
				So(p.EndIndex(), ShouldBeLessThanOrEqualTo, p.TotalItems())
			}
		})
	})
}

func TestPageWindow(t *testing.T) {
	Convey("测试 PageWindow", t, func() {
		p := NewPaginationState(10)
		So(p.PageWindow(1), ShouldBeNil)

		p.SetTotalItems(50)
		So(p.PageWindow(1), ShouldResemble, []int{1, 2, 3, 4, 5})

		p.SetTotalItems(100)
		p.GoToPage(5)
		So(p.PageWindow(1), ShouldResemble, []int{1, 0, 4, 5, 6, 0, 10})

		p.GoToPage(1)
		So(p.PageWindow(1), ShouldResemble, []int{1, 2, 0, 10})

		p.GoToPage(3)
		So(p.PageWindow(1), ShouldResemble, []int{1, 2, 3, 4, 0, 10})

		p.GoToPage(10)
		So(p.PageWindow(1), ShouldResemble, []int{1, 0, 9, 10})

		p.GoToPage(8)
		So(p.PageWindow(1), ShouldResemble, []int{1, 0, 7, 8, 9, 10})
	})
}
