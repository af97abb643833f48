package table

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/hatlonely/tablex/table/query"
	. "github.com/smartystreets/goconvey/convey"
)

type item struct {
	name string
	n    int
}

func itemColumns() *Columns[*item] {
	return MustColumns[*item](
		NewOrderedColumn("name", func(i *item) string { return i.name }),
		NewOrderedColumn("n", func(i *item) int { return i.n }),
	)
}

func TestSort(t *testing.T) {
	Convey("测试 Sort", t, func() {
		b2, a1, a3 := &item{"b", 2}, &item{"a", 1}, &item{"a", 3}
		rows := []*item{b2, a1, a3}
		sorting := NewSortingState()

		Convey("稳定排序", func() {
			So(sorting.SetSort("name", SortAscending), ShouldBeNil)
			So(Sort(rows, sorting, itemColumns()), ShouldResemble, []*item{a1, a3, b2})

			So(sorting.SetSort("name", SortDescending), ShouldBeNil)
			So(Sort(rows, sorting, itemColumns()), ShouldResemble, []*item{b2, a1, a3})

			// 输入不被修改
			So(rows, ShouldResemble, []*item{b2, a1, a3})
		})

		Convey("未排序、未知列、不可排序的列保持原顺序", func() {
			So(Sort(rows, sorting, itemColumns()), ShouldResemble, rows)

			So(sorting.SetSort("missing", SortAscending), ShouldBeNil)
			So(Sort(rows, sorting, itemColumns()), ShouldResemble, rows)

			columns := MustColumns[*item](NewOrderedColumn("name", func(i *item) string { return i.name }).WithSortable(false))
			So(sorting.SetSort("name", SortAscending), ShouldBeNil)
			So(Sort(rows, sorting, columns), ShouldResemble, rows)
		})

		Convey("大量相等键的稳定性", func() {
			r := rand.New(rand.NewSource(7))
			many := make([]*item, 200)
			for i := range many {
				many[i] = &item{name: string(rune('a' + r.Intn(3))), n: i}
			}
			for _, dir := range []SortDirection{SortAscending, SortDescending} {
				So(sorting.SetSort("name", dir), ShouldBeNil)
				sorted := Sort(many, sorting, itemColumns())
				for i := 1; i < len(sorted); i++ {
					if sorted[i].name == sorted[i-1].name {
						So(sorted[i].n, ShouldBeGreaterThan, sorted[i-1].n)
					}
				}
			}
		})
	})
}

func TestSortAccessorFailure(t *testing.T) {
	Convey("取值失败的行在两个方向都排在最后", t, func() {
		users := newUsers(4)
		users[0].Profile = &profile{City: "Paris"}
		users[2].Profile = &profile{City: "Berlin"}
		state := NewState[*user](10, SelectionNone)

		So(state.Sorting().SetSort("city", SortAscending), ShouldBeNil)
		result := Process(users, state, userColumns(), nil)
		So(ids(result.Filtered), ShouldResemble, []int{3, 1, 2, 4})
		So(result.UnsortedRows, ShouldEqual, 2)

		So(state.Sorting().SetSort("city", SortDescending), ShouldBeNil)
		result = Process(users, state, userColumns(), nil)
		So(ids(result.Filtered), ShouldResemble, []int{1, 3, 2, 4})
	})

	Convey("比较函数 panic 时保持输入顺序", t, func() {
		rows := []*item{{"b", 2}, {"a", 1}}
		columns := MustColumns[*item](
			NewColumn("name", func(i *item) string { return i.name }).
				WithComparator(func(a, b string) int { panic("boom") }),
		)
		sorting := NewSortingState()
		So(sorting.SetSort("name", SortAscending), ShouldBeNil)
		So(Sort(rows, sorting, columns), ShouldResemble, rows)
	})
}

func TestFilter(t *testing.T) {
	Convey("测试 Filter", t, func() {
		users := newUsers(12)
		columns := userColumns()

		Convey("nil 条件保留全部", func() {
			So(Filter(users, nil), ShouldResemble, users)
		})

		Convey("错误和 panic 只影响当前行", func() {
			pred := func(u *user) (bool, error) {
				switch u.ID {
				case 2:
					return true, errors.New("broken")
				case 3:
					panic("boom")
				}
				return u.ID <= 4, nil
			}
			filtered, dropped := filterRows(users, pred)
			So(ids(filtered), ShouldResemble, []int{1, 4})
			So(dropped, ShouldEqual, 2)
		})

		Convey("全局搜索匹配展示文本并忽略大小写", func() {
			So(ids(Filter(users, GlobalSearch("USER1", columns))), ShouldResemble, []int{10, 11, 12})
			// joined 列使用 formatter 的文本
			So(ids(Filter(users, GlobalSearch("2024-01-03", columns))), ShouldResemble, []int{3})
			// id 列不参与搜索
			So(Filter(users, GlobalSearch("7@", columns)), ShouldHaveLength, 1)
			So(GlobalSearch("  ", columns), ShouldBeNil)
		})

		Convey("全局搜索跳过取值失败的列", func() {
			So(ids(Filter(users, GlobalSearch("user05@", columns))), ShouldResemble, []int{5})
		})

		Convey("列查询", func() {
			pred := QueryFilter[*user](&query.BoolQuery{
				Must: []query.Query{
					&query.RangeQuery{Field: "age", Gte: 22},
					&query.PrefixQuery{Field: "name", Value: "USER0"},
				},
				MustNot: []query.Query{
					&query.TermQuery{Field: "id", Value: 3},
				},
			}, columns)
			So(ids(Filter(users, pred)), ShouldResemble, []int{4, 5, 8, 9})
		})

		Convey("未知字段不匹配", func() {
			pred := QueryFilter[*user](&query.TermQuery{Field: "missing", Value: 1}, columns)
			So(Filter(users, pred), ShouldBeEmpty)
			So(QueryFilter[*user](nil, columns), ShouldBeNil)
		})

		Convey("All 组合条件", func() {
			even := func(u *user) (bool, error) { return u.ID%2 == 0, nil }
			small := func(u *user) (bool, error) { return u.ID < 7, nil }
			So(ids(Filter(users, All(even, nil, small))), ShouldResemble, []int{2, 4, 6})
			So(All[*user](nil, nil), ShouldBeNil)
		})
	})
}

func TestProcess(t *testing.T) {
	Convey("测试 Process", t, func() {
		users := newUsers(7)
		input := slices.Clone(users)
		state := NewState[*user](3, SelectionNone)

		Convey("7 行每页 3 条，第 3 页只有第 7 行", func() {
			state.Pagination().GoToPage(3)
			result := Process(users, state, userColumns(), nil)
			So(state.Pagination().CurrentPage(), ShouldEqual, 1)

			// 总条数未知时页码被截断，先执行一次流水线再跳转
			state.Pagination().GoToPage(3)
			result = Process(users, state, userColumns(), nil)
			So(ids(result.Page), ShouldResemble, []int{7})
			So(state.Pagination().StartIndex(), ShouldEqual, 6)
			So(state.Pagination().EndIndex(), ShouldEqual, 7)
			So(state.Pagination().TotalPages(), ShouldEqual, 3)
			So(state.Pagination().CanGoNext(), ShouldBeFalse)
			So(result.TotalItems, ShouldEqual, 7)
		})

		Convey("过滤、排序、分页", func() {
			So(state.Sorting().SetSort("age", SortDescending), ShouldBeNil)
			pred := func(u *user) (bool, error) { return u.ID != 5, nil }
			result := Process(users, state, userColumns(), pred)
			So(ids(result.Filtered), ShouldResemble, []int{4, 3, 2, 7, 1, 6})
			So(ids(result.Page), ShouldResemble, []int{4, 3, 2})
			So(result.TotalItems, ShouldEqual, 6)
			So(users, ShouldResemble, input)
		})

		Convey("过滤之后页码被截断", func() {
			Process(users, state, userColumns(), nil)
			state.Pagination().LastPage()
			pred := func(u *user) (bool, error) { return u.ID <= 2, nil }
			result := Process(users, state, userColumns(), pred)
			So(state.Pagination().CurrentPage(), ShouldEqual, 1)
			So(ids(result.Page), ShouldResemble, []int{1, 2})
		})

		Convey("空数据", func() {
			result := Process(nil, state, userColumns(), nil)
			So(result.Page, ShouldBeEmpty)
			So(result.TotalItems, ShouldEqual, 0)
			So(state.Pagination().CurrentPage(), ShouldEqual, 1)
		})
	})
}
