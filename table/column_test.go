package table

import (
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestColumnDef(t *testing.T) {
	Convey("测试 ColumnDef", t, func() {
		u := &user{ID: 7, Name: "Alice", Joined: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}

		Convey("默认值", func() {
			c := NewColumn("name", func(u *user) string { return u.Name })
			So(c.ID(), ShouldEqual, "name")
			So(c.Header(), ShouldEqual, "name")
			So(c.Sortable(), ShouldBeTrue)
			So(c.Filterable(), ShouldBeTrue)
			So(c.Validate(), ShouldBeNil)

			v, err := c.Value(u)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "Alice")
			So(c.Format(v), ShouldEqual, "Alice")

			typed, err := c.TypedValue(u)
			So(err, ShouldBeNil)
			So(typed, ShouldEqual, "Alice")
		})

		Convey("自定义比较和格式化", func() {
			c := NewColumn("name", func(u *user) string { return u.Name }).
				WithComparator(func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) }).
				WithFormatter(strings.ToUpper)
			So(c.Compare("apple", "Banana"), ShouldBeLessThan, 0)
			So(c.Format("bob"), ShouldEqual, "BOB")
			// 类型不匹配时退回自然顺序
			So(c.Compare(1, 2), ShouldBeLessThan, 0)
			So(c.Format(3), ShouldEqual, "3")
		})

		Convey("时间列", func() {
			c := NewColumn("joined", func(u *user) time.Time { return u.Joined })
			v, err := c.Value(u)
			So(err, ShouldBeNil)
			So(c.Format(v), ShouldEqual, "2024-03-05T00:00:00Z")
			So(c.Compare(v, u.Joined.Add(time.Hour)), ShouldBeLessThan, 0)
		})

		Convey("访问器 panic 返回 ErrAccessor", func() {
			c := NewColumn("city", func(u *user) string { return u.Profile.City })
			v, err := c.Value(u)
			So(v, ShouldBeNil)
			So(errors.Is(err, ErrAccessor), ShouldBeTrue)

			_, err = c.TypedValue(u)
			So(errors.Is(err, ErrAccessor), ShouldBeTrue)
		})

		Convey("Validate", func() {
			So(errors.Is(NewColumn[*user, string](" ", func(u *user) string { return "" }).Validate(), ErrInvalidArgument), ShouldBeTrue)
			So(errors.Is(NewColumn[*user, string]("x", nil).Validate(), ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func TestColumns(t *testing.T) {
	Convey("测试 Columns", t, func() {
		cs := userColumns()
		So(cs.Len(), ShouldEqual, 6)
		So(cs.IDs(), ShouldResemble, []string{"id", "name", "age", "email", "joined", "city"})

		c, ok := cs.Find("age")
		So(ok, ShouldBeTrue)
		So(c.ID(), ShouldEqual, "age")
		_, ok = cs.Find("missing")
		So(ok, ShouldBeFalse)

		subset := cs.Subset("email", "missing", "id")
		So(len(subset), ShouldEqual, 2)
		So(subset[0].ID(), ShouldEqual, "email")
		So(subset[1].ID(), ShouldEqual, "id")

		Convey("重复的列 id", func() {
			_, err := NewColumns[*user](
				NewColumn("a", func(u *user) int { return u.ID }),
				NewColumn("a", func(u *user) string { return u.Name }),
			)
			So(errors.Is(err, ErrDuplicateColumn), ShouldBeTrue)
		})

		Convey("nil 列和空 id", func() {
			_, err := NewColumns[*user](nil)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = NewColumns[*user](NewColumn("", func(u *user) int { return u.ID }))
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("MustColumns 出错时 panic", func() {
			So(func() { MustColumns[*user](nil) }, ShouldPanic)
		})

		Convey("nil 集合", func() {
			var empty *Columns[*user]
			So(empty.Len(), ShouldEqual, 0)
			So(empty.All(), ShouldBeNil)
			_, ok := empty.Find("id")
			So(ok, ShouldBeFalse)
		})
	})
}
