package table

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSelectionState(t *testing.T) {
	rows := newUsers(5)

	Convey("测试 SelectionState", t, func() {
		Convey("none 模式忽略所有选择", func() {
			s := NewSelectionState[*user](SelectionNone)
			So(s.Select(rows[0]), ShouldBeNil)
			So(s.Toggle(rows[1]), ShouldBeNil)
			So(s.SelectAll(rows), ShouldBeNil)
			So(s.Count(), ShouldEqual, 0)
			So(s.Version(), ShouldEqual, uint64(0))
		})

		Convey("single 模式最多一行", func() {
			s := NewSelectionState[*user](SelectionSingle)
			So(s.Select(rows[0]), ShouldBeNil)
			So(s.Select(rows[1]), ShouldBeNil)
			So(s.Count(), ShouldEqual, 1)
			So(s.IsSelected(rows[1]), ShouldBeTrue)
			So(s.IsSelected(rows[0]), ShouldBeFalse)

			So(s.SelectAll(rows), ShouldBeNil)
			So(s.Count(), ShouldEqual, 1)

			So(s.Toggle(rows[1]), ShouldBeNil)
			So(s.Count(), ShouldEqual, 0)
		})

		Convey("multiple 模式", func() {
			s := NewSelectionState[*user](SelectionMultiple)
			So(s.Select(rows[2]), ShouldBeNil)
			So(s.Select(rows[0]), ShouldBeNil)
			So(s.Select(rows[2]), ShouldBeNil)
			So(s.SelectedRows(), ShouldResemble, []*user{rows[2], rows[0]})

			v := s.Version()
			So(s.Deselect(rows[4]), ShouldBeNil)
			So(s.Version(), ShouldEqual, v)

			So(s.SelectAll(rows), ShouldBeNil)
			So(s.AreAllSelected(rows), ShouldBeTrue)
			So(s.AreSomeSelected(rows), ShouldBeFalse)

			So(s.DeselectAll(rows[:2]), ShouldBeNil)
			So(s.Count(), ShouldEqual, 3)
			So(s.AreSomeSelected(rows), ShouldBeTrue)

			s.Clear()
			So(s.Count(), ShouldEqual, 0)
			So(s.AreSomeSelected(rows), ShouldBeFalse)
			So(s.AreAllSelected(nil), ShouldBeFalse)
		})

		Convey("半选状态", func() {
			s := NewSelectionState[*user](SelectionMultiple)
			So(s.SelectAll(rows), ShouldBeNil)
			So(s.Deselect(rows[4]), ShouldBeNil)
			So(s.AreSomeSelected(rows), ShouldBeTrue)
			So(s.AreAllSelected(rows), ShouldBeFalse)

			// 重复的行只计一次
			dup := []*user{rows[0], rows[0], rows[1]}
			So(s.AreAllSelected(dup), ShouldBeFalse)
			So(s.AreSomeSelected(dup), ShouldBeTrue)
		})

		Convey("nil 行返回 ErrInvalidArgument 且不修改状态", func() {
			s := NewSelectionState[*user](SelectionMultiple)
			So(s.Select(rows[0]), ShouldBeNil)

			So(errors.Is(s.Select(nil), ErrInvalidArgument), ShouldBeTrue)
			So(errors.Is(s.Toggle(nil), ErrInvalidArgument), ShouldBeTrue)
			So(errors.Is(s.Deselect(nil), ErrInvalidArgument), ShouldBeTrue)
			err := s.SelectAll([]*user{rows[1], nil, rows[2]})
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			So(s.SelectedRows(), ShouldResemble, []*user{rows[0]})
		})

		Convey("切换模式", func() {
			s := NewSelectionState[*user](SelectionMultiple)
			So(s.SelectAll(rows[:3]), ShouldBeNil)
			s.SetMode(SelectionSingle)
			So(s.SelectedRows(), ShouldResemble, []*user{rows[2]})
			s.SetMode(SelectionNone)
			So(s.Count(), ShouldEqual, 0)
			So(s.Mode(), ShouldEqual, SelectionNone)
		})
	})
}

func TestParseSelectionMode(t *testing.T) {
	Convey("测试 ParseSelectionMode", t, func() {
		mode, err := ParseSelectionMode("multi")
		So(err, ShouldBeNil)
		So(mode, ShouldEqual, SelectionMultiple)

		mode, err = ParseSelectionMode("Single")
		So(err, ShouldBeNil)
		So(mode, ShouldEqual, SelectionSingle)

		_, err = ParseSelectionMode("all")
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		So(SelectionMultiple.String(), ShouldEqual, "multiple")
	})
}
