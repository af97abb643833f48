package table

import (
	"fmt"
	"strings"
	"time"
)

type user struct {
	ID      int
	Name    string
	Age     int
	Email   string
	Joined  time.Time
	Profile *profile
}

type profile struct {
	City string
}

func newUsers(n int) []*user {
	users := make([]*user, n)
	for i := range users {
		users[i] = &user{
			ID:     i + 1,
			Name:   fmt.Sprintf("user%02d", i+1),
			Age:    20 + i%5,
			Email:  fmt.Sprintf("user%02d@example.com", i+1),
			Joined: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
	}
	return users
}

func userColumns() *Columns[*user] {
	return MustColumns[*user](
		NewOrderedColumn("id", func(u *user) int { return u.ID }).WithHeader("ID").WithFilterable(false),
		NewOrderedColumn("name", func(u *user) string { return u.Name }).WithHeader("Name"),
		NewOrderedColumn("age", func(u *user) int { return u.Age }),
		NewColumn("email", func(u *user) string { return u.Email }).WithSortable(false),
		NewColumn("joined", func(u *user) time.Time { return u.Joined }).
			WithFormatter(func(t time.Time) string { return t.Format("2006-01-02") }),
		NewColumn("city", func(u *user) string { return u.Profile.City }).
			WithComparator(func(a, b string) int { return strings.Compare(a, b) }),
	)
}

func ids(users []*user) []int {
	result := make([]int, len(users))
	for i, u := range users {
		result[i] = u.ID
	}
	return result
}
