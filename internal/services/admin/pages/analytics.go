package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

// AnalyticsDays lists the daily platform totals.
func AnalyticsDays() listview.Descriptor[api.AnalyticsDay] {
	return listview.Descriptor[api.AnalyticsDay]{
		Name: "analytics-days",
		ID:   func(d api.AnalyticsDay) string { return d.Key() },
		Fields: map[string]listview.Field[api.AnalyticsDay]{
			"date":     listview.Time(func(d api.AnalyticsDay) time.Time { return d.Date }),
			"users":    listview.Number(func(d api.AnalyticsDay) float64 { return d.Users }),
			"posts":    listview.Number(func(d api.AnalyticsDay) float64 { return d.Posts }),
			"payments": listview.Number(func(d api.AnalyticsDay) float64 { return d.Payments }),
			"revenue":  listview.Number(func(d api.AnalyticsDay) float64 { return d.Revenue }),
			"spins":    listview.Number(func(d api.AnalyticsDay) float64 { return d.Spins }),
		},
		Filters: []listview.FilterDef{
			{Key: "date", Field: "date", Kind: listview.FilterDateRange, Label: "filter.date"},
			{Key: "revenue", Field: "revenue", Kind: listview.FilterRange, Label: "filter.revenue"},
		},
		SortFields:  []string{"date", "users", "posts", "payments", "revenue", "spins"},
		DefaultSort: listview.Sort{Field: "date", Dir: listview.Desc},
		Columns: []listview.Column[api.AnalyticsDay]{
			{Header: "column.date", Value: func(d api.AnalyticsDay) string { return Date(d.Date) }, Export: func(d api.AnalyticsDay) string { return d.Key() }, SortField: "date"},
			{Header: "column.signups", Value: func(d api.AnalyticsDay) string { return Count(d.Users) }, Export: func(d api.AnalyticsDay) string { return Decimal(d.Users) }, SortField: "users"},
			{Header: "column.posts", Value: func(d api.AnalyticsDay) string { return Count(d.Posts) }, Export: func(d api.AnalyticsDay) string { return Decimal(d.Posts) }, SortField: "posts"},
			{Header: "column.payments", Value: func(d api.AnalyticsDay) string { return Count(d.Payments) }, Export: func(d api.AnalyticsDay) string { return Decimal(d.Payments) }, SortField: "payments"},
			{Header: "column.revenue", Value: func(d api.AnalyticsDay) string { return Money(d.Revenue) }, Export: func(d api.AnalyticsDay) string { return Decimal(d.Revenue) }, SortField: "revenue"},
			{Header: "column.spins", Value: func(d api.AnalyticsDay) string { return Count(d.Spins) }, Export: func(d api.AnalyticsDay) string { return Decimal(d.Spins) }, SortField: "spins"},
		},
		Summary: func(rows []api.AnalyticsDay) [][]string {
			var users, posts, payments, revenue, spins float64
			for _, d := range rows {
				users += d.Users
				posts += d.Posts
				payments += d.Payments
				revenue += d.Revenue
				spins += d.Spins
			}
			return [][]string{{"Total", Decimal(users), Decimal(posts), Decimal(payments), Decimal(revenue), Decimal(spins)}}
		},
	}
}

// DayBreakdown lists the activity of one analytics day.
func DayBreakdown() listview.Descriptor[api.DayEntry] {
	return listview.Descriptor[api.DayEntry]{
		Name: "analytics",
		ID:   func(e api.DayEntry) string { return e.ID },
		Fields: map[string]listview.Field[api.DayEntry]{
			"user":       listview.String(func(e api.DayEntry) string { return e.User }),
			"type":       listview.String(func(e api.DayEntry) string { return e.Type }),
			"detail":     listview.String(func(e api.DayEntry) string { return e.Detail }),
			"amount":     listview.Number(func(e api.DayEntry) float64 { return e.Amount }),
			"created_at": listview.Time(func(e api.DayEntry) time.Time { return e.CreatedAt }),
		},
		SearchFields: []string{"user", "type"},
		Filters: []listview.FilterDef{
			{Key: "type", Field: "type", Kind: listview.FilterEnum, Label: "filter.type", Options: []listview.Option{
				{Value: "signup", Label: "option.signup"},
				{Value: "post", Label: "option.post"},
				{Value: "payment", Label: "option.payment"},
				{Value: "spin", Label: "option.spin"},
			}},
		},
		SortFields:  []string{"created_at", "amount", "type"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Asc},
		Columns: []listview.Column[api.DayEntry]{
			{Header: "column.time", Value: func(e api.DayEntry) string { return clock(e.CreatedAt) }, Export: func(e api.DayEntry) string { return Timestamp(e.CreatedAt) }, SortField: "created_at"},
			{Header: "column.type", Value: func(e api.DayEntry) string { return Text(e.Type) }, Export: func(e api.DayEntry) string { return e.Type }, SortField: "type"},
			{Header: "column.user", Value: func(e api.DayEntry) string { return Text(e.User) }, Export: func(e api.DayEntry) string { return e.User }},
			{Header: "column.detail", Value: func(e api.DayEntry) string { return Text(e.Detail) }, Export: func(e api.DayEntry) string { return e.Detail }},
			{Header: "column.amount", Value: func(e api.DayEntry) string { return Money(e.Amount) }, Export: func(e api.DayEntry) string { return Decimal(e.Amount) }, SortField: "amount"},
		},
		Summary: func(rows []api.DayEntry) [][]string {
			total := 0.0
			for _, e := range rows {
				total += e.Amount
			}
			return [][]string{
				{"Entries", Count(float64(len(rows)))},
				{"Total amount", "", "", "", Decimal(total)},
			}
		},
	}
}

func clock(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format("15:04")
}
