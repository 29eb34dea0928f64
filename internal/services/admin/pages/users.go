package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

// Users lists platform accounts.
func Users() listview.Descriptor[api.User] {
	return listview.Descriptor[api.User]{
		Name: "users",
		ID:   func(u api.User) string { return u.ID },
		Fields: map[string]listview.Field[api.User]{
			"full_name":  listview.String(func(u api.User) string { return u.FullName }),
			"email":      listview.String(func(u api.User) string { return u.Email }),
			"username":   listview.String(func(u api.User) string { return u.Username }),
			"status":     listview.String(func(u api.User) string { return u.Status }),
			"role":       listview.String(func(u api.User) string { return u.Role }),
			"coins":      listview.Number(func(u api.User) float64 { return u.Coins }),
			"verified":   listview.Bool(func(u api.User) bool { return u.Verified }),
			"created_at": listview.Time(func(u api.User) time.Time { return u.CreatedAt }),
		},
		SearchFields: []string{"full_name", "email", "username"},
		Filters: []listview.FilterDef{
			{Key: "status", Field: "status", Kind: listview.FilterEnum, Label: "filter.status", Options: []listview.Option{
				{Value: "active", Label: "option.active"},
				{Value: "inactive", Label: "option.inactive"},
				{Value: "banned", Label: "option.banned"},
			}},
			{Key: "role", Field: "role", Kind: listview.FilterEnum, Label: "filter.role", Options: []listview.Option{
				{Value: "user", Label: "option.role_user"},
				{Value: "creator", Label: "option.role_creator"},
				{Value: "admin", Label: "option.role_admin"},
			}},
			{Key: "created", Field: "created_at", Kind: listview.FilterDateRange, Label: "filter.joined"},
			{Key: "coins", Field: "coins", Kind: listview.FilterRange, Label: "filter.coins"},
		},
		SortFields:  []string{"created_at", "full_name", "email", "coins"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Desc},
		Columns: []listview.Column[api.User]{
			{Header: "column.name", Value: func(u api.User) string { return u.DisplayName() }, SortField: "full_name"},
			{Header: "column.email", Value: func(u api.User) string { return Text(u.Email) }, Export: func(u api.User) string { return u.Email }, SortField: "email"},
			{Header: "column.username", Value: func(u api.User) string { return Text(u.Username) }, Export: func(u api.User) string { return u.Username }},
			{Header: "column.role", Value: func(u api.User) string { return Text(u.Role) }, Export: func(u api.User) string { return u.Role }},
			{Header: "column.status", Value: func(u api.User) string { return Text(u.Status) }, Export: func(u api.User) string { return u.Status }},
			{Header: "column.coins", Value: func(u api.User) string { return Count(u.Coins) }, Export: func(u api.User) string { return Decimal(u.Coins) }, SortField: "coins"},
			{Header: "column.joined", Value: func(u api.User) string { return Date(u.CreatedAt) }, Export: func(u api.User) string { return Timestamp(u.CreatedAt) }, SortField: "created_at"},
		},
	}
}
