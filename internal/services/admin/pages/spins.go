package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

// Spins lists the spin history of the rewards games.
func Spins() listview.Descriptor[api.Spin] {
	return listview.Descriptor[api.Spin]{
		Name: "spin-history",
		ID:   func(s api.Spin) string { return s.ID },
		Fields: map[string]listview.Field[api.Spin]{
			"user_name":   listview.String(func(s api.Spin) string { return s.UserName }),
			"reward":      listview.String(func(s api.Spin) string { return s.Reward }),
			"reward_type": listview.String(func(s api.Spin) string { return s.RewardType }),
			"game":        listview.String(func(s api.Spin) string { return s.Game }),
			"value":       listview.Number(func(s api.Spin) float64 { return s.Value }),
			"created_at":  listview.Time(func(s api.Spin) time.Time { return s.CreatedAt }),
		},
		SearchFields: []string{"user_name", "reward"},
		Filters: []listview.FilterDef{
			{Key: "reward_type", Field: "reward_type", Kind: listview.FilterEnum, Label: "filter.reward_type", Options: []listview.Option{
				{Value: "coins", Label: "option.coins"},
				{Value: "item", Label: "option.item"},
				{Value: "none", Label: "option.none"},
			}},
			{Key: "created", Field: "created_at", Kind: listview.FilterDateRange, Label: "filter.date"},
		},
		SortFields:  []string{"created_at", "value", "user_name"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Desc},
		Columns: []listview.Column[api.Spin]{
			{Header: "column.user", Value: func(s api.Spin) string { return Text(s.UserName) }, Export: func(s api.Spin) string { return s.UserName }, SortField: "user_name"},
			{Header: "column.game", Value: func(s api.Spin) string { return Text(s.Game) }, Export: func(s api.Spin) string { return s.Game }},
			{Header: "column.reward", Value: func(s api.Spin) string { return Text(s.Reward) }, Export: func(s api.Spin) string { return s.Reward }},
			{Header: "column.value", Value: func(s api.Spin) string { return Count(s.Value) }, Export: func(s api.Spin) string { return Decimal(s.Value) }, SortField: "value"},
			{Header: "column.date", Value: func(s api.Spin) string { return DateTime(s.CreatedAt) }, Export: func(s api.Spin) string { return Timestamp(s.CreatedAt) }, SortField: "created_at"},
		},
	}
}
