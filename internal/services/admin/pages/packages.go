package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

var activeOptions = []listview.Option{
	{Value: "true", Label: "option.active"},
	{Value: "false", Label: "option.inactive"},
}

// CoinPackages lists purchasable coin bundles.
func CoinPackages() listview.Descriptor[api.CoinPackage] {
	return listview.Descriptor[api.CoinPackage]{
		Name: "coin-packages",
		ID:   func(p api.CoinPackage) string { return p.ID },
		Fields: map[string]listview.Field[api.CoinPackage]{
			"name":       listview.String(func(p api.CoinPackage) string { return p.Name }),
			"coins":      listview.Number(func(p api.CoinPackage) float64 { return p.Coins }),
			"price":      listview.Number(func(p api.CoinPackage) float64 { return p.Price }),
			"active":     listview.Bool(func(p api.CoinPackage) bool { return p.Active }),
			"created_at": listview.Time(func(p api.CoinPackage) time.Time { return p.CreatedAt }),
		},
		SearchFields: []string{"name"},
		Filters: []listview.FilterDef{
			{Key: "active", Field: "active", Kind: listview.FilterEnum, Label: "filter.active", Options: activeOptions},
		},
		SortFields:  []string{"price", "coins", "name", "created_at"},
		DefaultSort: listview.Sort{Field: "price", Dir: listview.Asc},
		Columns: []listview.Column[api.CoinPackage]{
			{Header: "column.name", Value: func(p api.CoinPackage) string { return p.Name }, SortField: "name"},
			{Header: "column.coins", Value: func(p api.CoinPackage) string { return Count(p.Coins) }, Export: func(p api.CoinPackage) string { return Decimal(p.Coins) }, SortField: "coins"},
			{Header: "column.bonus", Value: func(p api.CoinPackage) string { return Count(p.Bonus) }, Export: func(p api.CoinPackage) string { return Decimal(p.Bonus) }},
			{Header: "column.price", Value: func(p api.CoinPackage) string { return Money(p.Price) }, Export: func(p api.CoinPackage) string { return Decimal(p.Price) }, SortField: "price"},
			{Header: "column.active", Value: func(p api.CoinPackage) string { return YesNo(p.Active) }, Export: func(p api.CoinPackage) string { return boolText(p.Active) }},
		},
	}
}

// CampaignPackages lists purchasable promotion tiers.
func CampaignPackages() listview.Descriptor[api.CampaignPackage] {
	return listview.Descriptor[api.CampaignPackage]{
		Name: "campaign-packages",
		ID:   func(p api.CampaignPackage) string { return p.ID },
		Fields: map[string]listview.Field[api.CampaignPackage]{
			"name":       listview.String(func(p api.CampaignPackage) string { return p.Name }),
			"price":      listview.Number(func(p api.CampaignPackage) float64 { return p.Price }),
			"duration":   listview.Number(func(p api.CampaignPackage) float64 { return p.DurationDays }),
			"reach":      listview.Number(func(p api.CampaignPackage) float64 { return p.Reach }),
			"active":     listview.Bool(func(p api.CampaignPackage) bool { return p.Active }),
			"created_at": listview.Time(func(p api.CampaignPackage) time.Time { return p.CreatedAt }),
		},
		SearchFields: []string{"name"},
		Filters: []listview.FilterDef{
			{Key: "active", Field: "active", Kind: listview.FilterEnum, Label: "filter.active", Options: activeOptions},
		},
		SortFields:  []string{"price", "duration", "reach", "name", "created_at"},
		DefaultSort: listview.Sort{Field: "price", Dir: listview.Asc},
		Columns: []listview.Column[api.CampaignPackage]{
			{Header: "column.name", Value: func(p api.CampaignPackage) string { return p.Name }, SortField: "name"},
			{Header: "column.price", Value: func(p api.CampaignPackage) string { return Money(p.Price) }, Export: func(p api.CampaignPackage) string { return Decimal(p.Price) }, SortField: "price"},
			{Header: "column.duration", Value: func(p api.CampaignPackage) string { return Count(p.DurationDays) }, Export: func(p api.CampaignPackage) string { return Decimal(p.DurationDays) }, SortField: "duration"},
			{Header: "column.reach", Value: func(p api.CampaignPackage) string { return Count(p.Reach) }, Export: func(p api.CampaignPackage) string { return Decimal(p.Reach) }, SortField: "reach"},
			{Header: "column.active", Value: func(p api.CampaignPackage) string { return YesNo(p.Active) }, Export: func(p api.CampaignPackage) string { return boolText(p.Active) }},
		},
	}
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
