package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

var paymentStatusOptions = []listview.Option{
	{Value: "success", Label: "option.success"},
	{Value: "pending", Label: "option.pending"},
	{Value: "failed", Label: "option.failed"},
}

// CoinPayments lists coin purchases.
func CoinPayments() listview.Descriptor[api.CoinPayment] {
	return listview.Descriptor[api.CoinPayment]{
		Name: "coin-payments",
		ID:   func(p api.CoinPayment) string { return p.ID },
		Fields: map[string]listview.Field[api.CoinPayment]{
			"order_id":   listview.String(func(p api.CoinPayment) string { return p.OrderID }),
			"user_name":  listview.String(func(p api.CoinPayment) string { return p.UserName }),
			"email":      listview.String(func(p api.CoinPayment) string { return p.Email }),
			"status":     listview.String(func(p api.CoinPayment) string { return p.Status }),
			"method":     listview.String(func(p api.CoinPayment) string { return p.Method }),
			"amount":     listview.Number(func(p api.CoinPayment) float64 { return p.Amount }),
			"coins":      listview.Number(func(p api.CoinPayment) float64 { return p.Coins }),
			"created_at": listview.Time(func(p api.CoinPayment) time.Time { return p.CreatedAt }),
		},
		SearchFields: []string{"order_id", "user_name", "email"},
		Filters: []listview.FilterDef{
			{Key: "status", Field: "status", Kind: listview.FilterEnum, Label: "filter.status", Options: paymentStatusOptions},
			{Key: "method", Field: "method", Kind: listview.FilterEnum, Label: "filter.method", Options: []listview.Option{
				{Value: "card", Label: "option.card"},
				{Value: "paypal", Label: "option.paypal"},
				{Value: "wallet", Label: "option.wallet"},
			}},
			{Key: "amount", Field: "amount", Kind: listview.FilterRange, Label: "filter.amount"},
			{Key: "created", Field: "created_at", Kind: listview.FilterDateRange, Label: "filter.date"},
		},
		SortFields:  []string{"created_at", "amount", "user_name", "status"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Desc},
		Columns: []listview.Column[api.CoinPayment]{
			{Header: "column.order", Value: func(p api.CoinPayment) string { return Text(p.OrderID) }, Export: func(p api.CoinPayment) string { return p.OrderID }},
			{Header: "column.user", Value: func(p api.CoinPayment) string { return Text(p.UserName) }, Export: func(p api.CoinPayment) string { return p.UserName }, SortField: "user_name"},
			{Header: "column.email", Value: func(p api.CoinPayment) string { return Text(p.Email) }, Export: func(p api.CoinPayment) string { return p.Email }},
			{Header: "column.amount", Value: func(p api.CoinPayment) string { return Money(p.Amount) }, Export: func(p api.CoinPayment) string { return Decimal(p.Amount) }, SortField: "amount"},
			{Header: "column.coins", Value: func(p api.CoinPayment) string { return Count(p.Coins) }, Export: func(p api.CoinPayment) string { return Decimal(p.Coins) }},
			{Header: "column.method", Value: func(p api.CoinPayment) string { return Text(p.Method) }, Export: func(p api.CoinPayment) string { return p.Method }},
			{Header: "column.status", Value: func(p api.CoinPayment) string { return Text(p.Status) }, Export: func(p api.CoinPayment) string { return p.Status }, SortField: "status"},
			{Header: "column.date", Value: func(p api.CoinPayment) string { return DateTime(p.CreatedAt) }, Export: func(p api.CoinPayment) string { return Timestamp(p.CreatedAt) }, SortField: "created_at"},
		},
		Summary: func(rows []api.CoinPayment) [][]string {
			total := 0.0
			for _, p := range rows {
				total += p.Amount
			}
			return [][]string{
				{"Payments", Count(float64(len(rows)))},
				{"Total amount", "", "", Decimal(total)},
			}
		},
	}
}

// CampaignOrders lists paid promotion orders.
func CampaignOrders() listview.Descriptor[api.CampaignOrder] {
	return listview.Descriptor[api.CampaignOrder]{
		Name: "campaign-orders",
		ID:   func(o api.CampaignOrder) string { return o.ID },
		Fields: map[string]listview.Field[api.CampaignOrder]{
			"order_id":       listview.String(func(o api.CampaignOrder) string { return o.OrderID }),
			"campaign_title": listview.String(func(o api.CampaignOrder) string { return o.CampaignTitle }),
			"user_name":      listview.String(func(o api.CampaignOrder) string { return o.UserName }),
			"status":         listview.String(func(o api.CampaignOrder) string { return o.Status }),
			"approval":       listview.String(func(o api.CampaignOrder) string { return o.ApprovalStatus }),
			"amount":         listview.Number(func(o api.CampaignOrder) float64 { return o.Amount }),
			"created_at":     listview.Time(func(o api.CampaignOrder) time.Time { return o.CreatedAt }),
		},
		SearchFields: []string{"order_id", "campaign_title", "user_name"},
		Filters: []listview.FilterDef{
			{Key: "status", Field: "status", Kind: listview.FilterEnum, Label: "filter.status", Options: paymentStatusOptions},
			{Key: "approval", Field: "approval", Kind: listview.FilterEnum, Label: "filter.approval", Options: []listview.Option{
				{Value: api.ApprovalApproved, Label: "option.approved"},
				{Value: api.ApprovalPending, Label: "option.pending"},
				{Value: api.ApprovalRejected, Label: "option.rejected"},
			}},
			{Key: "amount", Field: "amount", Kind: listview.FilterRange, Label: "filter.amount"},
			{Key: "created", Field: "created_at", Kind: listview.FilterDateRange, Label: "filter.date"},
		},
		SortFields:  []string{"created_at", "amount", "campaign_title"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Desc},
		Columns: []listview.Column[api.CampaignOrder]{
			{Header: "column.order", Value: func(o api.CampaignOrder) string { return Text(o.OrderID) }, Export: func(o api.CampaignOrder) string { return o.OrderID }},
			{Header: "column.campaign", Value: func(o api.CampaignOrder) string { return Text(o.CampaignTitle) }, Export: func(o api.CampaignOrder) string { return o.CampaignTitle }, SortField: "campaign_title"},
			{Header: "column.package", Value: func(o api.CampaignOrder) string { return Text(o.PackageName) }, Export: func(o api.CampaignOrder) string { return o.PackageName }},
			{Header: "column.user", Value: func(o api.CampaignOrder) string { return Text(o.UserName) }, Export: func(o api.CampaignOrder) string { return o.UserName }},
			{Header: "column.amount", Value: func(o api.CampaignOrder) string { return Money(o.Amount) }, Export: func(o api.CampaignOrder) string { return Decimal(o.Amount) }, SortField: "amount"},
			{Header: "column.status", Value: func(o api.CampaignOrder) string { return Text(o.Status) }, Export: func(o api.CampaignOrder) string { return o.Status }},
			{Header: "column.approval", Value: func(o api.CampaignOrder) string { return Text(o.ApprovalStatus) }, Export: func(o api.CampaignOrder) string { return o.ApprovalStatus }},
			{Header: "column.date", Value: func(o api.CampaignOrder) string { return DateTime(o.CreatedAt) }, Export: func(o api.CampaignOrder) string { return Timestamp(o.CreatedAt) }, SortField: "created_at"},
		},
		Summary: func(rows []api.CampaignOrder) [][]string {
			total := 0.0
			approved := 0
			for _, o := range rows {
				total += o.Amount
				if o.ApprovalStatus == api.ApprovalApproved {
					approved++
				}
			}
			return [][]string{
				{"Orders", Count(float64(len(rows)))},
				{"Approved", Count(float64(approved))},
				{"Total amount", "", "", "", Decimal(total)},
			}
		},
	}
}
