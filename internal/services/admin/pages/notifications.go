package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

// Notifications lists admin notifications.
func Notifications() listview.Descriptor[api.Notification] {
	return listview.Descriptor[api.Notification]{
		Name: "notifications",
		ID:   func(n api.Notification) string { return n.ID },
		Fields: map[string]listview.Field[api.Notification]{
			"title":      listview.String(func(n api.Notification) string { return n.Title }),
			"message":    listview.String(func(n api.Notification) string { return n.Message }),
			"type":       listview.String(func(n api.Notification) string { return n.Type }),
			"read":       listview.Bool(func(n api.Notification) bool { return n.Read }),
			"created_at": listview.Time(func(n api.Notification) time.Time { return n.CreatedAt }),
		},
		SearchFields: []string{"title", "message"},
		Filters: []listview.FilterDef{
			{Key: "type", Field: "type", Kind: listview.FilterEnum, Label: "filter.type", Options: []listview.Option{
				{Value: "payment", Label: "option.payment"},
				{Value: "report", Label: "option.report"},
				{Value: "system", Label: "option.system"},
			}},
			{Key: "read", Field: "read", Kind: listview.FilterEnum, Label: "filter.read", Options: []listview.Option{
				{Value: "false", Label: "option.unread"},
				{Value: "true", Label: "option.read"},
			}},
		},
		SortFields:  []string{"created_at", "read"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Desc},
		Columns: []listview.Column[api.Notification]{
			{Header: "column.title", Value: func(n api.Notification) string { return Text(n.Title) }, Export: func(n api.Notification) string { return n.Title }},
			{Header: "column.message", Value: func(n api.Notification) string { return truncate(n.Message, 120) }, Export: func(n api.Notification) string { return n.Message }},
			{Header: "column.type", Value: func(n api.Notification) string { return Text(n.Type) }, Export: func(n api.Notification) string { return n.Type }},
			{Header: "column.read", Value: func(n api.Notification) string { return YesNo(n.Read) }, Export: func(n api.Notification) string { return boolText(n.Read) }, SortField: "read"},
			{Header: "column.date", Value: func(n api.Notification) string { return DateTime(n.CreatedAt) }, Export: func(n api.Notification) string { return Timestamp(n.CreatedAt) }, SortField: "created_at"},
		},
	}
}
