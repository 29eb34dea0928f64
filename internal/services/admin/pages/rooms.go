package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

// Rooms lists live rooms.
func Rooms() listview.Descriptor[api.Room] {
	return listview.Descriptor[api.Room]{
		Name: "rooms",
		ID:   func(r api.Room) string { return r.ID },
		Fields: map[string]listview.Field[api.Room]{
			"name":       listview.String(func(r api.Room) string { return r.Name }),
			"host_name":  listview.String(func(r api.Room) string { return r.HostName }),
			"type":       listview.String(func(r api.Room) string { return r.Type }),
			"status":     listview.String(func(r api.Room) string { return r.Status }),
			"members":    listview.Number(func(r api.Room) float64 { return r.Members }),
			"created_at": listview.Time(func(r api.Room) time.Time { return r.CreatedAt }),
		},
		SearchFields: []string{"name", "host_name"},
		Filters: []listview.FilterDef{
			{Key: "type", Field: "type", Kind: listview.FilterEnum, Label: "filter.type", Options: []listview.Option{
				{Value: "audio", Label: "option.audio"},
				{Value: "video", Label: "option.video"},
				{Value: "chat", Label: "option.chat"},
			}},
			{Key: "status", Field: "status", Kind: listview.FilterEnum, Label: "filter.status", Options: []listview.Option{
				{Value: "live", Label: "option.live"},
				{Value: "ended", Label: "option.ended"},
			}},
		},
		SortFields:  []string{"created_at", "members", "name"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Desc},
		Columns: []listview.Column[api.Room]{
			{Header: "column.name", Value: func(r api.Room) string { return Text(r.Name) }, Export: func(r api.Room) string { return r.Name }, SortField: "name"},
			{Header: "column.host", Value: func(r api.Room) string { return Text(r.HostName) }, Export: func(r api.Room) string { return r.HostName }},
			{Header: "column.type", Value: func(r api.Room) string { return Text(r.Type) }, Export: func(r api.Room) string { return r.Type }},
			{Header: "column.status", Value: func(r api.Room) string { return Text(r.Status) }, Export: func(r api.Room) string { return r.Status }},
			{Header: "column.members", Value: func(r api.Room) string { return Count(r.Members) }, Export: func(r api.Room) string { return Decimal(r.Members) }, SortField: "members"},
			{Header: "column.created", Value: func(r api.Room) string { return DateTime(r.CreatedAt) }, Export: func(r api.Room) string { return Timestamp(r.CreatedAt) }, SortField: "created_at"},
		},
	}
}
