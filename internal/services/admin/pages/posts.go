package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

// Posts lists user content for moderation.
func Posts() listview.Descriptor[api.Post] {
	return listview.Descriptor[api.Post]{
		Name: "posts",
		ID:   func(p api.Post) string { return p.ID },
		Fields: map[string]listview.Field[api.Post]{
			"caption":    listview.String(func(p api.Post) string { return p.Caption }),
			"owner_name": listview.String(func(p api.Post) string { return p.OwnerName }),
			"type":       listview.String(func(p api.Post) string { return p.Type }),
			"likes":      listview.Number(func(p api.Post) float64 { return p.Likes }),
			"comments":   listview.Number(func(p api.Post) float64 { return p.Comments }),
			"created_at": listview.Time(func(p api.Post) time.Time { return p.CreatedAt }),
		},
		SearchFields: []string{"caption", "owner_name"},
		Filters: []listview.FilterDef{
			{Key: "type", Field: "type", Kind: listview.FilterEnum, Label: "filter.type", Options: []listview.Option{
				{Value: "image", Label: "option.image"},
				{Value: "video", Label: "option.video"},
				{Value: "text", Label: "option.text"},
			}},
			{Key: "created", Field: "created_at", Kind: listview.FilterDateRange, Label: "filter.created"},
		},
		SortFields:  []string{"created_at", "likes", "comments"},
		DefaultSort: listview.Sort{Field: "created_at", Dir: listview.Desc},
		Columns: []listview.Column[api.Post]{
			{Header: "column.owner", Value: func(p api.Post) string { return Text(p.OwnerName) }, Export: func(p api.Post) string { return p.OwnerName }},
			{Header: "column.caption", Value: func(p api.Post) string { return truncate(p.Caption, 80) }, Export: func(p api.Post) string { return p.Caption }},
			{Header: "column.type", Value: func(p api.Post) string { return Text(p.Type) }, Export: func(p api.Post) string { return p.Type }},
			{Header: "column.likes", Value: func(p api.Post) string { return Count(p.Likes) }, Export: func(p api.Post) string { return Decimal(p.Likes) }, SortField: "likes"},
			{Header: "column.comments", Value: func(p api.Post) string { return Count(p.Comments) }, Export: func(p api.Post) string { return Decimal(p.Comments) }, SortField: "comments"},
			{Header: "column.created", Value: func(p api.Post) string { return Date(p.CreatedAt) }, Export: func(p api.Post) string { return Timestamp(p.CreatedAt) }, SortField: "created_at"},
		},
	}
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return Text(value)
	}
	return string(runes[:limit-1]) + "…"
}
