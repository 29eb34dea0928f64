package pages

import (
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
)

// Downloads lists the downloadable app builds, one per type.
func Downloads() listview.Descriptor[api.DownloadConfig] {
	return listview.Descriptor[api.DownloadConfig]{
		Name: "download-configs",
		ID:   func(d api.DownloadConfig) string { return d.Type },
		Fields: map[string]listview.Field[api.DownloadConfig]{
			"type":       listview.String(func(d api.DownloadConfig) string { return d.Type }),
			"version":    listview.String(func(d api.DownloadConfig) string { return d.Version }),
			"enabled":    listview.Bool(func(d api.DownloadConfig) bool { return d.Enabled }),
			"updated_at": listview.Time(func(d api.DownloadConfig) time.Time { return d.UpdatedAt }),
		},
		SearchFields: []string{"type", "version"},
		Filters: []listview.FilterDef{
			{Key: "enabled", Field: "enabled", Kind: listview.FilterEnum, Label: "filter.enabled", Options: []listview.Option{
				{Value: "true", Label: "option.enabled"},
				{Value: "false", Label: "option.disabled"},
			}},
		},
		SortFields:  []string{"type", "version", "updated_at"},
		DefaultSort: listview.Sort{Field: "type", Dir: listview.Asc},
		Columns: []listview.Column[api.DownloadConfig]{
			{Header: "column.type", Value: func(d api.DownloadConfig) string { return d.Type }, SortField: "type"},
			{Header: "column.version", Value: func(d api.DownloadConfig) string { return Text(d.Version) }, Export: func(d api.DownloadConfig) string { return d.Version }, SortField: "version"},
			{Header: "column.url", Value: func(d api.DownloadConfig) string { return Text(d.URL) }, Export: func(d api.DownloadConfig) string { return d.URL }},
			{Header: "column.enabled", Value: func(d api.DownloadConfig) string { return YesNo(d.Enabled) }, Export: func(d api.DownloadConfig) string { return boolText(d.Enabled) }},
			{Header: "column.updated", Value: func(d api.DownloadConfig) string { return DateTime(d.UpdatedAt) }, Export: func(d api.DownloadConfig) string { return Timestamp(d.UpdatedAt) }, SortField: "updated_at"},
		},
	}
}
