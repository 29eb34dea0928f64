// Package listview derives paginated, searchable, filterable and sortable
// views over in-memory record collections.
//
// A page is configured once with a Descriptor naming its fields, search
// fields, filters, sort whitelist and columns. A Query holds the per-page
// state. Apply and ExportCSV are pure functions of the descriptor, the
// records and the query.
package listview
