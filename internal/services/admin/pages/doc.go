// Package pages declares the list pages of the console as listview
// descriptors. Pages differ only in data: searchable fields, filters, sort
// whitelist, columns and export summary.
//
// Column headers, filter labels and option labels are message keys resolved
// by the admin i18n catalog at render time.
package pages
