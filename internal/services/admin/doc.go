// Package admin serves the social platform admin console.
//
// Every list page keeps a per-session copy of its collection and query, so
// search, filter, sort, paging and CSV export work client side against the
// last fetch. Mutations go to the platform REST API first and patch the local
// copy only after the API accepts them.
package admin
