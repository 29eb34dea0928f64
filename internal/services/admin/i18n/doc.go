// Package i18n resolves the admin's language and exposes the registered
// message catalog.
package i18n
