package templates

import admini18n "github.com/louisbranch/socialadmin/internal/services/admin/i18n"

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []admini18n.LanguageOption {
	return admini18n.LanguageOptions(page.Lang, func(key string) string {
		return T(page.Loc, key)
	})
}

// ActiveLanguageLabel returns the label for the active language selection.
func ActiveLanguageLabel(page PageContext) string {
	options := LanguageOptions(page)
	for _, option := range options {
		if option.Active {
			return option.Label
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0].Label
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(page PageContext, tag string) string {
	return admini18n.LanguageURL(page.CurrentPath, page.CurrentQuery, tag)
}
