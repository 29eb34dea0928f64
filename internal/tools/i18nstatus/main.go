// Package main reports translation coverage of the embedded console catalogs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	i18ncatalog "github.com/louisbranch/socialadmin/internal/platform/i18n/catalog"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale      string   `json:"locale"`
	Namespaces  []string `json:"namespaces"`
	BaseKeys    int      `json:"base_keys"`
	Translated  int      `json:"translated"`
	Completion  float64  `json:"completion"`
	MissingKeys []string `json:"missing_keys,omitempty"`
	ExtraKeys   []string `json:"extra_keys,omitempty"`
}

func main() {
	var jsonOut string
	var strict bool
	flag.StringVar(&jsonOut, "json-out", "", "also write the report as JSON to this path")
	flag.BoolVar(&strict, "strict", false, "exit non-zero when any locale is incomplete")
	flag.Parse()
	log.SetPrefix("[I18N] ")

	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		log.Fatalf("load catalogs: %v", err)
	}
	rep := buildReport(bundle)
	writeMarkdown(os.Stdout, rep)
	if jsonOut != "" {
		if err := writeJSON(jsonOut, rep); err != nil {
			log.Fatalf("write json report: %v", err)
		}
	}
	if strict && !rep.complete() {
		os.Exit(1)
	}
}

func buildReport(bundle *i18ncatalog.Bundle) report {
	rep := report{BaseLocale: i18ncatalog.BaseLocale}
	base := bundle.Len(i18ncatalog.BaseLocale)
	for _, locale := range bundle.Locales() {
		missing := bundle.Missing(locale)
		translated := base - len(missing)
		rep.Locales = append(rep.Locales, localeStatus{
			Locale:      locale,
			Namespaces:  bundle.Namespaces(locale),
			BaseKeys:    base,
			Translated:  translated,
			Completion:  percent(translated, base),
			MissingKeys: missing,
			ExtraKeys:   bundle.Extra(locale),
		})
	}
	return rep
}

func (r report) complete() bool {
	for _, locale := range r.Locales {
		if len(locale.MissingKeys) > 0 || len(locale.ExtraKeys) > 0 {
			return false
		}
	}
	return true
}

func percent(n, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(n) * 100 / float64(total)
}

func writeMarkdown(w io.Writer, rep report) {
	fmt.Fprintf(w, "# I18n status\n\nBase locale: `%s`.\n\n", rep.BaseLocale)
	fmt.Fprintln(w, "| Locale | Base Keys | Translated | Missing | Extra | Completion |")
	fmt.Fprintln(w, "| --- | ---: | ---: | ---: | ---: | ---: |")
	for _, locale := range rep.Locales {
		fmt.Fprintf(w, "| `%s` | %d | %d | %d | %d | %.1f%% |\n",
			locale.Locale, locale.BaseKeys, locale.Translated, len(locale.MissingKeys), len(locale.ExtraKeys), locale.Completion)
	}
	for _, locale := range rep.Locales {
		if len(locale.MissingKeys) == 0 && len(locale.ExtraKeys) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n## `%s`\n", locale.Locale)
		writeKeys(w, "Missing", locale.MissingKeys)
		writeKeys(w, "Extra", locale.ExtraKeys)
	}
}

func writeKeys(w io.Writer, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(w, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(w, "- `%s`\n", key)
	}
}

func writeJSON(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
