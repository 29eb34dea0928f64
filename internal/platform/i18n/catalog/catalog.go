// Package catalog loads the embedded translation files and registers them with
// golang.org/x/text/message.
//
// Each file lives at locales/<locale>/<namespace>.yaml and holds a flat map of
// quoted keys to quoted values:
//
//	locale: "en-US"
//	namespace: "admin"
//	messages:
//	  "nav.users": "Users"
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the locale every other locale falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embedded embed.FS

// Bundle holds messages per locale.
type Bundle struct {
	messages   map[string]map[string]string
	namespaces map[string][]string
}

// Load reads every catalog file from fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	files, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no catalog files found")
	}
	slices.Sort(files)

	b := &Bundle{messages: map[string]map[string]string{}, namespaces: map[string][]string{}}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		if err := b.add(file, data); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", file, err)
		}
	}
	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s has no catalog", BaseLocale)
	}
	return b, nil
}

// LoadEmbedded reads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return Load(embedded)
}

// MustRegisterEmbedded loads the embedded catalogs and registers them,
// panicking on malformed files.
func MustRegisterEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}

func (b *Bundle) add(file string, data []byte) error {
	locale, namespace, entries, err := parse(data)
	if err != nil {
		return err
	}
	if dir := path.Base(path.Dir(file)); locale != dir {
		return fmt.Errorf("locale %q does not match directory %q", locale, dir)
	}
	if name := strings.TrimSuffix(path.Base(file), path.Ext(file)); namespace != name {
		return fmt.Errorf("namespace %q does not match file name %q", namespace, name)
	}
	if slices.Contains(b.namespaces[locale], namespace) {
		return fmt.Errorf("namespace %q loaded twice for %s", namespace, locale)
	}

	target := b.messages[locale]
	if target == nil {
		target = map[string]string{}
		b.messages[locale] = target
	}
	for key, value := range entries {
		if _, dup := target[key]; dup {
			return fmt.Errorf("key %q already defined for %s", key, locale)
		}
		target[key] = value
	}
	b.namespaces[locale] = append(b.namespaces[locale], namespace)
	return nil
}

// Register installs every message in the default x/text catalog under the
// locale tag and, when different, its base language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag := language.Make(base.String()); baseTag.String() != tag.String() {
				tags = append(tags, baseTag)
			}
		}
		for key, value := range b.messages[locale] {
			for _, t := range tags {
				if err := message.SetString(t, key, value); err != nil {
					return fmt.Errorf("register %s %q: %w", t, key, err)
				}
			}
		}
	}
	return nil
}

// Locales lists loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.messages))
}

// Namespaces lists the namespaces loaded for locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	return slices.Clone(b.namespaces[locale])
}

// Message returns the value for key, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	if value, ok := b.messages[locale][key]; ok {
		return value, true
	}
	value, ok := b.messages[BaseLocale][key]
	return value, ok
}

// Missing lists base-locale keys that locale does not translate.
func (b *Bundle) Missing(locale string) []string {
	if b == nil {
		return nil
	}
	var missing []string
	for key := range b.messages[BaseLocale] {
		if _, ok := b.messages[locale][key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

// Extra lists keys locale defines that BaseLocale does not.
func (b *Bundle) Extra(locale string) []string {
	if b == nil {
		return nil
	}
	var extra []string
	for key := range b.messages[locale] {
		if _, ok := b.messages[BaseLocale][key]; !ok {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return extra
}

// Len reports how many keys locale defines.
func (b *Bundle) Len(locale string) int {
	if b == nil {
		return 0
	}
	return len(b.messages[locale])
}

func parse(data []byte) (locale, namespace string, entries map[string]string, err error) {
	entries = map[string]string{}
	inMessages := false
	for n, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case line == "messages:":
			inMessages = true
		case !inMessages && strings.HasPrefix(line, "locale:"):
			locale, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
		case !inMessages && strings.HasPrefix(line, "namespace:"):
			namespace, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "namespace:")))
		case inMessages:
			var key, value string
			key, value, err = parseEntry(line)
			if err == nil {
				if _, dup := entries[key]; dup {
					err = fmt.Errorf("duplicate key %q", key)
				}
				entries[key] = value
			}
		default:
			err = errors.New("unexpected content before messages")
		}
		if err != nil {
			return "", "", nil, fmt.Errorf("line %d: %w", n+1, err)
		}
	}
	switch {
	case locale == "":
		return "", "", nil, errors.New("locale is required")
	case namespace == "":
		return "", "", nil, errors.New("namespace is required")
	case len(entries) == 0:
		return "", "", nil, errors.New("no messages")
	}
	return locale, namespace, entries, nil
}

// parseEntry splits `"key": "value"`.
func parseEntry(line string) (string, string, error) {
	keyToken, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", "", fmt.Errorf("key: %w", err)
	}
	key, _ := strconv.Unquote(keyToken)
	if strings.TrimSpace(key) == "" {
		return "", "", errors.New("blank key")
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(line[len(keyToken):]), ":")
	if !ok {
		return "", "", errors.New("missing ':' after key")
	}
	value, err := strconv.Unquote(strings.TrimSpace(rest))
	if err != nil {
		return "", "", fmt.Errorf("value: %w", err)
	}
	return key, value, nil
}
