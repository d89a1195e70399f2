// Package catalog loads the embedded YAML message catalogs and registers them
// with golang.org/x/text/message.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "fr-FR"

// coreNamespace owns every "core." key.
const coreNamespace = "core"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds catalog messages keyed by locale, then namespace, then key.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the embedded bundle, loading it and registering it with
// x/text/message on first use. The catalogs ship inside the binary, so a load
// failure panics.
func Default() *Bundle {
	defaultOnce.Do(func() {
		bundle, err := LoadEmbedded()
		if err == nil {
			err = bundle.Register()
		}
		if err != nil {
			panic(fmt.Sprintf("load embedded catalogs: %v", err))
		}
		defaultBundle = bundle
	})
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		f, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode catalog %s: %w", p, err)
		}
		if err := b.add(p, f); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s has no catalog", BaseLocale)
	}
	return b, nil
}

func decode(data []byte) (file, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return file{}, err
	}
	f.Locale = strings.TrimSpace(f.Locale)
	f.Namespace = strings.TrimSpace(f.Namespace)
	return f, nil
}

// add checks a decoded file against its path and merges its messages. Keys
// are unique per locale across namespaces.
func (b *Bundle) add(p string, f file) error {
	wantLocale := path.Base(path.Dir(p))
	wantNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	switch {
	case f.Locale != wantLocale:
		return fmt.Errorf("locale %q does not match directory %q", f.Locale, wantLocale)
	case f.Namespace != wantNamespace:
		return fmt.Errorf("namespace %q does not match file name %q", f.Namespace, wantNamespace)
	case len(f.Messages) == 0:
		return fmt.Errorf("no messages")
	}
	if _, err := language.Parse(f.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", f.Locale, err)
	}

	namespaces, ok := b.locales[f.Locale]
	if !ok {
		namespaces = map[string]map[string]string{}
		b.locales[f.Locale] = namespaces
	}
	if _, dup := namespaces[f.Namespace]; dup {
		return fmt.Errorf("namespace %q defined twice", f.Namespace)
	}
	messages := make(map[string]string, len(f.Messages))
	for key, text := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("blank message key")
		}
		if strings.HasPrefix(key, coreNamespace+".") && f.Namespace != coreNamespace {
			return fmt.Errorf("key %q belongs in the %s namespace", key, coreNamespace)
		}
		if _, _, found := b.find(f.Locale, key); found {
			return fmt.Errorf("key %q already defined for %s", key, f.Locale)
		}
		messages[key] = text
	}
	namespaces[f.Namespace] = messages
	return nil
}

func (b *Bundle) find(locale, key string) (string, string, bool) {
	for namespace, messages := range b.locales[locale] {
		if text, ok := messages[key]; ok {
			return namespace, text, true
		}
	}
	return "", "", false
}

// Register makes every message available to message.Printer under its
// locale tag and that tag's bare language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for locale, namespaces := range b.locales {
		tag := language.MustParse(locale)
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if bare := language.Make(base.String()); bare != tag {
				tags = append(tags, bare)
			}
		}
		for _, messages := range namespaces {
			for key, text := range messages {
				for _, t := range tags {
					if err := message.SetString(t, key, text); err != nil {
						return fmt.Errorf("register %s/%s: %w", t, key, err)
					}
				}
			}
		}
	}
	return nil
}

// Message returns the text for key in locale, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if _, text, ok := b.find(strings.TrimSpace(locale), key); ok {
		return text, true
	}
	_, text, ok := b.find(BaseLocale, key)
	return text, ok
}

// Namespace returns a copy of one namespace's messages and the locale that
// supplied them: locale when it defines the namespace, BaseLocale otherwise.
func (b *Bundle) Namespace(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	namespace = strings.TrimSpace(namespace)
	if b == nil {
		return BaseLocale, map[string]string{}
	}
	if messages, ok := b.locales[locale][namespace]; ok {
		return locale, clone(messages)
	}
	return BaseLocale, clone(b.locales[BaseLocale][namespace])
}

func clone(messages map[string]string) map[string]string {
	out := make(map[string]string, len(messages))
	for key, text := range messages {
		out[key] = text
	}
	return out
}
