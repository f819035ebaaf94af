// Package locale provides the localized text and week conventions used when
// describing schedules.
package locale

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"

	"github.com/cyp0633/schedcfg/internal/resx"
)

// Template keys.
const (
	KeyOnce           = "once"
	KeyScheduledOn    = "scheduled_on"
	KeyStartingOn     = "starting_on"
	KeyEndingOn       = "ending_on"
	KeyEveryPeriod    = "every_period"
	KeyOnDays         = "on_days"
	KeyAnd            = "and"
	KeyListSeparator  = "list_separator"
	KeyAtTime         = "at_time"
	KeyEveryFrequency = "every_frequency"
	KeyBetween        = "between"
	KeyDays           = "days"
	KeyWeeks          = "weeks"
	KeyMonths         = "months"
	KeyYears          = "years"
	KeyHours          = "hours"
	KeyMinutes        = "minutes"
	KeySeconds        = "seconds"
	KeyDateLayout     = "date_layout"
	KeyTimeLayout     = "time_layout"
)

// ErrUnknownKey is returned when a key exists neither in the requested
// language nor in the default one.
var ErrUnknownKey = errors.New("locale: unknown key")

//go:embed resources.xml
var resources []byte

// Catalog is a read-only table of templates keyed by (language, key). It is
// safe for concurrent use once built.
type Catalog struct {
	uni       *ut.UniversalTranslator
	templates map[Language]map[string]string
}

// NewCatalog builds a catalog from a resource table. Every language code in
// the table must be supported and the default language must be present.
func NewCatalog(table resx.Table) (*Catalog, error) {
	c := &Catalog{
		uni:       ut.New(en.New(), en.New(), en_GB.New(), es.New()),
		templates: make(map[Language]map[string]string, len(table)),
	}

	byCode := make(map[string]Language)
	for _, lang := range Languages() {
		byCode[lang.String()] = lang
	}

	for code, entries := range table {
		lang, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("locale: unsupported language %q in resource table", code)
		}

		trans := c.translator(lang)
		copied := make(map[string]string, len(entries))
		for key, text := range entries {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("locale: %s: adding %q: %w", code, key, err)
			}
			copied[key] = text
		}
		c.templates[lang] = copied
	}

	if len(c.templates[Default]) == 0 {
		return nil, fmt.Errorf("locale: resource table has no entries for %s", Default)
	}

	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	table, err := resx.Parse(bytes.NewReader(resources))
	if err != nil {
		return nil, err
	}
	return NewCatalog(table)
})

// DefaultCatalog returns the catalog built from the bundled resources. It is
// built on first use and shared afterwards.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// MustDefaultCatalog is like DefaultCatalog but panics if the bundled
// resources are broken.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) translator(lang Language) ut.Translator {
	if trans, ok := c.uni.GetTranslator(lang.localeName()); ok {
		return trans
	}
	return c.uni.GetFallback()
}

// Lookup returns the raw template for key. Placeholders ({0}, {1}, ...) are
// left untouched.
func (c *Catalog) Lookup(key string, lang Language) (string, error) {
	if s, ok := c.templates[lang][key]; ok {
		return s, nil
	}
	if s, ok := c.templates[Default][key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// LookupList resolves several keys at once, in order.
func (c *Catalog) LookupList(keys []string, lang Language) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		s, err := c.Lookup(key, lang)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Format fills the template for key with args.
func (c *Catalog) Format(key string, lang Language, args ...string) (string, error) {
	from := lang
	tmpl, ok := c.templates[lang][key]
	if !ok {
		from = Default
		if tmpl, ok = c.templates[Default][key]; !ok {
			return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
		}
	}
	if n := strings.Count(tmpl, "{"); n != len(args) {
		return "", fmt.Errorf("locale: %q takes %d arguments, got %d", key, n, len(args))
	}
	return c.translator(from).T(key, args...)
}

// WeekdayName returns the full name of day in lang.
func (c *Catalog) WeekdayName(day time.Weekday, lang Language) string {
	return c.translator(lang).WeekdayWide(day)
}

// PeriodName returns the plural unit name stored under key ("days",
// "weeks", "hours", ...).
func (c *Catalog) PeriodName(key string, lang Language) (string, error) {
	return c.Lookup(key, lang)
}
