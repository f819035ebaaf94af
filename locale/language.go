package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Language selects the locale descriptions are rendered in.
type Language int

const (
	English   Language = iota // en-US
	EnglishGB                 // en-GB
	Spanish                   // es-ES
)

// Default is used when a template is missing for the requested language.
const Default = English

// supported is indexed by Language.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.EuropeanSpanish,
}

var matcher = language.NewMatcher(supported)

// Languages returns every supported language.
func Languages() []Language {
	return []Language{English, EnglishGB, Spanish}
}

func (l Language) valid() bool {
	return l >= English && l <= Spanish
}

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	if !l.valid() {
		return supported[Default]
	}
	return supported[l]
}

// String returns the BCP 47 code, e.g. "en-US".
func (l Language) String() string {
	if !l.valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return supported[l].String()
}

// localeName is the go-playground/locales identifier for the language.
func (l Language) localeName() string {
	switch l {
	case EnglishGB:
		return "en_GB"
	case Spanish:
		return "es"
	default:
		return "en"
	}
}

// Parse maps a BCP 47 tag to the closest supported language. A tag that
// only reaches a supported language through the matcher's last-resort
// fallback is rejected.
func Parse(s string) (Language, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Default, fmt.Errorf("locale: invalid language tag %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return Default, fmt.Errorf("locale: unsupported language %q", s)
	}
	return Language(idx), nil
}

// Match returns the best supported language for a list of preferences, such
// as the values of an Accept-Language header. It never fails.
func Match(prefs ...string) Language {
	tags := make([]language.Tag, 0, len(prefs))
	for _, p := range prefs {
		if tag, err := language.Parse(p); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf < language.High {
		return Default
	}
	return Language(idx)
}
