package registry

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the closed set of catalogue languages.
type Language string

const (
	Chinese            Language = "zh" // simplified
	TraditionalChinese Language = "tc"
	Korean             Language = "ko"
	Japanese           Language = "ja"
	English            Language = "en"
	German             Language = "de"
	French             Language = "fr"
)

// Languages lists the supported languages in catalogue order.
var Languages = []Language{Chinese, TraditionalChinese, Korean, Japanese, English, German, French}

// matchTags is parallel to Languages.
var matchTags = []language.Tag{
	language.SimplifiedChinese,
	language.TraditionalChinese,
	language.Korean,
	language.Japanese,
	language.English,
	language.German,
	language.French,
}

var matcher = language.NewMatcher(matchTags)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, s := range Languages {
		if s == l {
			return true
		}
	}
	return false
}

// ParseLanguage maps a catalogue tag ("tc") or a BCP 47 tag ("zh-TW",
// "ja-JP") onto a supported language.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("language is required")
	}
	if l := Language(strings.ToLower(s)); l.Valid() {
		return l, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported language %q: must match one of %v", s, Languages)
	}
	return Languages[idx], nil
}
