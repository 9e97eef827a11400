package domain

import "golang.org/x/text/language"

// Pivot is the canonical language all message text is normalized into
// before storage.
var Pivot = language.English

// supportedLanguages maps the preferred-language names stored on user
// profiles to their BCP 47 tags. The set is fixed; anything outside it is
// treated as the pivot language and no translation is attempted.
var supportedLanguages = map[string]language.Tag{
	"English":   language.English,
	"German":    language.German,
	"Italian":   language.Italian,
	"Malayalam": language.Malayalam,
	"Hindi":     language.Hindi,
}

// ResolveLanguage maps a user's preferred-language name to its tag.
// Unrecognized or missing names resolve to the pivot language.
func ResolveLanguage(name string) language.Tag {
	if tag, ok := supportedLanguages[name]; ok {
		return tag
	}
	return Pivot
}

// LanguageCode returns the short code ("en", "de", ...) the translation
// provider expects for a tag.
func LanguageCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// IsPivot reports whether the tag is the canonical storage language.
func IsPivot(tag language.Tag) bool {
	return tag == Pivot
}
