package chatclient

import "strings"

const (
	LanguageEnglish = "en"
	LanguageTurkish = "tr"
)

// turkishLetters are the characters that only appear in Turkish text.
const turkishLetters = "çğışöüÇĞİŞÖÜ"

// DetectLanguage reports "tr" when text contains a Turkish-specific letter
// and "en" otherwise.
func DetectLanguage(text string) string {
	if strings.ContainsAny(text, turkishLetters) {
		return LanguageTurkish
	}
	return LanguageEnglish
}

// LanguageHint picks the language sent with a request. Bilingual sites follow
// the user's text; otherwise the configured primary language wins.
func LanguageHint(primary string, bilingual bool, text string) string {
	if bilingual {
		return DetectLanguage(text)
	}
	if strings.TrimSpace(primary) == "" {
		return LanguageEnglish
	}
	return primary
}
