// internal/workers/media/select-video/language.go
package selectvideo

// languageCodes maps a human-readable language name to the locale codes the
// video index is queried with, most specific preference first.
var languageCodes = map[string][]string{
	"English":    {"en", "en-US"},
	"Hindi":      {"hi", "hi-IN"},
	"Spanish":    {"es", "es-ES"},
	"French":     {"fr", "fr-FR"},
	"German":     {"de", "de-DE"},
	"Italian":    {"it", "it-IT"},
	"Portuguese": {"pt", "pt-BR"},
	"Japanese":   {"ja", "ja-JP"},
	"Korean":     {"ko", "ko-KR"},
	"Chinese":    {"zh", "zh-CN"},
	"Arabic":     {"ar", "ar-SA"},
	"Russian":    {"ru", "ru-RU"},
	"Tamil":      {"ta", "ta-IN"},
	"Telugu":     {"te", "te-IN"},
	"Bengali":    {"bn", "bn-IN"},
	"Marathi":    {"mr", "mr-IN"},
	"Gujarati":   {"gu", "gu-IN"},
	"Kannada":    {"kn", "kn-IN"},
	"Malayalam":  {"ml", "ml-IN"},
	"Punjabi":    {"pa", "pa-IN"},
}

const defaultLocale = "en"

// ResolveLanguageCodes returns the ordered locale codes to try for a language
// name. Unknown names resolve to the English default pair; "en" is always in
// the result so every query has a final fallback locale.
func ResolveLanguageCodes(language string) []string {
	mapped, ok := languageCodes[language]
	if !ok {
		mapped = languageCodes["English"]
	}

	codes := make([]string, len(mapped), len(mapped)+1)
	copy(codes, mapped)

	for _, c := range codes {
		if c == defaultLocale {
			return codes
		}
	}
	return append(codes, defaultLocale)
}
