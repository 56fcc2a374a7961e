// internal/workers/media/select-video/language_test.go
package selectvideo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguageCodes_KnownLanguage(t *testing.T) {
	codes := ResolveLanguageCodes("Kannada")

	assert.Equal(t, []string{"kn", "kn-IN", "en"}, codes)
}

func TestResolveLanguageCodes_English(t *testing.T) {
	codes := ResolveLanguageCodes("English")

	// Already contains "en"; nothing appended.
	assert.Equal(t, []string{"en", "en-US"}, codes)
}

func TestResolveLanguageCodes_UnknownLanguage(t *testing.T) {
	codes := ResolveLanguageCodes("Klingon")

	assert.Equal(t, []string{"en", "en-US"}, codes)
}

func TestResolveLanguageCodes_AlwaysContainsDefault(t *testing.T) {
	for lang := range languageCodes {
		codes := ResolveLanguageCodes(lang)
		assert.NotEmpty(t, codes, lang)
		assert.Contains(t, codes, "en", lang)
	}
}

func TestResolveLanguageCodes_DoesNotMutateMap(t *testing.T) {
	_ = ResolveLanguageCodes("Hindi")
	_ = ResolveLanguageCodes("Hindi")

	assert.Equal(t, []string{"hi", "hi-IN"}, languageCodes["Hindi"])
}
