package culture

import "strings"

const (
	cookieSeparator = "|"
	culturePrefix   = "c="
	uiCulturePrefix = "uic="
)

// MakeCookieValue encodes c as the value of a locale preference cookie.
func MakeCookieValue(c string) string {
	return culturePrefix + c + cookieSeparator + uiCulturePrefix + c
}

// ParseCookieValue decodes a locale preference cookie and returns its culture.
// When only one of the two parts carries a value, that value is used.
func ParseCookieValue(value string) (string, bool) {
	parts := strings.Split(value, cookieSeparator)
	if len(parts) != 2 {
		return "", false
	}

	c, ok := strings.CutPrefix(parts[0], culturePrefix)
	if !ok {
		return "", false
	}
	uic, ok := strings.CutPrefix(parts[1], uiCulturePrefix)
	if !ok {
		return "", false
	}

	switch {
	case c != "":
		return c, true
	case uic != "":
		return uic, true
	default:
		return "", false
	}
}
