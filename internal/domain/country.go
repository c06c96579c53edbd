package domain

import "strings"

// CountryFlag собирает флаг страны из двухбуквенного кода ISO 3166-1.
// Для кода не из латинских букв возвращается белый флаг.
func CountryFlag(code string) string {
	if len(code) != 2 { //nolint:mnd
		return "🏳"
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return "🏳"
		}
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}
