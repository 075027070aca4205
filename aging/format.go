package aging

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount renders v with two decimals and thousands separators,
// e.g. 1234.5 -> "1,234.50".
func FormatAmount(v float64) string {
	if v == 0 || math.IsNaN(v) {
		v = 0
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.2f", v)
}
