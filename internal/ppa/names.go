package ppa

import (
	"strings"
	"unicode"
)

// CleanName rewrites a spreadsheet header into a lowercase snake_case
// identifier: "Capacity (MW)" becomes "capacity_mw" and "Levelized Price
// ($/MWh)" becomes "levelized_price_mwh". Runs of anything that is not a
// letter or digit collapse to one underscore.
func CleanName(header string) string {
	header = strings.ReplaceAll(header, "%", " percent ")
	header = strings.ReplaceAll(header, "#", " number ")

	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return b.String()
}
