package pipeline

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatThousands renders n with comma thousands separators, e.g. 12,345.
func FormatThousands(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
