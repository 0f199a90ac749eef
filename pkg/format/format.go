// Package format renders upstream counts for display.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered for counts the upstream omitted or hid.
const Placeholder = "-"

var printer = message.NewPrinter(language.English)

// Count renders a raw upstream count with locale grouping ("1234567" ->
// "1,234,567"). Values that do not parse as integers are returned verbatim
// rather than erroring.
func Count(raw string) string {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return printer.Sprintf("%d", n)
}

// OptionalCount renders a nullable count, Placeholder when absent.
func OptionalCount(raw *string) string {
	if raw == nil {
		return Placeholder
	}
	return Count(*raw)
}

// Int64 renders a nullable integer, Placeholder when absent.
func Int64(n *int64) string {
	if n == nil {
		return Placeholder
	}
	return printer.Sprintf("%d", *n)
}
