package feedsync

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when a date transform parses a feed value.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// applyTransform converts one resolved feed value according to the rule's
// transform configuration. Values pass through unchanged when no transform
// is configured, except for the optional trim.
func applyTransform(rule feed.MappingRule, value string) string {
	if rule.Trim {
		value = strings.TrimSpace(value)
	}

	switch rule.Transform {
	case feed.TransformNumber:
		return transformNumber(value, rule.Decimals)
	case feed.TransformDate:
		return transformDate(value)
	case feed.TransformText:
		return transformText(value, rule.TextTransform)
	case feed.TransformBoolean:
		return transformBoolean(value, rule.BooleanCompare)
	}
	return value
}

// transformNumber renders the value with a fixed number of decimal places.
// Zero places truncates toward zero instead of rounding, so prices like
// "12.50" persist as "12" rather than "13" for "12.90".
func transformNumber(value string, decimals int) string {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	d, err := decimal.NewFromString(value)
	if err != nil {
		d = decimal.Zero
	}
	if decimals <= 0 {
		return d.Truncate(0).String()
	}
	return d.StringFixed(int32(decimals))
}

// transformDate parses the value into a Unix timestamp string. Unparseable
// values yield "0".
func transformDate(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return strconv.FormatInt(t.Unix(), 10)
		}
	}
	return "0"
}

func transformText(value, mode string) string {
	switch mode {
	case feed.TextLowercase:
		return strings.ToLower(value)
	case feed.TextUppercase:
		return strings.ToUpper(value)
	case feed.TextCapitalize:
		return capitalizeFirst(value)
	case feed.TextRemoveSpecialChar:
		return standardizeSpecialChars(value)
	}
	return value
}

// capitalizeFirst upper-cases the first rune only.
func capitalizeFirst(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if size == 0 || r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// transformBoolean maps the value to "1"/"0". With a compare value the
// result is the equality; otherwise the truthy literals "true" and "1" win.
func transformBoolean(value, compare string) string {
	value = strings.TrimSpace(value)
	if compare != "" {
		if value == compare {
			return "1"
		}
		return "0"
	}
	if value == "true" || value == "1" {
		return "1"
	}
	return "0"
}

var specialCharReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"„", `"`, // low double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...",
)

// standardizeSpecialChars maps typographic quotes, dashes and the ellipsis
// to their plain ASCII form. All other characters, umlauts included, pass
// through unchanged.
func standardizeSpecialChars(value string) string {
	return specialCharReplacer.Replace(value)
}
