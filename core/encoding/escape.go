// Package encoding holds charset conversion and XML escaping shared by the
// dialect writers and the formatter.
package encoding

import "strings"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	// Whitespace is escaped in attributes so that a re-parse does not
	// normalize it to spaces.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;",
	)
)

// EscapeXMLText escapes character data. Quotes are left alone.
func EscapeXMLText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeXMLAttr escapes a double-quoted attribute value.
func EscapeXMLAttr(s string) string {
	return attrEscaper.Replace(s)
}
