package importer

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeHeader converts a spreadsheet column header into a camelCase
// contact field key: "First Name" -> "firstName", "Company Name" ->
// "companyName". Leading/trailing whitespace is trimmed and internal
// whitespace runs are collapsed before casing. An empty or
// whitespace-only header normalizes to "".
func NormalizeHeader(header string) string {
	words := strings.Fields(strings.ToLower(header))
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(words[0])
	for _, word := range words[1:] {
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// MapRowToContact builds a contact record from one data row, keyed by the
// camelCase normalization of each header. A key is set only when the
// header at that position normalizes non-empty and the cell at that
// position is present and non-empty; empty cells leave the key absent
// rather than set to "". Rows shorter than the header row are fine, the
// trailing columns simply produce no entries. If two headers normalize to
// the same key the later column wins.
func MapRowToContact(row, headers []interface{}) map[string]string {
	contact := make(map[string]string)

	for i, header := range headers {
		if header == nil {
			continue
		}
		key := NormalizeHeader(fmt.Sprintf("%v", header))
		if key == "" {
			continue
		}

		if i >= len(row) || row[i] == nil {
			continue
		}
		value := fmt.Sprintf("%v", row[i])
		if value == "" {
			continue
		}

		contact[key] = value
	}

	return contact
}
