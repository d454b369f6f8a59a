package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"First Name", "firstName"},
		{"Email", "email"},
		{"Company Name", "companyName"},
		{"  Phone  ", "phone"},
		{"postal   code", "postalCode"},
		{"STREET ADDRESS", "streetAddress"},
		{"date of birth", "dateOfBirth"},
		{"", ""},
		{"   ", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, NormalizeHeader(test.header), "header %q", test.header)
	}
}

func TestMapRowToContact(t *testing.T) {
	headers := []interface{}{"First Name", "Email", "Phone"}
	row := []interface{}{"Ada", "ada@x.com", "555-0100"}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, map[string]string{
		"firstName": "Ada",
		"email":     "ada@x.com",
		"phone":     "555-0100",
	}, contact)
}

func TestMapRowToContactDropsEmptyCells(t *testing.T) {
	headers := []interface{}{"First Name", "Notes"}
	row := []interface{}{"Bob", ""}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, map[string]string{"firstName": "Bob"}, contact)
	_, ok := contact["notes"]
	assert.False(t, ok, "empty cell must not produce a key")
}

func TestMapRowToContactIgnoresEmptyHeaders(t *testing.T) {
	headers := []interface{}{"", "Email", "   "}
	row := []interface{}{"orphan value", "ada@x.com", "another orphan"}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, map[string]string{"email": "ada@x.com"}, contact)
}

func TestMapRowToContactShortRow(t *testing.T) {
	headers := []interface{}{"First Name", "Email", "Company Name"}
	row := []interface{}{"Ada"}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, map[string]string{"firstName": "Ada"}, contact)
}

func TestMapRowToContactNilCells(t *testing.T) {
	headers := []interface{}{"First Name", "Email"}
	row := []interface{}{nil, "ada@x.com"}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, map[string]string{"email": "ada@x.com"}, contact)
}

func TestMapRowToContactZeroLikeValuesKept(t *testing.T) {
	headers := []interface{}{"Phone"}
	row := []interface{}{"0"}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, map[string]string{"phone": "0"}, contact)
}

func TestMapRowToContactCollidingHeadersLastWins(t *testing.T) {
	headers := []interface{}{"First Name", "first   name"}
	row := []interface{}{"Ada", "Grace"}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, map[string]string{"firstName": "Grace"}, contact)
}

func TestMapRowToContactNonStringCells(t *testing.T) {
	// The Sheets API value grid is []interface{}; numeric cells arrive as
	// float64 and must still stringify.
	headers := []interface{}{"Age", "Email"}
	row := []interface{}{float64(30), "ada@x.com"}

	contact := MapRowToContact(row, headers)

	assert.Equal(t, "30", contact["age"])
}
