package importer

import "strings"

// Canonical field names produced by header reconciliation.
const (
	fieldName     = "name"
	fieldEmail    = "email"
	fieldPhone    = "phone"
	fieldCategory = "category"
	fieldBirthday = "birthday"
	fieldCompany  = "company"
	fieldPhotoURL = "photoUrl"
)

// headerSynonyms maps the header spellings seen in exports from other contact
// apps onto canonical field names. Lookup is case-insensitive.
var headerSynonyms = map[string]string{
	"name":          fieldName,
	"full name":     fieldName,
	"email":         fieldEmail,
	"email address": fieldEmail,
	"phone":         fieldPhone,
	"phone number":  fieldPhone,
	"tel":           fieldPhone,
	"category":      fieldCategory,
	"tag":           fieldCategory,
	"group":         fieldCategory,
	"birthday":      fieldBirthday,
	"bday":          fieldBirthday,
	"date of birth": fieldBirthday,
	"company":       fieldCompany,
	"organization":  fieldCompany,
	"org":           fieldCompany,
	"photourl":      fieldPhotoURL,
	"photo":         fieldPhotoURL,
	"avatar":        fieldPhotoURL,
}

// canonicalField resolves a raw CSV header cell to its canonical field name.
// Unknown headers are reported as not found and their columns ignored.
func canonicalField(header string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(stripQuotes(header)))
	field, ok := headerSynonyms[key]
	return field, ok
}

// stripQuotes removes exactly one layer of surrounding double quotes. Files
// exported by tools that quote every cell otherwise leak literal quotes into
// the stored values.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
