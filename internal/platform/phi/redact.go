// Package phi provides best-effort redaction of patient identifiers in
// generated correspondence. The guarantee is deliberately weak: only literal,
// case-insensitive occurrences of the patient's full name are replaced.
// Nicknames, partial names, addresses, phone numbers, and dates of birth are
// not touched.
package phi

import "regexp"

// NamePlaceholder replaces redacted patient names in letter content.
const NamePlaceholder = "[PATIENT_NAME]"

// RedactName replaces every case-insensitive literal occurrence of name in
// text with NamePlaceholder. An empty name leaves the text unchanged.
func RedactName(text, name string) string {
	if name == "" {
		return text
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name))
	return re.ReplaceAllLiteralString(text, NamePlaceholder)
}
