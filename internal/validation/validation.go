// Package validation validates untrusted request input at the API boundary:
// duplicate-key specifications, export field selections, and formats.
package validation

import (
	"strings"

	"contactdb/internal/models"
)

// CompositeKey is the reserved key token grouping by first name, last name
// and company joined with Delimiter.
const CompositeKey = "name_company"

// Delimiter joins and splits composite key values. It is fixed and not
// escaped within field values.
const Delimiter = "|"

// DefaultKey is used when a requested key is missing or not allow-listed.
const DefaultKey = "email"

// DefaultGroupingKeys are the single-field keys eligible for duplicate
// grouping unless overridden by file config.
var DefaultGroupingKeys = []string{"email", "phone", "company"}

// KeySpec is a validated duplicate-key specification: either one
// allow-listed contact column, or the composite name+company key. The
// column is always drawn from the allow-list, never from raw input, because
// it ends up inside a store query.
type KeySpec struct {
	Key       string
	Column    string
	Composite bool
}

// Keys holds the grouping-key allow-list.
type Keys struct {
	allowed map[string]bool
}

// NewKeys builds a key allow-list from the given single-field names,
// dropping any name that is not a known contact field. A nil or empty list
// falls back to DefaultGroupingKeys.
func NewKeys(fields []string) *Keys {
	if len(fields) == 0 {
		fields = DefaultGroupingKeys
	}
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if models.IsKnownField(f) {
			allowed[f] = true
		}
	}
	if len(allowed) == 0 {
		for _, f := range DefaultGroupingKeys {
			allowed[f] = true
		}
	}
	return &Keys{allowed: allowed}
}

// Parse resolves a requested key token into a KeySpec, falling back to
// DefaultKey for anything not allow-listed.
func (k *Keys) Parse(key string) KeySpec {
	key = strings.TrimSpace(key)
	if key == CompositeKey {
		return KeySpec{Key: CompositeKey, Composite: true}
	}
	if k.allowed[key] {
		return KeySpec{Key: key, Column: key}
	}
	return KeySpec{Key: DefaultKey, Column: DefaultKey}
}

// CompositeValue builds the synthetic grouping value for a contact.
func CompositeValue(first, last, company string) string {
	return first + Delimiter + last + Delimiter + company
}

// SplitComposite decomposes a composite key value back into its parts.
// Malformed values degrade gracefully: missing parts become empty strings
// and extra delimiters fold into the last part.
func SplitComposite(value string) (first, last, company string) {
	parts := strings.SplitN(value, Delimiter, 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// ExportFields validates a requested field selection, keeping only known
// contact fields in request order. An empty selection yields the fallback,
// or every contact field if no fallback is configured.
func ExportFields(requested []string, fallback []string) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, f := range requested {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] || !models.IsKnownField(f) {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		if len(fallback) > 0 {
			return fallback
		}
		return models.ContactFields
	}
	return fields
}

// NormalizeEmail lowercases and trims an email so upserts are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
