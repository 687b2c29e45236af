package pattern

import "strings"

// Normalize uppercases, trims, and collapses internal whitespace runs to single spaces.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}

// NormalizeSpaceless is Normalize with all whitespace removed.
// Only alternate merchant patterns are compared in this form.
func NormalizeSpaceless(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), "")
}

// Description carries both normalized forms of a transaction description,
// computed once and shared by every tier.
type Description struct {
	Raw        string
	Normalized string
	Spaceless  string
}

// NewDescription normalizes raw into both forms.
func NewDescription(raw string) Description {
	fields := strings.Fields(strings.ToUpper(raw))
	return Description{
		Raw:        raw,
		Normalized: strings.Join(fields, " "),
		Spaceless:  strings.Join(fields, ""),
	}
}

// IsEmpty reports whether nothing remains after normalization.
func (d Description) IsEmpty() bool {
	return d.Normalized == ""
}
