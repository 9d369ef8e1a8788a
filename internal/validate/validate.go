// Package validate applies the post-generation editing rules: soft-language
// substitution and platform length capping. Pure and deterministic; every
// change is recorded as an audit entry in application order.
package validate

import (
	"strings"
	"unicode"

	"marketeer/internal/platform"
	"marketeer/internal/types"
)

// bannedTerms maps risky marketing claims onto softer language.
// Substitution only, never removal, so sentences stay grammatical.
// Order matters: "guaranteed" must be handled before "guarantee".
var bannedTerms = []struct {
	Bad         string
	Replacement string
}{
	{"guaranteed", "aim to"},
	{"guarantee", "aim to"},
	{"no risk", "low risk"},
}

// Run applies banned-term substitution then length capping and returns the
// edited text plus the ordered audit trail. Substitution runs first since
// it changes length. Empty input yields empty output and no entries.
func Run(text string, profile platform.Profile) (string, []types.AuditEntry) {
	audit := []types.AuditEntry{}

	text, bannedAudit := applyBannedTerms(text)
	audit = append(audit, bannedAudit...)

	text, capAudit := applyLengthCap(text, profile.CharCap)
	audit = append(audit, capAudit...)

	return text, audit
}

// applyBannedTerms replaces the lowercase, capitalized, and uppercase
// variants of each banned phrase with the matching case of its
// replacement. One audit entry per distinct phrase matched, not per
// occurrence.
func applyBannedTerms(text string) (string, []types.AuditEntry) {
	var audit []types.AuditEntry

	for _, term := range bannedTerms {
		if !strings.Contains(strings.ToLower(text), term.Bad) {
			continue
		}
		text = strings.ReplaceAll(text, term.Bad, term.Replacement)
		text = strings.ReplaceAll(text, capitalize(term.Bad), capitalize(term.Replacement))
		text = strings.ReplaceAll(text, strings.ToUpper(term.Bad), strings.ToUpper(term.Replacement))
		audit = append(audit, types.AuditEntry{
			Rule:        "banned_term",
			Bad:         term.Bad,
			Replacement: term.Replacement,
		})
	}

	return text, audit
}

// applyLengthCap truncates text to the platform's character cap. Word
// boundaries are not preserved; platform caps are soft advisories.
func applyLengthCap(text string, charCap int) (string, []types.AuditEntry) {
	runes := []rune(text)
	if len(runes) <= charCap {
		return text, nil
	}

	trimmed := strings.TrimRightFunc(string(runes[:charCap]), unicode.IsSpace)
	return trimmed, []types.AuditEntry{{
		Rule:      "length_trim",
		BeforeLen: len(runes),
		AfterLen:  len([]rune(trimmed)),
		Cap:       charCap,
	}}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
