package homily

import "strings"

// MatchToken is one unit of a compiled search pattern: either a literal word
// or a set of alternatives, each markable optional.
type MatchToken struct {
	Word         string   // literal form; empty when Alternatives is set
	Alternatives []string // alternative set; nil for a literal token
	Optional     bool
}

// Matches reports whether a normalized transcript token satisfies this
// pattern token.
func (mt MatchToken) Matches(token string) bool {
	if mt.Alternatives == nil {
		return token == mt.Word
	}
	for _, alt := range mt.Alternatives {
		if token == alt {
			return true
		}
	}
	return false
}

// Pattern is a compiled search expression: an ordered sequence of match
// tokens. Compile once per phrase; a Pattern is immutable and safe to reuse
// across searches.
type Pattern []MatchToken

// CompilePattern parses a space-delimited search expression. A token ending
// in '?' is optional. A token containing '|' becomes an alternative set with
// each alternative trimmed. Token order is significant: pattern tokens match
// transcript tokens left to right, with skipping possible only through the
// optional flag.
func CompilePattern(expr string) Pattern {
	raw := strings.Fields(expr)
	pattern := make(Pattern, 0, len(raw))
	for _, tok := range raw {
		optional := strings.HasSuffix(tok, "?")
		if optional {
			tok = strings.TrimSuffix(tok, "?")
		}
		normalized := strings.TrimSpace(Normalize(tok))
		if normalized == "" {
			continue
		}
		if strings.Contains(normalized, "|") {
			parts := strings.Split(normalized, "|")
			alts := make([]string, 0, len(parts))
			for _, p := range parts {
				alts = append(alts, strings.TrimSpace(p))
			}
			pattern = append(pattern, MatchToken{Alternatives: alts, Optional: optional})
		} else {
			pattern = append(pattern, MatchToken{Word: normalized, Optional: optional})
		}
	}
	return pattern
}
