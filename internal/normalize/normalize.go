// Package normalize holds the field cleanup rules applied between LLM
// extraction and record construction. Every function here is idempotent:
// running it twice yields the same result as running it once.
package normalize

import "strings"

// Phone reduces a raw phone string to digits with an optional single leading
// "+". Everything else (spaces, dashes, dots, parentheses) is dropped. An
// entry without any digits reduces to the empty string.
func Phone(raw string) string {
	var digits strings.Builder
	plus := false
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' && i == 0:
			plus = true
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	if plus {
		return "+" + digits.String()
	}
	return digits.String()
}

// Phones cleans each entry with Phone and drops entries that reduce to
// nothing. A list with no surviving entries becomes nil, not an empty slice.
func Phones(raw []string) []string {
	var cleaned []string
	for _, number := range raw {
		if n := Phone(number); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return cleaned
}

// WebsiteURL guarantees a scheme prefix, defaulting to https for entries
// that carry none.
func WebsiteURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// WebsiteURLs applies WebsiteURL to each entry, dropping empties. A list with
// no surviving entries becomes nil.
func WebsiteURLs(raw []string) []string {
	var cleaned []string
	for _, site := range raw {
		if s := WebsiteURL(strings.TrimSpace(site)); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

// StringList coerces a decoded JSON value into a list of strings. A bare
// string becomes a one-element list; null, empty strings, and non-string
// entries are dropped. Handles LLM output that ignores the
// arrays-even-when-singular instruction.
func StringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
		return nil
	case []string:
		var out []string
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		return nil
	}
}
