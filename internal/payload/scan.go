package payload

import "github.com/rotisserie/eris"

// ExtractBalancedObject returns the minimal substring of text spanning the
// `{`...`}` literal that starts at start. The scan tracks a single depth
// counter and is string-aware: inside a quoted run (single or double
// quotes) delimiter characters are ignored, and a backslash escapes the
// following character. The input is untrusted; imbalance yields
// ErrMalformedLiteral, never a panic.
func ExtractBalancedObject(text string, start int) (string, error) {
	return extractBalanced(text, start, '{', '}')
}

// ExtractBalancedArray is ExtractBalancedObject for `[`...`]` literals.
func ExtractBalancedArray(text string, start int) (string, error) {
	return extractBalanced(text, start, '[', ']')
}

func extractBalanced(text string, start int, open, close byte) (string, error) {
	if start < 0 || start >= len(text) || text[start] != open {
		return "", eris.Wrapf(ErrMalformedLiteral, "no opening %q at offset %d", string(open), start)
	}

	depth := 0
	inStr := false
	escaped := false
	var quote byte

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inStr {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				inStr = false
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inStr = true
			quote = ch
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", eris.Wrapf(ErrMalformedLiteral, "unbalanced %q starting at offset %d", string(open), start)
}
