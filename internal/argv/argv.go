package argv

// NUL is the terminator written over separator bytes.
const NUL = 0x00

// IsSeparator reports whether b separates two tokens.
func IsSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f', NUL:
		return true
	}
	return false
}

// Split tokenizes buf in place and returns at most max tokens.
//
// A maximal run of non-separator bytes is one token. Separators scanned
// before the limit is reached are overwritten with NUL; once max tokens have
// been recorded the rest of the input is discarded. A max of zero or less
// yields no tokens.
func Split(buf []byte, max int) [][]byte {
	if max <= 0 {
		return nil
	}

	tokens := make([][]byte, 0, min(max, 8))
	start := -1

	for i, b := range buf {
		if !IsSeparator(b) {
			if start < 0 {
				start = i
			}
			continue
		}

		buf[i] = NUL
		if start >= 0 {
			tokens = append(tokens, buf[start:i])
			start = -1
			if len(tokens) == max {
				return tokens
			}
		}
	}

	if start >= 0 {
		tokens = append(tokens, buf[start:])
	}
	return tokens
}

// Strings copies tokens into freshly allocated strings.
func Strings(tokens [][]byte) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = string(tok)
	}
	return out
}

// Fields splits s the same way Split does without touching s.
func Fields(s string, max int) []string {
	return Strings(Split([]byte(s), max))
}
