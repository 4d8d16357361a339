package command

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Command is a parsed request.
type Command struct {
	Kind Kind
	// Verb is token 0 as received (after normalization), kept so that
	// unknown verbs can be logged.
	Verb string
	// Args are tokens 1..n.
	Args []string
}

// Tokenize splits a raw request into normalized tokens.
//
// Tokens that consist solely of NUL padding are dropped.
func Tokenize(buf []byte) []string {
	line := lossyString(buf)
	// A Caser is stateful and must not be shared between goroutines.
	line = cases.Lower(language.Und).String(line)

	fields := strings.Fields(line)
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimRight(f, "\x00")
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Parse tokenizes buf and resolves the verb.
// It returns false if buf holds no tokens at all.
func Parse(buf []byte) (Command, bool) {
	tokens := Tokenize(buf)
	if len(tokens) == 0 {
		return Command{}, false
	}
	return Command{
		Kind: Lookup(tokens[0]),
		Verb: tokens[0],
		Args: tokens[1:],
	}, true
}

// lossyString decodes buf as UTF-8, writing one U+FFFD for each maximal
// prefix of a valid sequence that turns out to be truncated or broken.
func lossyString(buf []byte) string {
	if utf8.Valid(buf) {
		return string(buf)
	}
	var b strings.Builder
	b.Grow(len(buf) + 8)
	for len(buf) > 0 {
		r, n := utf8.DecodeRune(buf)
		if r == utf8.RuneError && n <= 1 {
			b.WriteRune(utf8.RuneError)
			buf = buf[invalidPrefixLen(buf):]
			continue
		}
		b.Write(buf[:n])
		buf = buf[n:]
	}
	return b.String()
}

// invalidPrefixLen returns how many bytes at the start of p belong to one
// ill-formed sequence: the lead byte plus every continuation byte that
// was still acceptable at its position.
func invalidPrefixLen(p []byte) int {
	lead := p[0]
	lo, hi := byte(0x80), byte(0xBF)
	need := 0
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		need, lo = 2, 0xA0
	case lead == 0xED:
		need, hi = 2, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		need = 2
	case lead == 0xF0:
		need, lo = 3, 0x90
	case lead == 0xF4:
		need, hi = 3, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(p); n++ {
		c := p[n]
		if n == 1 && (c < lo || c > hi) {
			break
		}
		if c < 0x80 || c > 0xBF {
			break
		}
	}
	return n
}
