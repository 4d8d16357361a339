package logger

import (
	"log/slog"
	"unicode/utf8"
)

// MaxValueLen is the longest string attribute written verbatim.
const MaxValueLen = 64

const clipSuffix = "...(clipped)"

// clipAttr shortens oversized string values, recursing into groups.
func clipAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); len(s) > MaxValueLen {
			return slog.String(a.Key, Clip(s))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = clipAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// Clip returns s cut to at most MaxValueLen bytes on a rune boundary,
// followed by a marker when anything was removed.
func Clip(s string) string {
	if len(s) <= MaxValueLen {
		return s
	}
	cut := MaxValueLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + clipSuffix
}
