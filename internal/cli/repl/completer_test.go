package repl

import (
	"slices"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"ZR", []string{"ZRANGE", "ZREM"}},
		{"hg", []string{"HGET", "HGETALL"}},
		{"ex", []string{"exit"}},
		{"NOPE", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := c.Complete(tt.prefix)
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_AllVerbs(t *testing.T) {
	got := NewCompleter().Complete("")
	if !slices.Contains(got, "SETBIT") || !slices.Contains(got, "HELP") {
		t.Errorf("missing verbs in %v", got)
	}
}
