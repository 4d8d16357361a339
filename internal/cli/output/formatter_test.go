package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewReply(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantEmpty bool
		wantLines []string
	}{
		{"single", "ok", false, nil},
		{"empty", "", true, nil},
		{"lines", "a\nb\n", false, []string{"a", "b"}},
		{"pairs", "name:alice\n", false, []string{"name:alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReply("X", tt.raw)
			if r.Empty != tt.wantEmpty {
				t.Errorf("Empty = %v, want %v", r.Empty, tt.wantEmpty)
			}
			if strings.Join(r.Lines, "|") != strings.Join(tt.wantLines, "|") {
				t.Errorf("Lines = %q, want %q", r.Lines, tt.wantLines)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", "yaml"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("table"); err == nil {
		t.Error("expected error for table")
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ok", "ok\n"},
		{"", "(empty)\n"},
		{"a\nb\n", "a\nb\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := NewFormatter(FormatText).Format(&buf, NewReply("X", tt.raw)); err != nil {
			t.Fatalf("Format: %v", err)
		}
		if buf.String() != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.raw, buf.String(), tt.want)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).Format(&buf, NewReply("LRANGE l 0 -1", "a\nb\n")); err != nil {
		t.Fatalf("Format: %v", err)
	}

	var got Reply
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Command != "LRANGE l 0 -1" || len(got.Lines) != 2 {
		t.Errorf("unexpected reply %+v", got)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatYAML).Format(&buf, NewReply("GET k", "")); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"command: GET k", "empty: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
