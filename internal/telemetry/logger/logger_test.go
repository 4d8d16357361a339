package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// records decodes every JSON line written to buf.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func newJSON(t *testing.T, lvl string) (Logger, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(func() { SetLevel("info") })

	var buf bytes.Buffer
	l, err := New(Config{Level: lvl, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, &buf
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"client connected"`},
		{"text", "msg=\"client connected\""},
		{"console", "msg=\"client connected\""},
		{"", `"msg":"client connected"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(Config{Level: "info", Format: tt.format, Output: &buf})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			l.Info("client connected", "remote", "127.0.0.1:5000")

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warning", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
		{"bogus", []string{"INFO", "WARN", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, buf := newJSON(t, tt.level)

			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			var got []string
			for _, rec := range records(t, buf) {
				got = append(got, rec["level"].(string))
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("levels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetLevel_AffectsExistingLoggers(t *testing.T) {
	l, buf := newJSON(t, "info")

	l.Debug("hidden")
	SetLevel("debug")
	if GetLevel() != "debug" {
		t.Fatalf("GetLevel = %q", GetLevel())
	}
	l.Debug("shown")

	recs := records(t, buf)
	if len(recs) != 1 || recs[0]["msg"] != "shown" {
		t.Errorf("records = %v", recs)
	}
}

func TestGetLevel_Names(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	for in, want := range map[string]string{
		"DEBUG": "debug", "warn": "warn", "warning": "warn", "error": "error", "": "info",
	} {
		SetLevel(in)
		if got := GetLevel(); got != want {
			t.Errorf("SetLevel(%q) then GetLevel() = %q, want %q", in, got, want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false", l)
		}
	}
	for _, l := range []string{"", "trace", "fatal"} {
		if ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = true", l)
		}
	}
}

func TestWith_AddsAttributes(t *testing.T) {
	l, buf := newJSON(t, "info")

	l.With("component", "text").Info("listening", "address", "127.0.0.1:6666")

	rec := records(t, buf)[0]
	if rec["component"] != "text" || rec["address"] != "127.0.0.1:6666" {
		t.Errorf("record = %v", rec)
	}
}

func TestLongValuesAreClipped(t *testing.T) {
	l, buf := newJSON(t, "info")

	l.Info("command", "args", strings.Repeat("v", 500))

	got := records(t, buf)[0]["args"].(string)
	if len(got) > MaxValueLen+len(clipSuffix) {
		t.Errorf("value not clipped: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, clipSuffix) {
		t.Errorf("missing clip suffix: %q", got)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
	l.With("k", "v").WithContext(context.Background()).Info("discarded")
}

func TestDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	l, buf := newJSON(t, "info")
	SetDefault(l)

	if Default() != l {
		t.Fatal("Default should return the logger passed to SetDefault")
	}

	Info("via package")
	Warn("warned")
	Debug("filtered")
	Error("failed")

	if n := len(records(t, buf)); n != 3 {
		t.Errorf("got %d records, want 3", n)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Output == nil {
		t.Errorf("unexpected default config %+v", cfg)
	}
}
