package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// EmptyReply is printed in text mode when the server sent nothing.
const EmptyReply = "(empty)"

// Reply is one command and what the server answered.
type Reply struct {
	Command string   `json:"command" yaml:"command"`
	Reply   string   `json:"reply" yaml:"reply"`
	Lines   []string `json:"lines,omitempty" yaml:"lines,omitempty"`
	Empty   bool     `json:"empty" yaml:"empty"`
}

// NewReply builds a Reply. Multi-line replies are also split into Lines.
func NewReply(cmd, raw string) *Reply {
	r := &Reply{Command: cmd, Reply: raw, Empty: raw == ""}
	if strings.Contains(raw, "\n") {
		r.Lines = strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
	}
	return r
}

// Formatter formats a reply for output.
type Formatter interface {
	Format(w io.Writer, r *Reply) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// TextFormatter prints the raw reply.
type TextFormatter struct{}

// Format writes the reply followed by a newline unless it already ends
// with one.
func (f *TextFormatter) Format(w io.Writer, r *Reply) error {
	text := r.Reply
	if r.Empty {
		text = EmptyReply
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}
