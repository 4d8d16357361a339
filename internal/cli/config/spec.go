package config

import "time"

// CLIConfig is the configuration for rudis-cli.
type CLIConfig struct {
	// Server is the text protocol address.
	Server string `koanf:"server"`

	// DialTimeout bounds connection setup.
	DialTimeout time.Duration `koanf:"dial_timeout"`

	// ReplyTimeout is how long to wait for a reply before treating it as
	// empty. Commands with nothing to return send no bytes at all.
	ReplyTimeout time.Duration `koanf:"reply_timeout"`

	// Output is text, json or yaml.
	Output string `koanf:"output"`

	// HistoryFile stores REPL history.
	HistoryFile string `koanf:"history_file"`
}

// Default values.
const (
	DefaultServer       = "127.0.0.1:6666"
	DefaultDialTimeout  = 3 * time.Second
	DefaultReplyTimeout = 500 * time.Millisecond
	DefaultOutput       = "text"
)

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:       DefaultServer,
		DialTimeout:  DefaultDialTimeout,
		ReplyTimeout: DefaultReplyTimeout,
		Output:       DefaultOutput,
		HistoryFile:  DefaultHistoryPath(),
	}
}

func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"server":        d.Server,
		"dial_timeout":  d.DialTimeout,
		"reply_timeout": d.ReplyTimeout,
		"output":        d.Output,
		"history_file":  d.HistoryFile,
	}
}
