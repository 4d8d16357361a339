package config

import "time"

// Default configuration values.
const (
	DefaultTextAddr     = "127.0.0.1:6666"
	DefaultReadBuffer   = 1024
	DefaultIdleTimeout  = 5 * time.Minute
	DefaultWriteTimeout = 30 * time.Second

	DefaultHTTPAddr = "127.0.0.1:6667"

	DefaultBitmapCapacity = 1024

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Text: TextConfig{
				Addr:         DefaultTextAddr,
				ReadBuffer:   DefaultReadBuffer,
				IdleTimeout:  DefaultIdleTimeout,
				WriteTimeout: DefaultWriteTimeout,
			},
			HTTP: HTTPConfig{
				Enabled: true,
				Addr:    DefaultHTTPAddr,
			},
		},
		Storage: StorageSection{
			BitmapCapacity: DefaultBitmapCapacity,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// defaultMap returns Default() keyed by dotted path, for the loader.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"server.text.addr":          d.Server.Text.Addr,
		"server.text.read_buffer":   d.Server.Text.ReadBuffer,
		"server.text.idle_timeout":  d.Server.Text.IdleTimeout.String(),
		"server.text.write_timeout": d.Server.Text.WriteTimeout.String(),
		"server.text.rate_limit":    d.Server.Text.RateLimit,
		"server.http.enabled":       d.Server.HTTP.Enabled,
		"server.http.addr":          d.Server.HTTP.Addr,
		"storage.bitmap_capacity":   d.Storage.BitmapCapacity,
		"log.level":                 d.Log.Level,
		"log.format":                d.Log.Format,
	}
}
