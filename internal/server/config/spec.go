package config

import "time"

// ServerConfig is the root configuration for rudis-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the listeners.
type ServerSection struct {
	Text TextConfig `koanf:"text"`
	HTTP HTTPConfig `koanf:"http"`
}

// TextConfig configures the text command server.
type TextConfig struct {
	Addr string `koanf:"addr"`
	// ReadBuffer is the size of the per-read buffer. One read is one command.
	ReadBuffer   int           `koanf:"read_buffer"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// RateLimit is commands per second per peer IP. Zero disables it.
	RateLimit int `koanf:"rate_limit"`
}

// HTTPConfig configures the admin HTTP server.
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StorageSection configures the in-memory stores.
type StorageSection struct {
	BitmapCapacity int `koanf:"bitmap_capacity"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
