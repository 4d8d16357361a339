package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/rudis-go/internal/telemetry/logger"
)

// Verify validates the configuration and returns every problem found.
func Verify(cfg *ServerConfig) error {
	return errors.Join(
		verifyText(&cfg.Server.Text),
		verifyHTTP(&cfg.Server.HTTP, cfg.Server.Text.Addr),
		verifyStorage(&cfg.Storage),
		verifyLog(&cfg.Log),
	)
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", name)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s %q: %w", name, addr, err)
	}
	return nil
}

func verifyText(cfg *TextConfig) error {
	var errs []error
	if err := verifyAddr("server.text.addr", cfg.Addr); err != nil {
		errs = append(errs, err)
	}
	if cfg.ReadBuffer <= 0 {
		errs = append(errs, errors.New("server.text.read_buffer must be positive"))
	}
	if cfg.IdleTimeout < 0 || cfg.WriteTimeout < 0 {
		errs = append(errs, errors.New("server.text timeouts must not be negative"))
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("server.text.rate_limit must not be negative"))
	}
	return errors.Join(errs...)
}

func verifyHTTP(cfg *HTTPConfig, textAddr string) error {
	if !cfg.Enabled {
		return nil
	}
	if err := verifyAddr("server.http.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.Addr == textAddr {
		return fmt.Errorf("server.http.addr and server.text.addr are both %s", cfg.Addr)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.BitmapCapacity <= 0 {
		return errors.New("storage.bitmap_capacity must be positive")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	var errs []error
	if !logger.ValidLevel(cfg.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level))
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not json or text", cfg.Format))
	}
	return errors.Join(errs...)
}
