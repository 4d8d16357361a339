package config

import (
	"fmt"

	"github.com/yndnr/rudis-go/internal/infra/confloader"
)

// legacyAliases maps keys from older config files to current ones.
var legacyAliases = map[string]string{
	"rudis.address": "server.text.addr",
}

// Load reads defaults, then path (if not empty), then RUDIS_* variables,
// then overrides, and verifies the result.
func Load(path string, overrides map[string]any) (*ServerConfig, error) {
	l := confloader.NewLoader(
		confloader.WithDefaults(defaultMap()),
		confloader.WithConfigFile(path),
		confloader.WithAliases(legacyAliases),
	)

	cfg := &ServerConfig{}
	if err := l.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := l.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := l.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal overrides: %w", err)
		}
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
