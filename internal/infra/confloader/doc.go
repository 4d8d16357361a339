// Package confloader loads layered configuration with koanf.
//
// Sources are applied lowest priority first:
//
//  1. Defaults (WithDefaults)
//  2. A YAML file (WithConfigFile), then any key aliases (WithAliases)
//  3. Environment variables carrying the prefix (RUDIS_ by default)
//
// Watcher reports writes to the loaded file so callers can re-read the
// settings that are safe to change at runtime.
package confloader
