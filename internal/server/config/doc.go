// Package config defines the rudis-server configuration.
//
//   - spec.go: ServerConfig and its sections
//   - default.go: default values
//   - verify.go: validation
//   - load.go: loading through confloader, including the legacy
//     rudis.address key
package config
