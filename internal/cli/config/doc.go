// Package config provides rudis-cli configuration.
//
// Settings come from ~/.rudis/cli.yaml when it exists, then from RUDIS_CLI_*
// environment variables. Command-line flags override both.
package config
