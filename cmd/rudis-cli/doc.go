// Command rudis-cli is the command-line client for rudis.
//
// Usage:
//
//	rudis-cli [--server host:port] exec SET greeting hello
//	rudis-cli -o json exec LRANGE queue 0 -1
//	rudis-cli ping
//	rudis-cli            (interactive prompt)
//
// Settings are read from ~/.rudis/cli.yaml and RUDIS_CLI_* variables.
package main
