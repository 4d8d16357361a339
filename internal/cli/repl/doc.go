// Package repl provides the interactive mode of rudis-cli.
//
// Each line is sent to the server as one command and the reply is printed
// with the configured formatter. Lines are kept in a history file between
// sessions.
package repl
