// Package command provides the rudis-cli commands.
//
// It uses urfave/cli/v2:
//
//   - exec sends one command and prints the reply
//   - repl opens an interactive prompt, also the default with no command
//   - ping checks that the server answers
package command
