// Package command turns raw request bytes into typed commands.
//
// A request is one line of whitespace-separated tokens. Parsing:
//
//   - decodes the bytes as UTF-8, replacing invalid sequences
//   - lowercases the whole line
//   - splits on runs of whitespace
//   - strips trailing NUL padding from every token
//
// Token 0 is resolved to a Kind. The set of kinds is closed: adding a verb
// means adding a Kind constant, its name, and a case in the dispatcher.
package command
