// Package output renders server replies for rudis-cli.
//
// The text format prints replies as the server sent them and shows
// "(empty)" when nothing came back. The json and yaml formats wrap the
// reply in a Reply record for scripting.
package output
