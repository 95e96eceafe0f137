// Package config loads console settings.
//
// Settings are layered: built-in defaults, then an optional TOML file, then
// ECON_* environment variables. The result is validated before use.
//
// Example file:
//
//	prompt = "test $"
//	buffer_size = 512
//	max_args = 24
//	commands_file = "commands.yaml"
//
//	[log]
//	level = "debug"
//	output = "/tmp/econ.log"
package config
