// Package config loads gotodoc settings.
//
// Settings come from layers merged in priority order:
//
//  1. built-in defaults
//  2. the user file, $XDG_CONFIG_HOME/gotodoc/config.toml (or
//     config.yaml / config.yml), or the file given with --config
//  3. GOTODOC_* environment variables
//  4. command-line overrides
//
// Load merges the layers and decodes the result into a Config. Values
// of the wrong type are reported and replaced by their default; they
// never abort loading.
//
// Example config.toml:
//
//	[lookup]
//	lookback = 48
//	pydoc = "python3 -m pydoc"
//
//	[handlers]
//	rust = "https://doc.rust-lang.org/std/?search={token}"
//
//	[aliases]
//	jsx = "js"
//
//	[plugins]
//	scripts = ["~/.config/gotodoc/perl.lua"]
package config
