// Package file stores settings in a TOML file, by default
// ~/.sercha-tmx/config.toml. Nested tables are flattened into dotted keys.
package file
