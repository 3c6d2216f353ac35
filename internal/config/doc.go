// Package config loads and merges cabinetd configuration from four
// sources, priority high to low: environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
package config
