// Package config loads runtime configuration for the notesync CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see SetDefaults).
//  2. Optional YAML file (~/.notesync/config.yaml or --config).
//  3. Environment variables with the NOTESYNC_ prefix.
//  4. Command-line flags bound by the CLI root, which override everything.
//
// All sources are merged through a single viper instance owned by the CLI
// root command; this package only registers defaults and reads the final
// values back out.
//
// # YAML schema
//
// Durations accept Go duration strings:
//
//	server_url: "http://localhost:8080"
//	data_dir: "/home/me/.notesync"
//	base_interval: "30s"
//	max_interval: "10m"
//	log_file: ""
//	log_level: "info"
//
// Primary API
//
//   - type Config                      — the validated settings struct
//   - func SetDefaults(*viper.Viper)   — registers default values
//   - func Load(*viper.Viper) (*Config, error) — reads and validates
//
// Session state (tokens, device id, sync cursor) is not configuration; it
// lives in the sync_config table managed by repositories/syncconfig.
package config
