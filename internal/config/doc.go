// Package config loads, normalizes, and validates prospector's TOML
// configuration. Credentials may come from the environment (or a .env file
// loaded at startup) instead of the config file.
package config
